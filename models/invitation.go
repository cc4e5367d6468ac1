package models

// Invitation represents a coach invitation record in DynamoDB. Delivery-status
// fields are written only by the notifier and stay absent until the first
// send attempt.
type Invitation struct {
	InvitationID string `json:"invitationId" dynamodbav:"invitationId"` // PK
	AthleteID    string `json:"athleteId" dynamodbav:"athleteId"`       // inviting athlete, owns the resend operation
	AthleteName  string `json:"athleteName" dynamodbav:"athleteName"`
	CoachEmail   string `json:"coachEmail" dynamodbav:"coachEmail"`
	FolderName   string `json:"folderName" dynamodbav:"folderName"`
	CanUpload    bool   `json:"canUpload" dynamodbav:"canUpload"`
	CanComment   bool   `json:"canComment" dynamodbav:"canComment"`
	CanDelete    bool   `json:"canDelete" dynamodbav:"canDelete"`
	CreatedAt    string `json:"createdAt" dynamodbav:"createdAt"`

	EmailSent     *bool  `json:"emailSent,omitempty" dynamodbav:"emailSent,omitempty"`
	EmailSentAt   string `json:"emailSentAt,omitempty" dynamodbav:"emailSentAt,omitempty"`
	EmailResentAt string `json:"emailResentAt,omitempty" dynamodbav:"emailResentAt,omitempty"`
	EmailError    string `json:"emailError,omitempty" dynamodbav:"emailError,omitempty"`
}

// TableName returns the DynamoDB table name
func (Invitation) TableName() string {
	return "Invitations"
}

// AthleteIndex is the GSI used to list invitations sent by one athlete
const AthleteIndex = "AthleteIndex"
