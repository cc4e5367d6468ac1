package services

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"playerpath_server/models"
)

//go:embed templates
var templateFS embed.FS

var (
	invitationTextTemplate = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/invitation_email.txt.tmpl"))
	invitationHTMLTemplate = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/invitation_email.html.tmpl"))
)

// EmailContent holds the rendered parts of one invitation email.
type EmailContent struct {
	Subject string
	Text    string
	HTML    string
}

// TemplateService renders invitation emails and builds the outbound links.
// Rendering is pure: the same invitation always produces byte-identical
// output, and no clock, network or store access happens here.
type TemplateService struct {
	AppScheme string
	WebDomain string
}

func NewTemplateService(appScheme, webDomain string) *TemplateService {
	return &TemplateService{AppScheme: appScheme, WebDomain: webDomain}
}

type invitationEmailData struct {
	AthleteName string
	FolderName  string
	CoachEmail  string
	Permissions []string
	DeepLink    htmltemplate.URL
	WebLink     string
}

// InvitationLinks returns the native deep link and the web fallback link for
// an invitation.
func (ts *TemplateService) InvitationLinks(invitationID string) (deepLink, webLink string) {
	deepLink = fmt.Sprintf("%s://invitation/%s", ts.AppScheme, invitationID)
	webLink = fmt.Sprintf("https://%s/invitation/%s", ts.WebDomain, invitationID)
	return deepLink, webLink
}

// InvitationSubject builds the fixed-format subject line for an invitation.
func InvitationSubject(athleteName string) string {
	return fmt.Sprintf("%s invited you to collaborate on PlayerPath", athleteName)
}

// RenderInvitationEmail renders the plain-text and HTML bodies for an
// invitation. Only granted permissions are listed; the list is omitted
// entirely when no permission is granted. User-controlled fields are escaped
// in the HTML body by html/template.
func (ts *TemplateService) RenderInvitationEmail(inv models.Invitation) (*EmailContent, error) {
	deepLink, webLink := ts.InvitationLinks(inv.InvitationID)

	data := invitationEmailData{
		AthleteName: inv.AthleteName,
		FolderName:  inv.FolderName,
		CoachEmail:  inv.CoachEmail,
		Permissions: permissionLabels(inv),
		// The custom scheme is built server-side from config, never from user
		// input, so it is safe to exempt from URL filtering.
		DeepLink: htmltemplate.URL(deepLink),
		WebLink:  webLink,
	}

	var text bytes.Buffer
	if err := invitationTextTemplate.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to render text body: %w", err)
	}

	var html bytes.Buffer
	if err := invitationHTMLTemplate.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render html body: %w", err)
	}

	return &EmailContent{
		Subject: InvitationSubject(inv.AthleteName),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

func permissionLabels(inv models.Invitation) []string {
	var labels []string
	if inv.CanUpload {
		labels = append(labels, "Upload videos")
	}
	if inv.CanComment {
		labels = append(labels, "Add comments and feedback")
	}
	if inv.CanDelete {
		labels = append(labels, "Delete videos")
	}
	return labels
}
