package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InvitationEmailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "playerpath_invitation_emails_sent_total",
		Help: "Invitation emails dispatched successfully by the automatic path.",
	})

	InvitationEmailsResent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "playerpath_invitation_emails_resent_total",
		Help: "Invitation emails dispatched successfully by the resend operation.",
	})

	InvitationEmailsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "playerpath_invitation_emails_failed_total",
		Help: "Invitation email dispatch attempts that failed.",
	})
)
