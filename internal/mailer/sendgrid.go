package mailer

import (
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/zaqqye/campus_attendance/internal/config"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type sendgridNotifier struct {
	key         string
	from        *sgmail.Email
	institution string
}

func newSendgridNotifier(cfg *config.Config) *sendgridNotifier {
	return &sendgridNotifier{
		key:         cfg.SendgridAPIKey,
		from:        sgmail.NewEmail(cfg.MailFromName, cfg.MailFromAddress),
		institution: cfg.InstitutionName,
	}
}

func (n *sendgridNotifier) NotifyLowAttendance(studentName, studentEmail string, semester int, percentage float64) {
	m := sgmail.NewV3Mail()
	m.SetFrom(n.from)

	p := sgmail.NewPersonalization()
	p.Subject = alertSubject() + " - " + n.institution
	p.AddTos(sgmail.NewEmail(studentName, studentEmail))
	m.AddPersonalizations(p)

	m.AddContent(sgmail.NewContent("text/plain", alertBody(studentName, semester, percentage, n.institution)))

	req := sendgrid.GetRequest(n.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		log.Printf("mailer: low attendance alert to %s failed: %v", studentEmail, err)
		return
	}
	if res.StatusCode >= http.StatusBadRequest {
		log.Printf("mailer: low attendance alert to %s rejected: status %d", studentEmail, res.StatusCode)
	}
}
