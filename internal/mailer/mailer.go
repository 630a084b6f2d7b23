// Package mailer delivers low-attendance alerts. Delivery is best effort:
// failures are logged and swallowed so a notification problem can never
// fail the attendance write that triggered it.
package mailer

import (
	"fmt"
	"log"

	"github.com/zaqqye/campus_attendance/internal/config"
)

// Notifier sends a low-attendance alert to one student.
type Notifier interface {
	NotifyLowAttendance(studentName, studentEmail string, semester int, percentage float64)
}

// New picks the SendGrid implementation when an API key is configured and
// a console logger otherwise.
func New(cfg *config.Config) Notifier {
	if cfg.SendgridAPIKey != "" {
		return newSendgridNotifier(cfg)
	}
	return &consoleNotifier{institution: cfg.InstitutionName}
}

func alertSubject() string {
	return "Low Attendance Alert"
}

func alertBody(studentName string, semester int, percentage float64, institution string) string {
	return fmt.Sprintf(`Dear %s,

This is to inform you that your attendance has fallen below 75%%.
Current Semester: %d
Current Attendance: %.2f%%

Please ensure regular attendance to avoid academic penalties.

Regards,
%s`, studentName, semester, percentage, institution)
}

// consoleNotifier logs the alert instead of sending it. Used in development
// and when mail is not configured.
type consoleNotifier struct {
	institution string
}

func (n *consoleNotifier) NotifyLowAttendance(studentName, studentEmail string, semester int, percentage float64) {
	log.Printf("mailer: [console] low attendance alert for %s <%s>: %.2f%% (semester %d)",
		studentName, studentEmail, percentage, semester)
}
