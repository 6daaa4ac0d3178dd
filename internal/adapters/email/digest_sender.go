package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/platform/config"
)

// DigestSender delivers the due/overdue entry digest via SMTP.
type DigestSender struct {
	cfg *config.Config
}

var _ portssvc.DigestSender = (*DigestSender)(nil)

// NewDigestSender creates a new SMTP-backed digest sender.
func NewDigestSender(cfg *config.Config) *DigestSender {
	return &DigestSender{cfg: cfg}
}

// SendDueDigest sends one digest email listing the organization's upcoming
// and overdue pending entries.
func (s *DigestSender) SendDueDigest(ctx context.Context, recipient string, organizationName string, entries []domain.DueEntry) error {
	if len(entries) == 0 {
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.DigestFromAddr
	e.To = []string{recipient}
	e.Subject = fmt.Sprintf("%s: %d entries due soon", organizationName, len(entries))
	e.Text = []byte(buildDigestBody(organizationName, entries))

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send due digest to %s: %w", recipient, err)
	}
	return nil
}

func buildDigestBody(organizationName string, entries []domain.DueEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello,\n\nThe following entries in %s need attention:\n\n", organizationName)

	for _, entry := range entries {
		marker := "due"
		if entry.Overdue {
			marker = "OVERDUE"
		}
		fmt.Fprintf(&b, "- [%s] %s: %s %s, %s on %s\n",
			marker,
			entry.Description,
			entry.Amount.StringFixed(2),
			entry.Nature,
			marker,
			entry.DueDate.Format("2006-01-02"),
		)
	}

	b.WriteString("\nBest regards,\nBizLedger\n")
	return b.String()
}
