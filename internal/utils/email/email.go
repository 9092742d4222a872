package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/cashflow-dashboard/internal/config"
	"github.com/Dan9191/cashflow-dashboard/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendStatementDigest mails the monthly income statement
func (s *Sender) SendStatementDigest(to []string, st *models.MonthlyStatement) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = to
	e.Subject = fmt.Sprintf("Monthly Income Statement %s", st.Date)
	e.Text = []byte(DigestBody(st))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send statement digest to %s: %v", strings.Join(to, ", "), err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", strings.Join(to, ", "), e.Subject)
	return nil
}

// DigestBody formats the statement as plain text, amounts rounded to whole units
func DigestBody(st *models.MonthlyStatement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Monthly income statement as of %s\n\n", st.Date)
	fmt.Fprintf(&b, "Avg Monthly Income:  %s\n", st.IncomeMonthly.StringFixed(0))
	fmt.Fprintf(&b, "Avg Monthly Charges: %s\n", st.ChargesMonthly.StringFixed(0))
	fmt.Fprintf(&b, "Avg Monthly Net:     %s\n", st.NetMonthly.StringFixed(0))
	fmt.Fprintf(&b, "Avg Daily Net (/30): %s\n", st.DailyNetAvg.StringFixed(0))

	if len(st.Items) > 0 {
		b.WriteString("\nContributions:\n")
	}
	for _, it := range st.Items {
		label := it.Label
		if it.AccountName != "" {
			label = fmt.Sprintf("%s (%s)", label, it.AccountName)
		}
		freq := it.Frequency
		if freq == "" {
			freq = "N/A"
		}
		fmt.Fprintf(&b, "  %-32s %10s/mo  %s x %s\n",
			label, it.MonthlyAverage.Abs().StringFixed(0), freq, it.Value.StringFixed(0))
	}

	b.WriteString("\nWeekly x 52, Biweekly/Fortnightly x 26, Monthly x 12, Yearly x 1, Daily x 365; divided by 12.\n")
	return b.String()
}
