package report

import (
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"code-auditor/internal/config"
	"code-auditor/internal/observability"
)

// Mailer sends the HTML report with the PDF attached over plain SMTP.
type Mailer struct {
	cfg    *config.Config
	logger *observability.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg *config.Config, logger *observability.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger, send: smtp.SendMail}
}

func (m *Mailer) Send(to, subject, htmlBody string, pdf []byte) error {
	if m.cfg.SMTPHost == "" {
		return fmt.Errorf("smtp not configured")
	}

	msg, err := buildMessage(m.cfg.SMTPFrom, to, subject, htmlBody, pdf)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	if err := m.send(addr, auth, m.cfg.SMTPFrom, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.logger.Info("report emailed", "to", to)
	return nil
}

func buildMessage(from, to, subject, htmlBody string, pdf []byte) ([]byte, error) {
	var b strings.Builder
	w := multipart.NewWriter(&b)

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", w.Boundary())

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Type", "text/html; charset=utf-8")
	part, err := w.CreatePart(hdr)
	if err != nil {
		return nil, fmt.Errorf("build html part: %w", err)
	}
	if _, err := part.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	if len(pdf) > 0 {
		hdr = textproto.MIMEHeader{}
		hdr.Set("Content-Type", "application/pdf")
		hdr.Set("Content-Disposition", `attachment; filename="audit-report.pdf"`)
		hdr.Set("Content-Transfer-Encoding", "base64")
		part, err = w.CreatePart(hdr)
		if err != nil {
			return nil, fmt.Errorf("build pdf part: %w", err)
		}
		enc := base64.StdEncoding.EncodeToString(pdf)
		// RFC 2045 line length limit.
		for len(enc) > 76 {
			if _, err := part.Write([]byte(enc[:76] + "\r\n")); err != nil {
				return nil, err
			}
			enc = enc[76:]
		}
		if _, err := part.Write([]byte(enc + "\r\n")); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
