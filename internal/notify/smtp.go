package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// SMTPSender submits messages over implicit TLS (port 465 style) with PLAIN
// authentication.
type SMTPSender struct {
	host string
	addr string
	auth smtp.Auth
	now  func() time.Time

	// dial opens the connection; replaced in tests.
	dial func(ctx context.Context, addr string) (net.Conn, error)
}

// NewSMTPSender returns a sender for host:port authenticating as creds.
func NewSMTPSender(host string, port int, creds Credentials) *SMTPSender {
	s := &SMTPSender{
		host: host,
		addr: net.JoinHostPort(host, strconv.Itoa(port)),
		auth: smtp.PlainAuth("", creds.Address, creds.Password, host),
		now:  time.Now,
	}
	s.dial = s.dialTLS
	return s
}

func (s *SMTPSender) dialTLS(ctx context.Context, addr string) (net.Conn, error) {
	d := &tls.Dialer{Config: &tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}}
	return d.DialContext(ctx, "tcp", addr)
}

// Send delivers msg in one SMTP session.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	conn, err := s.dial(ctx, s.addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if err := c.Auth(s.auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := c.Mail(msg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(msg.To); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg.Bytes(s.now())); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data close: %w", err)
	}
	return c.Quit()
}

// Bytes renders msg as an RFC 5322 message with CRLF line endings.
func (m Message) Bytes(date time.Time) []byte {
	var b bytes.Buffer
	header := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&b, "%s: %s\r\n", k, v)
		}
	}
	header("From", m.From)
	header("To", m.To)
	header("Subject", mime.QEncoding.Encode("utf-8", m.Subject))
	header("Message-ID", m.ID)
	header("Date", date.Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=UTF-8")
	header("Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")

	body := strings.ReplaceAll(m.Body, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return b.Bytes()
}
