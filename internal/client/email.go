package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rahnacm97/Talentra/internal/config"
	"github.com/wneessen/go-mail"
)

// EmailClient sends OTP and verification-outcome mail over SMTP.
type EmailClient struct {
	cfg  config.SMTPConfig
	port int
}

func NewEmailClient(cfg config.SMTPConfig) (*EmailClient, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP_HOST is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP_FROM is required")
	}
	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	return &EmailClient{cfg: cfg, port: port}, nil
}

func (c *EmailClient) SendOtp(ctx context.Context, email, otp, name string) error {
	subject := "Workscape OTP Verification"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour OTP for Workscape account verification is: %s\n\nThis OTP is valid for 1 minute.\n\nBest regards,\nWorkscape Team",
		name, otp,
	)
	return c.send(ctx, email, subject, body, mail.TypeTextPlain)
}

func (c *EmailClient) SendVerificationOutcome(ctx context.Context, email, name string, approved bool, reason string) error {
	if approved {
		body := fmt.Sprintf(`<h1>Verification Approved</h1>
<p>Dear %s,</p>
<p>Your employer account has been successfully verified. You can now access all features of our platform.</p>
<p>Thank you for joining us!</p>`, name)
		return c.send(ctx, email, "Employer Verification Approved", body, mail.TypeTextHTML)
	}

	body := fmt.Sprintf(`<h1>Verification Rejected</h1>
<p>Dear %s,</p>
<p>We regret to inform you that your employer account verification was rejected.</p>
<p><strong>Reason:</strong> %s</p>
<p>Please address the issue and try again or contact support for assistance.</p>`, name, reason)
	return c.send(ctx, email, "Employer Verification Rejected", body, mail.TypeTextHTML)
}

func (c *EmailClient) send(ctx context.Context, to, subject, body string, contentType mail.ContentType) error {
	msg := mail.NewMsg()

	if c.cfg.FromName != "" {
		if err := msg.FromFormat(c.cfg.FromName, c.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(c.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(contentType, body)

	opts := []mail.Option{
		mail.WithPort(c.port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	// Implicit TLS for port 465, STARTTLS otherwise.
	if c.port == 465 {
		opts = append(opts, mail.WithSSL())
	}
	if c.cfg.Username != "" && c.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(c.cfg.Username),
			mail.WithPassword(c.cfg.Password),
		)
	}

	mc, err := mail.NewClient(c.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := mc.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}
