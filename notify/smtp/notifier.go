package smtp

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Config defines a public type used by authflow APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	SenderEmail string
	SenderName  string
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("smtp host required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("smtp port %d out of range", c.Port)
	}
	if c.SenderEmail == "" {
		return errors.New("smtp sender email required")
	}
	return nil
}

// Notifier sends transactional mail over SMTP.
//
// Notifier instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Notifier struct {
	config Config
	client *mail.Client
	logger *zap.SugaredLogger
}

// NewNotifier creates a [Notifier] from the given config. A nil logger
// disables logging.
//
// NewNotifier may return an error when input validation, dependency calls, or security checks fail.
func NewNotifier(cfg Config, logger *zap.SugaredLogger) (*Notifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &Notifier{config: cfg, client: client, logger: logger}, nil
}

// Send delivers a single HTML mail to the given address.
//
// Send may return an error when input validation, dependency calls, or security checks fail.
func (n *Notifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(n.config.SenderName, n.config.SenderEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		n.logger.Warnw("mail delivery failed", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("smtp send: %w", err)
	}

	n.logger.Infow("mail sent", "to", to, "subject", subject)
	return nil
}
