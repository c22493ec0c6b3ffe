package notify

import (
	"context"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// NewSender returns the transport selected by cfg.Transport. SMTP is the
// default.
func NewSender(ctx context.Context, cfg types.NotifyConfig, creds Credentials) (Sender, error) {
	switch cfg.Transport {
	case types.TransportSES:
		return NewSESSender(ctx, cfg.Region)
	case "", types.TransportSMTP:
		host := cfg.SMTPHost
		if host == "" {
			host = types.DefaultSMTPHost
		}
		port := cfg.SMTPPort
		if port == 0 {
			port = types.DefaultSMTPPort
		}
		return NewSMTPSender(host, port, creds), nil
	default:
		return nil, types.ErrTransportUnknown
	}
}

// Setup loads credentials for cfg's transport and returns a ready Notifier.
// Credentials are checked before any connection is made.
func Setup(ctx context.Context, cfg types.NotifyConfig) (*Notifier, error) {
	creds, err := LoadCredentials(cfg.Transport)
	if err != nil {
		return nil, err
	}
	sender, err := NewSender(ctx, cfg, creds)
	if err != nil {
		return nil, err
	}
	return New(creds.Address, sender), nil
}
