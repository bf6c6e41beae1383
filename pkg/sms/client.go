package sms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arsmn/go-smsir/smsir"

	"github.com/nguyenanhtu/realty_backend/config"
)

// Sender delivers password-reset codes to the admin phone.
type Sender interface {
	SendResetCode(ctx context.Context, phoneNumber, code string) error
}

// Client sends template messages through sms.ir.
type Client struct {
	client     *smsir.Client
	templateID string
	enabled    bool
	log        *slog.Logger
}

// NewFromConfig creates a new SMS client. When SMS is disabled the client logs
// the code at debug level instead of sending it, so reset flows work locally.
func NewFromConfig(cfg config.SMSConfig, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	if !cfg.Enabled {
		return &Client{enabled: false, log: log}, nil
	}

	if cfg.SMSIR.APIKey == "" {
		return nil, fmt.Errorf("sms.ir API key required when SMS enabled")
	}
	if cfg.SMSIR.TemplateID == "" {
		return nil, fmt.Errorf("sms.ir template id required when SMS enabled")
	}

	return &Client{
		client:     smsir.NewClient().WithAuthentication(cfg.SMSIR.APIKey, cfg.SMSIR.SecretKey),
		templateID: cfg.SMSIR.TemplateID,
		enabled:    true,
		log:        log,
	}, nil
}

// SendResetCode sends code using the configured template, which must declare a
// "code" parameter.
func (c *Client) SendResetCode(ctx context.Context, phoneNumber, code string) error {
	if phoneNumber == "" {
		return errors.New("phone number is required")
	}
	if code == "" {
		return errors.New("code is required")
	}

	if !c.enabled {
		c.log.DebugContext(ctx, "sms disabled, reset code not sent", slog.String("phone", phoneNumber), slog.String("code", code))
		return nil
	}

	_, err := c.client.Verification.UltraFastSend(ctx, &smsir.UltraFastSendRequest{
		Mobile:     phoneNumber,
		TemplateID: c.templateID,
		Parameters: []smsir.UltraFastParameter{{Key: "code", Value: code}},
	})
	if err != nil {
		return fmt.Errorf("sms.ir send failed: %w", err)
	}
	return nil
}

func (c *Client) IsEnabled() bool {
	return c.enabled
}
