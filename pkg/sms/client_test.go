package sms

import (
	"context"
	"testing"

	"github.com/nguyenanhtu/realty_backend/config"
)

func TestNewFromConfig(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.SMSConfig
		wantEnabled bool
		expectError bool
	}{
		{
			name: "disabled",
			cfg:  config.SMSConfig{Enabled: false},
		},
		{
			name:        "enabled without api key",
			cfg:         config.SMSConfig{Enabled: true, SMSIR: config.SMSIRConfig{TemplateID: "100"}},
			expectError: true,
		},
		{
			name:        "enabled without template",
			cfg:         config.SMSConfig{Enabled: true, SMSIR: config.SMSIRConfig{APIKey: "key"}},
			expectError: true,
		},
		{
			name:        "enabled",
			cfg:         config.SMSConfig{Enabled: true, SMSIR: config.SMSIRConfig{APIKey: "key", SecretKey: "secret", TemplateID: "100"}},
			wantEnabled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewFromConfig(tt.cfg, nil)
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFromConfig failed: %v", err)
			}
			if client.IsEnabled() != tt.wantEnabled {
				t.Errorf("IsEnabled() = %v, want %v", client.IsEnabled(), tt.wantEnabled)
			}
		})
	}
}

func TestSendResetCode_Disabled(t *testing.T) {
	client, _ := NewFromConfig(config.SMSConfig{}, nil)

	if err := client.SendResetCode(context.Background(), "+84912345678", "123456"); err != nil {
		t.Errorf("expected no error for disabled client, got: %v", err)
	}
}

func TestSendResetCode_Validation(t *testing.T) {
	client, _ := NewFromConfig(config.SMSConfig{}, nil)

	if err := client.SendResetCode(context.Background(), "", "123456"); err == nil {
		t.Error("expected error for empty phone")
	}
	if err := client.SendResetCode(context.Background(), "+84912345678", ""); err == nil {
		t.Error("expected error for empty code")
	}
}
