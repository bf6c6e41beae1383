package email

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoTranslator struct{}

func (echoTranslator) T(_ string, key string, args ...any) string {
	if len(args) > 0 {
		return fmt.Sprintf(key+" %v", args...)
	}
	return key
}

func TestNew_EnabledRequiresHostAndRecipients(t *testing.T) {
	_, err := New(Config{Enabled: true, NotifyTo: []string{"a@x.com"}})
	assert.Error(t, err)

	_, err = New(Config{Enabled: true, SMTPHost: "smtp.x.com"})
	assert.Error(t, err)

	c, err := New(Config{Enabled: true, SMTPHost: "smtp.x.com", NotifyTo: []string{"a@x.com"}})
	require.NoError(t, err)
	assert.True(t, c.Enabled())
}

func TestSend_Disabled(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)

	err = c.Send(context.Background(), Message{})
	assert.True(t, errors.As(err, &ErrDisabled{}))
}

func TestBuildMessage_Validation(t *testing.T) {
	ok := Message{To: []string{"a@x.com"}, Subject: "s", TextBody: "b"}

	_, err := buildMessage("", ok)
	assert.Error(t, err)

	_, err = buildMessage("from@x.com", Message{To: []string{" "}, Subject: "s", TextBody: "b"})
	assert.Error(t, err)

	_, err = buildMessage("from@x.com", Message{To: []string{"a@x.com"}, Subject: "s"})
	assert.Error(t, err)

	msg, err := buildMessage("from@x.com", ok)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com"}, msg.GetHeader("To"))
}

func TestBuildContactNotification_EscapesInput(t *testing.T) {
	m := BuildContactNotification(echoTranslator{}, "vi", []string{"owner@x.com"}, ContactNotification{
		ID:         "abc",
		Name:       "Jane",
		Email:      "jane@x.com",
		Phone:      "0912345678",
		Project:    "Vinhome",
		Message:    "<script>alert(1)</script>",
		ReceivedAt: time.Date(2025, 3, 4, 5, 6, 0, 0, time.UTC),
	})

	assert.Equal(t, "contact.subject Jane", m.Subject)
	assert.Equal(t, "jane@x.com", m.ReplyTo)
	assert.Contains(t, m.TextBody, "contact.project: Vinhome")
	assert.Contains(t, m.TextBody, "04/03/2025 05:06")
	assert.NotContains(t, m.HTMLBody, "<script>")
	assert.Contains(t, m.HTMLBody, "&lt;script&gt;")
}
