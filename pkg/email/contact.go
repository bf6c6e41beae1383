package email

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Translator is satisfied by *i18n.Bundle.
type Translator interface {
	T(locale, key string, args ...any) string
}

// ContactNotification is the data of a contact-form submission.
type ContactNotification struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Project    string
	Message    string
	ReceivedAt time.Time
}

// BuildContactNotification renders the message sent to the site owner for a
// new contact. Labels come from the locale catalog; user input is HTML-escaped.
func BuildContactNotification(tr Translator, locale string, to []string, n ContactNotification) Message {
	rows := [][2]string{
		{tr.T(locale, "contact.name"), n.Name},
		{tr.T(locale, "contact.email"), n.Email},
		{tr.T(locale, "contact.phone"), n.Phone},
		{tr.T(locale, "contact.project"), n.Project},
		{tr.T(locale, "contact.message"), n.Message},
		{tr.T(locale, "contact.received_at"), n.ReceivedAt.Format("02/01/2006 15:04")},
	}

	var text, htm strings.Builder
	heading := tr.T(locale, "contact.heading")

	text.WriteString(heading + "\n\n")
	htm.WriteString(`<div style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: auto;">`)
	fmt.Fprintf(&htm, `<h2 style="color: #2E86C1;">%s</h2>`, html.EscapeString(heading))
	for _, r := range rows {
		fmt.Fprintf(&text, "%s: %s\n", r[0], r[1])
		fmt.Fprintf(&htm, `<p><strong>%s:</strong> %s</p>`, html.EscapeString(r[0]), html.EscapeString(r[1]))
	}
	fmt.Fprintf(&htm, `<hr style="margin: 20px 0;" /><p style="font-size: 0.9em; color: #999;">#%s</p></div>`, html.EscapeString(n.ID))

	return Message{
		To:       to,
		ReplyTo:  n.Email,
		Subject:  tr.T(locale, "contact.subject", n.Name),
		TextBody: text.String(),
		HTMLBody: htm.String(),
	}
}
