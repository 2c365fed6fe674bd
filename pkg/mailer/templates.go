package mailer

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
)

var notificationHTML = htmltpl.Must(htmltpl.New("notification").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>{{.Headline}}</h2>
    {{if .Message}}<p>&ldquo;{{.Message}}&rdquo;</p>{{end}}
    <p style="color: #888; font-size: 12px;">Sent by PeerPay on behalf of {{.Sender}}.</p>
  </body>
</html>`))

type notificationData struct {
	Headline string
	Message  string
	Sender   string
}

// Render produces subject, text, and html bodies for a transaction
// notification template. Data keys: Sender (name), Amount (display string),
// Message (free text from the transaction).
func Render(template string, data map[string]any) (subject, text, html string, err error) {
	sender := fmt.Sprintf("%v", data["Sender"])
	amount := fmt.Sprintf("%v", data["Amount"])
	message, _ := data["Message"].(string)

	switch template {
	case TemplatePayment:
		subject = fmt.Sprintf("%s paid you $%s", sender, amount)
	case TemplateRequest:
		subject = fmt.Sprintf("%s has requested $%s from you", sender, amount)
	default:
		return "", "", "", fmt.Errorf("unknown template %q", template)
	}

	text = subject
	if message != "" {
		text += "\n\n" + message
	}

	var buf bytes.Buffer
	if err := notificationHTML.Execute(&buf, notificationData{
		Headline: subject,
		Message:  message,
		Sender:   sender,
	}); err != nil {
		return "", "", "", err
	}
	return subject, text, buf.String(), nil
}
