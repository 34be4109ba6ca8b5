package core

import (
	"net/mail"
	"strings"
	texttmpl "text/template"

	"github.com/pkg/errors"
)

type (
	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string
		BodyStr string // simple text/plain, non-templated content

		// templated contents; TemplateBody is a text/template source
		// (mail-template records store these), TemplateData fills it in.
		TemplateBody string
		TemplateData interface{}
		TextContent  string
	}

	EmailService interface {
		SendMessages(messages ...*EmailMessage)
	}
)

// Render executes TemplateBody against TemplateData into TextContent.
// Non-templated messages pass through with BodyStr as content.
func (msg *EmailMessage) Render() error {
	if msg.TemplateBody == "" {
		msg.TextContent = msg.BodyStr
		return nil
	}
	tmpl, err := texttmpl.New("mail").Parse(msg.TemplateBody)
	if err != nil {
		return errors.Wrap(err, "parsing mail template")
	}
	var sb strings.Builder
	if err = tmpl.Execute(&sb, msg.TemplateData); err != nil {
		return errors.Wrap(err, "executing mail template")
	}
	msg.TextContent = sb.String()
	return nil
}

func (msg *EmailMessage) HasRecipients() bool {
	return len(msg.To) > 0 || len(msg.Cc) > 0 || len(msg.Bcc) > 0
}

func (msg *EmailMessage) HasContent() bool {
	return msg.TextContent != "" || msg.BodyStr != "" || msg.TemplateBody != ""
}
