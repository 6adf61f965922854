// Package mail dispatches the platform's transactional emails through
// SendGrid: account activation and password reset, each embedding a signed
// token in a link back to the client application.
package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/pckhai-work/blog-system-mern-stack/internal/errors"
)

// Mailer sends transactional emails. Implemented by the SendGrid client and
// mocked in service tests.
type Mailer interface {
	SendActivationEmail(ctx context.Context, to, token string) error
	SendPasswordResetEmail(ctx context.Context, to, token string) error
}

type sendgridMailer struct {
	client    *sendgrid.Client
	from      string
	appName   string
	clientURL string
}

// NewSendgridMailer builds a Mailer backed by the SendGrid API.
func NewSendgridMailer(apiKey, from, appName, clientURL string) Mailer {
	return &sendgridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		from:      from,
		appName:   appName,
		clientURL: clientURL,
	}
}

// SendActivationEmail mails the account activation link. The token is the
// only persisted form of the pending signup, so a lost email means signing
// up again.
func (m *sendgridMailer) SendActivationEmail(ctx context.Context, to, token string) error {
	subject := "Account activation link"
	link := fmt.Sprintf("%s/auth/account/activate/%s", m.clientURL, token)
	html := fmt.Sprintf(`
        <p>Please use the following link to activate your account:</p>
        <p>%s</p>
        <hr />
        <p>This email may contain sensitive information</p>
        <p>%s</p>
    `, link, m.clientURL)
	plain := fmt.Sprintf("Please use the following link to activate your account: %s", link)

	return m.send(to, subject, plain, html)
}

// SendPasswordResetEmail mails the password reset link. The link expires in
// ten minutes.
func (m *sendgridMailer) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	subject := "Password reset link"
	link := fmt.Sprintf("%s/auth/password/reset/%s", m.clientURL, token)
	html := fmt.Sprintf(`
        <p>Please use the following link to reset your password:</p>
        <p>%s</p>
        <hr />
        <p>This email may contain sensitive information</p>
        <p>%s</p>
    `, link, m.clientURL)
	plain := fmt.Sprintf("Please use the following link to reset your password: %s", link)

	return m.send(to, subject, plain, html)
}

func (m *sendgridMailer) send(to, subject, plain, html string) error {
	from := sgmail.NewEmail(m.appName, m.from)
	recipient := sgmail.NewEmail("", to)
	message := sgmail.NewSingleEmail(from, subject, recipient, plain, html)

	response, err := m.client.Send(message)
	if err != nil {
		return errors.ErrEmailSendFailed
	}
	if response.StatusCode >= http.StatusBadRequest {
		return errors.ErrEmailSendFailed
	}
	return nil
}
