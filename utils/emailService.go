package utils

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"learnhub/logger"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers one HTML message.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SendGridMailer sends through the SendGrid v3 API.
type SendGridMailer struct {
	key  string
	from *sgmail.Email
	log  *logger.Logger
}

func NewSendGridMailer(apiKey, senderName, senderEmail string, log *logger.Logger) *SendGridMailer {
	return &SendGridMailer{
		key:  apiKey,
		from: sgmail.NewEmail(senderName, senderEmail),
		log:  log.With("component", "mailer"),
	}
}

func (m *SendGridMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail("", to))

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(sgmail.NewContent("text/html", htmlBody))

	req := sendgrid.GetRequest(m.key, "/v3/mail/send", "https://api.sendgrid.com")
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(msg)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	m.log.Debug("Email sent", "subject", subject)
	return nil
}

// LogMailer only logs outgoing mail. Used when no SendGrid key is configured.
type LogMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log.With("component", "mailer")}
}

func (m *LogMailer) Send(_ context.Context, to, subject, _ string) error {
	m.log.Info("Email not delivered, no provider configured", "to", to, "subject", subject)
	return nil
}

// SendAsync delivers in the background and logs failures.
func SendAsync(mailer Mailer, log *logger.Logger, content EmailContent, to string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := mailer.Send(ctx, to, content.Subject, content.HTML); err != nil {
			log.Error("Failed to send email", "subject", content.Subject, "error", err)
		}
	}()
}

type EmailContent struct {
	Subject string
	HTML    string
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 10px; border: 1px solid #E1E1E1; overflow: hidden; }
			.header { background-color: #1F2937; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #333333; line-height: 1.6; }
			.footer { padding: 20px; text-align: center; font-size: 12px; color: #888888; border-top: 1px solid #EEEEEE; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #D4AF37; color: #FFFFFF; text-decoration: none; border-radius: 5px; font-weight: bold; }
			.muted { word-break: break-all; color: #888888; font-size: 12px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>LEARNHUB</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">LearnHub LMS - Your Learning Journey Starts Here</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

func PasswordResetEmail(resetLink string) EmailContent {
	link := html.EscapeString(resetLink)
	body := fmt.Sprintf(`
		<p>Hello,</p>
		<p>You requested a password reset for your LearnHub account. Click the button below to choose a new password:</p>
		<p style="text-align:center; margin: 30px 0;"><a class="btn" href="%s">Reset Password</a></p>
		<p>Or copy and paste this link into your browser:</p>
		<p class="muted">%s</p>
		<p>This link will expire in 1 hour. If you did not request this, please ignore this email.</p>
	`, link, link)
	return EmailContent{Subject: "Password Reset Link", HTML: getEmailTemplate("Password Reset Request", body)}
}

func EnrollmentConfirmationEmail(name, courseTitle string) EmailContent {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your payment was received and you are now enrolled in <strong>%s</strong>.</p>
		<p>Head to your dashboard to start the first lesson.</p>
	`, html.EscapeString(name), html.EscapeString(courseTitle))
	return EmailContent{Subject: "You're enrolled: " + courseTitle, HTML: getEmailTemplate("Enrollment Confirmed", body)}
}

func CertificateIssuedEmail(name, courseTitle, certificateNumber string) EmailContent {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations on completing <strong>%s</strong>.</p>
		<p>Your certificate number is <strong>%s</strong>. You can view it any time from the certificates page.</p>
	`, html.EscapeString(name), html.EscapeString(courseTitle), html.EscapeString(certificateNumber))
	return EmailContent{Subject: "Your certificate for " + courseTitle, HTML: getEmailTemplate("Certificate Issued", body)}
}
