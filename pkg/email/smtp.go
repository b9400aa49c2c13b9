package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/jg4611/mad2-by-amit/config"
)

type SMTPClient struct {
	config *config.SMTPConfig
}

func NewSMTPClient(cfg *config.SMTPConfig) *SMTPClient {
	return &SMTPClient{
		config: cfg,
	}
}

type EmailData struct {
	To      string
	Subject string
	Body    string
}

func (c *SMTPClient) SendEmail(data EmailData) error {
	var auth smtp.Auth
	if c.config.Username != "" || c.config.Password != "" {
		auth = smtp.PlainAuth("", c.config.Username, c.config.Password, c.config.Host)
	}

	msg := c.buildMessage(data)

	addr := fmt.Sprintf("%s:%d", c.config.Host, c.config.Port)

	err := smtp.SendMail(addr, auth, c.config.From, []string{data.To}, []byte(msg))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (c *SMTPClient) buildMessage(data EmailData) string {
	msg := fmt.Sprintf("From: %s\r\n", c.config.From)
	msg += fmt.Sprintf("To: %s\r\n", data.To)
	msg += fmt.Sprintf("Subject: %s\r\n", data.Subject)
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=UTF-8\r\n"
	msg += "\r\n"
	msg += data.Body

	return msg
}

func (c *SMTPClient) SendDailyReminder(email, fullName string) error {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Quiz Master - Daily Quiz Reminder</h2>
        <p>Hello {{.FullName}},</p>
        <p>Don't forget to take your daily quiz today! Keep learning and improving.</p>
        <div class="footer">
            <p>Best regards,<br>Quiz Master Team</p>
        </div>
    </div>
</body>
</html>
`

	t, err := template.New("daily_reminder").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, map[string]string{"FullName": fullName}); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return c.SendEmail(EmailData{
		To:      email,
		Subject: "Daily Quiz Reminder",
		Body:    body.String(),
	})
}

func (c *SMTPClient) SendNewQuizNotification(email, fullName, quizTitle, subjectName string) error {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .highlight { color: #007bff; font-weight: bold; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Quiz Master - New Quiz Available</h2>
        <p>Hello {{.FullName}},</p>
        <p>A new quiz has been added to Quiz Master!</p>
        <p>Quiz Details:</p>
        <ul>
            <li>Title: <span class="highlight">{{.QuizTitle}}</span></li>
            <li>Subject: <span class="highlight">{{.SubjectName}}</span></li>
        </ul>
        <p>Login to your account to take the quiz and test your knowledge!</p>
        <div class="footer">
            <p>Best regards,<br>Quiz Master Team</p>
        </div>
    </div>
</body>
</html>
`

	t, err := template.New("new_quiz").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var body bytes.Buffer
	data := map[string]string{
		"FullName":    fullName,
		"QuizTitle":   quizTitle,
		"SubjectName": subjectName,
	}
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return c.SendEmail(EmailData{
		To:      email,
		Subject: fmt.Sprintf("New Quiz Available: %s", quizTitle),
		Body:    body.String(),
	})
}

func (c *SMTPClient) SendRegistrationConfirmation(email, fullName string) error {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Welcome to Quiz Master!</h2>
        <p>Hello {{.FullName}},</p>
        <p>Your account has been successfully created.</p>
        <p>You can now:</p>
        <ul>
            <li>Take quizzes</li>
            <li>Track your progress</li>
            <li>Learn new topics</li>
        </ul>
        <p>Start your learning journey today!</p>
        <div class="footer">
            <p>Best regards,<br>Quiz Master Team</p>
        </div>
    </div>
</body>
</html>
`

	t, err := template.New("registration").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, map[string]string{"FullName": fullName}); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return c.SendEmail(EmailData{
		To:      email,
		Subject: "Welcome to Quiz Master!",
		Body:    body.String(),
	})
}
