package mailer

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Client sends transactional mail over SMTP. Configuration comes from
// SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS and SMTP_FROM.
type Client struct {
	host string
	port int
	user string
	pass string
	from string
}

func New() *Client {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "localhost"
	}

	port := 25
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "Comparte Ride <noreply@comparteride.com>"
	}

	return &Client{
		host: host,
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
		from: from,
	}
}

func (c *Client) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(c.host, c.port, c.user, c.pass)
	return dialer.DialAndSend(msg)
}

// SendVerificationEmail mails the account verification token to a new
// user. It runs on its own goroutine; delivery is never awaited and a
// failure is only logged.
func (c *Client) SendVerificationEmail(email, username, token string) {
	go func() {
		subject := fmt.Sprintf("Welcome @%s! - Account Verification Code", username)
		body := fmt.Sprintf(
			"<p>Hi @%s, verify your account with this token:</p><pre>%s</pre>",
			username, token,
		)
		if err := c.send(email, subject, body); err != nil {
			log.Printf("Failed to send verification email to %s: %v", email, err)
		}
	}()
}
