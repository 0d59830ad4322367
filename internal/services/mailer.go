package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func NewMailer() *Mailer {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("Mailer disabled: missing SMTP environment variables")
	}

	return &Mailer{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

func (s *Mailer) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: CarrierTalk <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		if err := smtp.SendMail(addr, auth, s.From, to, msg); err != nil {
			log.Printf("Failed to send mail to %v: %v", to, err)
		}
	}()
}

// SendReplyNotification mails the author of a comment that got a reply.
func (s *Mailer) SendReplyNotification(to, actorName, replyBody, parentBody string) {
	subject := fmt.Sprintf("%s replied to your comment", actorName)
	body := fmt.Sprintf(
		"<p><strong>%s</strong> replied to your comment on CarrierTalk:</p>"+
			"<blockquote>%s</blockquote>"+
			"<p>Your comment:</p>"+
			"<blockquote>%s</blockquote>",
		actorName, replyBody, parentBody)
	s.sendAsync([]string{to}, subject, body)
}
