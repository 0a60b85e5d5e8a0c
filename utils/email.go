package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func loadEmailConfig() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendOverdueNotice emails a patron that a tool came back overdue.
// Best effort: when SMTP is not configured the notice is skipped.
func SendOverdueNotice(to, patronName, toolName, dueDate string) error {
	config := loadEmailConfig()
	if config.Host == "" {
		LogDebug("SMTP not configured, skipping overdue notice to %s", to)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "ToolShed: overdue return recorded")

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>The tool <strong>%s</strong> you returned today was due on %s.</p>
		<p>Please try to return tools on time so other members can use them.
		Repeated overdue returns may limit how many tools you can borrow.</p>
		<p>Thanks for being part of the tool library!</p>
	`, patronName, toolName, dueDate)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}
