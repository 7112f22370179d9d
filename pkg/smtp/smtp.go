package smtp

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/nedconnect/backend/pkg/logger/types"
)

// Client is the outgoing mail client.
type Client struct {
	logger *types.Logger
	dialer *gomail.Dialer
	from   string
	domain string
}

func NewClient(logger *types.Logger, dialer *gomail.Dialer, from, domain string) *Client {
	return &Client{
		logger: logger,
		dialer: dialer,
		from:   from,
		domain: domain,
	}
}

// SendTicket mails the registration confirmation with the QR ticket attached.
func (c *Client) SendTicket(to, eventTitle, when string, ticketPNG []byte) {
	msg := c.newMessage(to, fmt.Sprintf("Registration confirmed: %s", eventTitle))
	msg.SetBody("text/plain", fmt.Sprintf(
		"You are registered for %s on %s.\n\nShow the attached QR ticket at the entrance.", eventTitle, when))
	msg.Attach("ticket.png",
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(ticketPNG))
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {"image/png"}}),
	)

	c.send(msg)
}

// SendReminder mails the day-before nudge for an upcoming event.
func (c *Client) SendReminder(to, eventTitle, when, venue string) {
	msg := c.newMessage(to, fmt.Sprintf("Reminder: %s is tomorrow", eventTitle))
	msg.SetBody("text/plain", fmt.Sprintf(
		"A reminder that %s takes place on %s at %s.\n\nSee you there!", eventTitle, when, venue))

	c.send(msg)
}

func (c *Client) newMessage(to, subject string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	return msg
}

func (c *Client) send(msg *gomail.Message) {
	if err := c.dialer.DialAndSend(msg); err != nil {
		c.logger.Errorf("failed to send email: %v", err)
		return
	}
	c.logger.Debugf("email sent to %s", msg.GetHeader("To"))
}

func generateMessageID(domain string) string {
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
