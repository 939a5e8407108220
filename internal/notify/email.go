package notify

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
)

// EmailComposer is a Notifier that renders each event as an RFC 5322
// message in an outbox directory. Actual delivery is someone else's job; a
// local MTA or the user can pick the files up from there.
type EmailComposer struct {
	OutboxDir string
	From      string
	To        string

	// OnError receives compose failures; reminders are best-effort.
	OnError func(error)
}

// Notify writes one .eml file for the event.
func (c *EmailComposer) Notify(e Event) {
	if err := c.compose(e, time.Now()); err != nil && c.OnError != nil {
		c.OnError(err)
	}
}

func (c *EmailComposer) compose(e Event, now time.Time) error {
	if err := os.MkdirAll(c.OutboxDir, 0o755); err != nil {
		return fmt.Errorf("creating outbox %s: %w", c.OutboxDir, err)
	}

	name := fmt.Sprintf("%s-%s.eml", now.Format("20060102T150405"), slug(e.Body))
	f, err := os.Create(filepath.Join(c.OutboxDir, name))
	if err != nil {
		return fmt.Errorf("creating reminder file: %w", err)
	}
	defer f.Close()

	var h mail.Header
	h.SetDate(now)
	h.SetAddressList("From", []*mail.Address{{Address: c.From}})
	h.SetAddressList("To", []*mail.Address{{Address: c.To}})
	h.SetSubject(e.Title)

	w, err := mail.CreateSingleInlineWriter(f, h)
	if err != nil {
		return fmt.Errorf("writing reminder headers: %w", err)
	}
	if _, err := io.WriteString(w, e.Body+"\n"); err != nil {
		w.Close()
		return fmt.Errorf("writing reminder body: %w", err)
	}
	return w.Close()
}

// slug reduces an event body to a short filesystem-safe fragment.
func slug(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if len(out) > 40 {
		out = out[:40]
	}
	return out
}
