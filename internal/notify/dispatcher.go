package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanisamoj/Borai-sub000/internal/metrics"
)

type Pusher interface {
	SendMessage(userID uuid.UUID, msg Message) error
}

type Mailer interface {
	SendEmail(to, subject, html string) error
}

// Dispatcher delivers notifications without ever failing the caller.
// Delivery errors are logged and counted.
type Dispatcher struct {
	pusher      Pusher
	mailer      Mailer
	mailEnabled bool
	wg          sync.WaitGroup
}

func NewDispatcher(pusher Pusher, mailer Mailer, mailEnabled bool) *Dispatcher {
	return &Dispatcher{
		pusher:      pusher,
		mailer:      mailer,
		mailEnabled: mailEnabled,
	}
}

func (d *Dispatcher) Push(userID uuid.UUID, kind, text string) {
	msg := Message{Type: kind, Text: text, At: time.Now().UTC()}
	if err := d.pusher.SendMessage(userID, msg); err != nil {
		metrics.IncNotificationDropped("push")
		zap.L().Warn("push notification dropped",
			zap.String("user_id", userID.String()),
			zap.String("type", kind),
			zap.Error(err))
	}
}

// Mail sends in the background.
func (d *Dispatcher) Mail(to, subject, html string) {
	if !d.mailEnabled || d.mailer == nil || to == "" {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.mailer.SendEmail(to, subject, html); err != nil {
			metrics.IncNotificationDropped("mail")
			zap.L().Warn("email notification dropped", zap.String("to", to), zap.Error(err))
		}
	}()
}

// Wait blocks until every pending email has been handed to the mailer.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
