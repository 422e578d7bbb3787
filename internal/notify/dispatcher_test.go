package notify

import (
	"errors"
	"net/smtp"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanisamoj/Borai-sub000/internal/config"
	"github.com/sanisamoj/Borai-sub000/internal/metrics"
)

type fakePusher struct {
	mu   sync.Mutex
	sent map[uuid.UUID][]Message
	err  error
}

func (p *fakePusher) SendMessage(userID uuid.UUID, msg Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	if p.sent == nil {
		p.sent = make(map[uuid.UUID][]Message)
	}
	p.sent[userID] = append(p.sent[userID], msg)
	return nil
}

type fakeMailer struct {
	mu  sync.Mutex
	to  []string
	err error
}

func (m *fakeMailer) SendEmail(to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.to = append(m.to, to)
	return m.err
}

func TestDispatcher_Push(t *testing.T) {
	pusher := &fakePusher{}
	d := NewDispatcher(pusher, nil, false)
	userID := uuid.New()

	d.Push(userID, "insignia_unlocked", "You unlocked Regular")

	require.Len(t, pusher.sent[userID], 1)
	assert.Equal(t, "insignia_unlocked", pusher.sent[userID][0].Type)
	assert.False(t, pusher.sent[userID][0].At.IsZero())
}

func TestDispatcher_PushFailureIsCounted(t *testing.T) {
	d := NewDispatcher(&fakePusher{err: ErrNotConnected}, nil, false)
	before := testutil.ToFloat64(metrics.NotificationsDropped.WithLabelValues("push"))

	assert.NotPanics(t, func() { d.Push(uuid.New(), "x", "y") })

	after := testutil.ToFloat64(metrics.NotificationsDropped.WithLabelValues("push"))
	assert.Equal(t, before+1, after)
}

func TestDispatcher_Mail(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		mailer := &fakeMailer{}
		d := NewDispatcher(&fakePusher{}, mailer, true)
		d.Mail("bob@example.com", "New follower request", "<p>hi</p>")
		d.Wait()
		assert.Equal(t, []string{"bob@example.com"}, mailer.to)
	})

	t.Run("disabled", func(t *testing.T) {
		mailer := &fakeMailer{}
		d := NewDispatcher(&fakePusher{}, mailer, false)
		d.Mail("bob@example.com", "New follower request", "<p>hi</p>")
		d.Wait()
		assert.Empty(t, mailer.to)
	})

	t.Run("empty recipient", func(t *testing.T) {
		mailer := &fakeMailer{}
		d := NewDispatcher(&fakePusher{}, mailer, true)
		d.Mail("", "New follower request", "<p>hi</p>")
		d.Wait()
		assert.Empty(t, mailer.to)
	})

	t.Run("failure is counted", func(t *testing.T) {
		before := testutil.ToFloat64(metrics.NotificationsDropped.WithLabelValues("mail"))
		d := NewDispatcher(&fakePusher{}, &fakeMailer{err: errors.New("smtp down")}, true)
		d.Mail("bob@example.com", "s", "b")
		d.Wait()
		after := testutil.ToFloat64(metrics.NotificationsDropped.WithLabelValues("mail"))
		assert.Equal(t, before+1, after)
	})
}

func TestSMTPMailer_SendEmail(t *testing.T) {
	conf := &config.MailConfig{
		Host:        "smtp.example.com",
		Port:        587,
		SenderName:  "Borai",
		SenderEmail: "no-reply@borai.app",
	}
	m := NewSMTPMailer(conf)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, m.SendEmail("bob@example.com", "Hello", "<p>body</p>"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "no-reply@borai.app", gotFrom)
	assert.Equal(t, []string{"bob@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Hello\r\n")
	assert.Contains(t, string(gotMsg), "From: Borai <no-reply@borai.app>")

	m.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("refused") }
	assert.Error(t, m.SendEmail("bob@example.com", "Hello", "x"))
}
