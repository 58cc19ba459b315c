package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blogs/internal/application"
	"github.com/oksasatya/go-ddd-blogs/pkg/helpers"
)

type sentMail struct {
	to, subject, text, html string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, text, html})
	return nil
}

func body(t *testing.T, ev application.Event) []byte {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return b
}

func newNotifier(s *fakeSender) *Notifier {
	return NewNotifier(s, Branding{AppName: "Blogs", CompanyName: "Blogs Inc"}, helpers.NewDiscardLogger())
}

func TestHandleSendsWelcomeOnRegistration(t *testing.T) {
	s := &fakeSender{}
	ev := application.Event{
		Type:       application.EventUserRegistered,
		Username:   "alice",
		Email:      "alice@example.com",
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
	}

	require.NoError(t, newNotifier(s).Handle(context.Background(), body(t, ev)))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "alice@example.com", s.sent[0].to)
	assert.Equal(t, "Welcome to Blogs, alice", s.sent[0].subject)
	assert.Contains(t, s.sent[0].text, "02 January 2026, 03:04")
	assert.NotEmpty(t, s.sent[0].html)
}

func TestHandleIgnoresOtherEvents(t *testing.T) {
	s := &fakeSender{}
	for _, typ := range []string{application.EventUserLoggedIn, application.EventBlogCreated, application.EventArticleDeleted} {
		require.NoError(t, newNotifier(s).Handle(context.Background(), body(t, application.Event{Type: typ, Username: "alice"})))
	}
	assert.Empty(t, s.sent)
}

func TestHandleMalformed(t *testing.T) {
	n := newNotifier(&fakeSender{})

	err := n.Handle(context.Background(), []byte("{not json"))
	assert.ErrorIs(t, err, ErrMalformed)

	err = n.Handle(context.Background(), body(t, application.Event{Type: application.EventUserRegistered, Username: "bob"}))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestHandleSendFailureIsRetryable(t *testing.T) {
	boom := errors.New("mailgun down")
	n := newNotifier(&fakeSender{err: boom})

	err := n.Handle(context.Background(), body(t, application.Event{
		Type: application.EventUserRegistered, Username: "carol", Email: "carol@example.com",
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrMalformed)
}
