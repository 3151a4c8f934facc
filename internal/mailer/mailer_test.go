package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// recordingTransport guarda los mensajes en memoria.
type recordingTransport struct {
	sent []Email
	err  error
}

func (r *recordingTransport) Send(ctx context.Context, e Email) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, e)
	return nil
}

func (r *recordingTransport) Name() string { return "recording" }

func collect(events *[]Event) Dispatcher {
	return DispatcherFunc(func(_ context.Context, ev Event) {
		*events = append(*events, ev)
	})
}

func TestMailer_Send_Success(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tr := &recordingTransport{}
	var events []Event

	m := NewMailer(tr, WithLogger(zap.New(core)), WithDispatcher(collect(&events)))
	e := NewEmail("from@example.com", "to@example.com", "Subject", "Body", "html")

	require.NoError(t, m.Send(context.Background(), e))
	require.Len(t, tr.sent, 1)
	assert.Equal(t, e, tr.sent[0])
	assert.Same(t, tr, m.Transport())

	require.Len(t, events, 2)
	assert.Equal(t, EventMessage, events[0].Kind)
	assert.Equal(t, EventSent, events[1].Kind)
	assert.Equal(t, "recording", events[1].Transport)
	assert.NoError(t, events[1].Err)

	assert.Equal(t, 1, logs.FilterMessage("email sent successfully").Len())
	entry := logs.FilterMessage("sending email").All()
	require.Len(t, entry, 1)
	// las direcciones se loguean enmascaradas
	assert.NotContains(t, entry[0].ContextMap()["from"], "from@")
}

func TestMailer_Send_Failure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tr := &recordingTransport{err: errors.New("connection refused")}
	var events []Event

	m := NewMailer(tr, WithLogger(zap.New(core)), WithDispatcher(collect(&events)))
	err := m.Send(context.Background(), NewEmail("a@example.com", "b@example.com", "s", "b", ""))

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "recording", te.Transport)
	assert.Equal(t, "dial", te.Diag.Code)

	require.Len(t, events, 2)
	assert.Equal(t, EventFailed, events[1].Kind)
	assert.Same(t, te, events[1].Err)
	failed := logs.FilterMessage("email send failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "dial", failed[0].ContextMap()["smtp_diag"])
}

func TestDispatchers_FanOut(t *testing.T) {
	var a, b []Event
	ds := Dispatchers{collect(&a), nil, collect(&b)}
	ds.Dispatch(context.Background(), Event{Kind: EventSent})

	assert.Len(t, a, 1)
	assert.Len(t, b, 1)
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "message", EventMessage.String())
	assert.Equal(t, "sent", EventSent.String())
	assert.Equal(t, "failed", EventFailed.String())
	assert.Equal(t, "unknown", EventKind(42).String())
}

func TestEmail_Defaults(t *testing.T) {
	e := NewEmail("a@example.com", "b@example.com", "s", "b", "  ")
	assert.Equal(t, FormatPlaintext, e.ContentType)
	assert.False(t, e.IsHTML())

	assert.True(t, NewEmail("", "", "", "", "HTML").IsHTML())
	assert.True(t, NewEmail("", "", "", "", "text/html").IsHTML())
}

func TestMessageIDHost(t *testing.T) {
	assert.Equal(t, "example.com", messageIDHost("a@example.com"))
	assert.Equal(t, "example.com", messageIDHost("Someone <a@example.com>"))
	assert.NotEmpty(t, messageIDHost("no-at-sign"))
}
