package mailer

import (
	"context"
	"errors"
	"time"

	"github.com/dropDatabas3/mailerctl/internal/observability/logger"
	"go.uber.org/zap"
)

// EventKind identifica el momento del envío.
type EventKind int

const (
	// EventMessage se dispara antes de entregar el mensaje al transporte.
	EventMessage EventKind = iota
	// EventSent se dispara cuando el transporte aceptó el mensaje.
	EventSent
	// EventFailed se dispara cuando el transporte falló.
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventMessage:
		return "message"
	case EventSent:
		return "sent"
	case EventFailed:
		return "failed"
	}
	return "unknown"
}

// Event describe un envío para los listeners.
type Event struct {
	Kind      EventKind
	Transport string
	Email     Email
	Duration  time.Duration // solo en EventSent / EventFailed
	Err       error         // solo en EventFailed
}

// Dispatcher recibe los eventos del Mailer.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event)
}

// DispatcherFunc adapta una función a Dispatcher.
type DispatcherFunc func(ctx context.Context, ev Event)

func (f DispatcherFunc) Dispatch(ctx context.Context, ev Event) { f(ctx, ev) }

// Dispatchers reparte cada evento a todos los dispatchers de la lista.
type Dispatchers []Dispatcher

func (ds Dispatchers) Dispatch(ctx context.Context, ev Event) {
	for _, d := range ds {
		if d != nil {
			d.Dispatch(ctx, ev)
		}
	}
}

// Mailer envía emails a través de un Transport.
type Mailer struct {
	transport  Transport
	log        *zap.Logger
	dispatcher Dispatcher
}

// MailerOption configura un Mailer.
type MailerOption func(*Mailer)

// WithLogger usa l en lugar del logger del contexto.
func WithLogger(l *zap.Logger) MailerOption {
	return func(m *Mailer) { m.log = l }
}

// WithDispatcher registra un Dispatcher de eventos.
func WithDispatcher(d Dispatcher) MailerOption {
	return func(m *Mailer) { m.dispatcher = d }
}

// NewMailer envuelve un Transport.
func NewMailer(t Transport, opts ...MailerOption) *Mailer {
	m := &Mailer{transport: t}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Transport retorna el transporte subyacente.
func (m *Mailer) Transport() Transport {
	return m.transport
}

// Send envía e de forma sincrónica. Los errores del transporte se devuelven
// como *TransportError.
func (m *Mailer) Send(ctx context.Context, e Email) error {
	log := m.log
	if log == nil {
		log = logger.From(ctx)
	}
	log = log.With(
		logger.Component("Mailer"),
		logger.Scheme(m.transport.Name()),
	)

	m.dispatch(ctx, Event{Kind: EventMessage, Transport: m.transport.Name(), Email: e})

	log.Debug("sending email",
		logger.Email("from", e.From),
		logger.Email("to", e.To),
		logger.String("subject", e.Subject),
		logger.Bool("html", e.IsHTML()),
	)

	start := time.Now()
	err := m.transport.Send(logger.ToContext(ctx, log), e)
	elapsed := time.Since(start)

	if err != nil {
		err = transportErr(m.transport.Name(), err)
		var te *TransportError
		if errors.As(err, &te) {
			log = log.With(
				logger.String("smtp_diag", te.Diag.Code),
				logger.Bool("temporary", te.Diag.Temporary),
			)
		}
		log.Error("email send failed", logger.Err(err))
		m.dispatch(ctx, Event{Kind: EventFailed, Transport: m.transport.Name(), Email: e, Duration: elapsed, Err: err})
		return err
	}

	log.Info("email sent successfully")
	m.dispatch(ctx, Event{Kind: EventSent, Transport: m.transport.Name(), Email: e, Duration: elapsed})
	return nil
}

func (m *Mailer) dispatch(ctx context.Context, ev Event) {
	if m.dispatcher != nil {
		m.dispatcher.Dispatch(ctx, ev)
	}
}
