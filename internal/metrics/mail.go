package metrics

import (
	"context"
	"time"

	"github.com/dropDatabas3/mailerctl/internal/mailer"
	"github.com/prometheus/client_golang/prometheus"
)

// Métricas de envío. Pensadas para `test send` corriendo en cron: el resultado
// se vuelca a un archivo para el textfile collector de node_exporter.

var (
	MailSendTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mailerctl_send_total",
		Help: "Envíos de email por transporte y resultado",
	}, []string{"transport", "result"})

	MailSendDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mailerctl_send_duration_seconds",
		Help:    "Duración del envío (dial + SMTP) en segundos",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"transport"})

	MailLastSuccess = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mailerctl_last_success_timestamp_seconds",
		Help: "Unix timestamp del último envío exitoso",
	}, []string{"transport"})
)

// RegisterMail registers the mail metrics on the given registry (or default if nil).
func RegisterMail(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{MailSendTotal, MailSendDuration, MailLastSuccess} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

// Dispatcher registra cada envío del Mailer en las métricas de mail.
type Dispatcher struct {
	now func() time.Time
}

// NewDispatcher crea el dispatcher de métricas.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{now: time.Now}
}

func (d *Dispatcher) Dispatch(_ context.Context, ev mailer.Event) {
	switch ev.Kind {
	case mailer.EventSent:
		MailSendTotal.WithLabelValues(ev.Transport, "success").Inc()
		MailSendDuration.WithLabelValues(ev.Transport).Observe(ev.Duration.Seconds())
		MailLastSuccess.WithLabelValues(ev.Transport).Set(float64(d.now().Unix()))
	case mailer.EventFailed:
		MailSendTotal.WithLabelValues(ev.Transport, "failure").Inc()
		MailSendDuration.WithLabelValues(ev.Transport).Observe(ev.Duration.Seconds())
	}
}

// WriteTextfile vuelca las métricas de g en path (formato textfile collector).
// La escritura es atómica: prometheus escribe a un temporal y renombra.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
