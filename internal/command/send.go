package command

import (
	"github.com/dropDatabas3/mailerctl/internal/mailer"
	"github.com/dropDatabas3/mailerctl/internal/metrics"
	"github.com/dropDatabas3/mailerctl/internal/observability/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type sendFlags struct {
	from        string
	to          string
	subject     string
	body        string
	contentType string
	metricsFile string
}

func newTestCommand(a *app) *cobra.Command {
	test := &cobra.Command{
		Use:   "test",
		Short: "Test the mailer configuration",
	}

	var f sendFlags
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a test email with the Neos.SymfonyMailer configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.send(cmd, f)
		},
	}
	send.Flags().StringVar(&f.from, "from", "", "from address of the message")
	send.Flags().StringVar(&f.to, "to", "", "to address of the message")
	send.Flags().StringVar(&f.subject, "subject", "", "subject of the message")
	send.Flags().StringVar(&f.body, "body", "", "body of the message")
	send.Flags().StringVar(&f.contentType, "contentType", mailer.FormatPlaintext, `body content type: "text/plain" or "html"`)
	send.Flags().StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus textfile metrics of the send to this path")
	_ = send.MarkFlagRequired("from")
	_ = send.MarkFlagRequired("to")
	_ = send.MarkFlagRequired("subject")

	test.AddCommand(send)
	return test
}

func (a *app) send(cmd *cobra.Command, f sendFlags) error {
	p := newPrinter(cmd)
	ctx := cmd.Context()
	log := logger.From(ctx).With(logger.Op("test.send"))

	email := mailer.NewEmail(f.from, f.to, f.subject, f.body, f.contentType)

	p.Title(`Send mail with following configuration "Neos.SymfonyMailer":`)
	if err := p.YAML(a.dump(a.settings.PackageRaw)); err != nil {
		return err
	}

	cfg := mailer.ServiceConfig{DSN: a.settings.Mailer.DSN, Logger: log}

	var reg *prometheus.Registry
	if f.metricsFile != "" {
		reg = prometheus.NewRegistry()
		if err := metrics.RegisterMail(reg); err != nil {
			return err
		}
		cfg.Dispatcher = metrics.NewDispatcher()
	}

	m, err := mailer.NewService(cfg).GetMailer(a.opts.Transport)
	if err != nil {
		return err
	}

	sendErr := m.Send(ctx, email)

	if reg != nil {
		if err := metrics.WriteTextfile(f.metricsFile, reg); err != nil {
			// no tapa el resultado del envío
			log.Warn("write metrics textfile failed", logger.String("path", f.metricsFile), logger.Err(err))
		}
	}
	if sendErr != nil {
		return sendErr
	}

	p.Success("E-Mail has successfully been sent.")
	return nil
}
