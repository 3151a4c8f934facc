package command

import (
	"github.com/dropDatabas3/mailerctl/internal/mailer"
	"github.com/dropDatabas3/mailerctl/internal/observability/logger"
	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate legacy mailer settings",
	}

	generate := &cobra.Command{
		Use:   "generateDSNFromSwiftMailer",
		Short: "Print a mailer DSN built from the Neos.SwiftMailer transport settings",
		Long: `Reads Neos.SwiftMailer.transport from the settings and prints the equivalent
DSN for Neos.SymfonyMailer.mailer.dsn. Nothing is written back: copy the DSN
into your settings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.generateDSNFromSwiftMailer(cmd)
		},
	}

	migrate.AddCommand(generate)
	return migrate
}

func (a *app) generateDSNFromSwiftMailer(cmd *cobra.Command) error {
	p := newPrinter(cmd)
	legacy := a.settings.Legacy

	if !legacy.HasType {
		return &mailer.ConfigurationError{
			Msg: "No SwiftMailer configuration found. Nothing to migrate.",
			Err: mailer.ErrNoLegacyTransport,
		}
	}

	p.Title(`Found Configuration for "Neos.SwiftMailer":`)
	if err := p.YAML(a.dump(a.settings.LegacyRaw)); err != nil {
		return err
	}

	svc := mailer.NewService(mailer.ServiceConfig{})
	m, err := svc.MigrateTransport(legacy.Type, legacy.Options)
	if err != nil {
		logger.From(cmd.Context()).Debug("migration failed",
			logger.String("type", legacy.Type),
			logger.Err(err),
		)
		return err
	}

	p.Success("DSN created: " + m.DSN)
	for _, n := range m.Notes {
		p.Warn(n)
	}
	return nil
}
