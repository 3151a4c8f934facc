// Package command arma la CLI de mailerctl (cobra).
//
//	mailerctl migrate generateDSNFromSwiftMailer
//	mailerctl test send --from a@x --to b@y --subject hola [--body ...] [--contentType html]
//
// Los comandos devuelven errores; Execute los imprime una sola vez y los
// traduce a exit code 1.
package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dropDatabas3/mailerctl/internal/config"
	"github.com/dropDatabas3/mailerctl/internal/mailer"
	"github.com/dropDatabas3/mailerctl/internal/observability/logger"
	"github.com/dropDatabas3/mailerctl/internal/util"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

// Options son las dependencias inyectables de la CLI.
type Options struct {
	// Transport reemplaza al transporte del DSN en `test send` (tests).
	Transport mailer.Transport
	// Version se muestra en `--version` y en los logs.
	Version string
}

// app es el estado compartido entre comandos: flags globales y settings.
type app struct {
	opts Options

	configPaths []string
	envFile     string
	logLevel    string
	showSecrets bool
	noColor     bool

	settings *config.Settings
}

// NewRootCommand construye el árbol de comandos.
func NewRootCommand(opts Options) *cobra.Command {
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:               "mailerctl",
		Short:             "Migrate SwiftMailer settings to a mailer DSN and send test emails",
		Version:           opts.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringArrayVar(&a.configPaths, "config", nil, "Settings.yaml to load, repeatable, later files win (env MAILERCTL_CONFIG; default "+config.DefaultPath+")")
	pf.StringVar(&a.envFile, "env-file", "", "dotenv file to load before reading settings (default .env if present)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug|info|warn|error (env LOG_LEVEL)")
	pf.BoolVar(&a.showSecrets, "show-secrets", false, "do not mask passwords in the printed configuration")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newMigrateCommand(a))
	root.AddCommand(newTestCommand(a))
	return root
}

// Execute corre la CLI y retorna el exit code.
func Execute(ctx context.Context, root *cobra.Command) int {
	if err := root.ExecuteContext(ctx); err != nil {
		newPrinter(root).Failure(err)
		return 1
	}
	return 0
}

// setup corre antes de cada subcomando: .env, logger y settings.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.loadEnvFile(); err != nil {
		return err
	}

	if a.noColor {
		color.NoColor = true
	}

	level := a.logLevel
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	logger.Init(logger.Config{
		Env:     os.Getenv("APP_ENV"),
		Level:   level,
		Command: cmd.CommandPath(),
		Version: a.opts.Version,
	})

	// MAILERCTL_CONFIG puede venir del .env, por eso se lee recién acá
	if !cmd.Flags().Changed("config") {
		a.configPaths = config.PathsFromEnv()
	}

	s, err := config.Load(a.configPaths...)
	if err != nil {
		return err
	}
	a.settings = s

	logger.L().Debug("settings loaded",
		logger.Op("setup"),
		logger.Strings("files", s.Files),
		logger.Bool("legacy_transport", s.Legacy.HasType),
		logger.Bool("dsn", s.Mailer.DSN != ""),
	)
	return nil
}

func (a *app) loadEnvFile() error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", a.envFile, err)
		}
		return nil
	}
	if _, err := os.Stat(defaultEnvFile); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(defaultEnvFile); err != nil {
		return fmt.Errorf("load env file %s: %w", defaultEnvFile, err)
	}
	return nil
}

// dump prepara un bloque de settings para imprimirlo.
func (a *app) dump(m map[string]any) map[string]any {
	if a.showSecrets {
		return m
	}
	return util.MaskSecrets(m)
}
