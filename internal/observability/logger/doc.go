// Package logger provides the global Zap logger used by mailerctl.
//
// # Design Decisions
//
//   - Global: una sola instancia, (re)inicializada con Init() desde el root command.
//   - Stderr: los logs nunca van a stdout, que es la salida "de producto" de la CLI
//     (el DSN generado, el YAML de diagnóstico).
//   - Environments: "dev" usa consola con colores, "prod" usa JSON.
//   - Levels: debug, info, warn, error (configurable via LOG_LEVEL o --log-level).
//
// # Usage
//
//	logger.Init(logger.Config{
//	    Env:   os.Getenv("APP_ENV"),
//	    Level: os.Getenv("LOG_LEVEL"),
//	})
//	defer logger.Sync()
//
//	log := logger.From(ctx)
//	log.Debug("sending email", logger.Host(host))
package logger
