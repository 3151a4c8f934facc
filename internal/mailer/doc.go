// Package mailer arma y envía emails a partir de la configuración del mailer,
// y traduce la configuración legacy de SwiftMailer a un DSN.
//
// Arquitectura:
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                    CLI (internal/command)                       │
//	│  migrate generateDSNFromSwiftMailer  |  test send               │
//	└───────────────────────────┬─────────────────────────────────────┘
//	                            │
//	                            ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                        Service                                  │
//	│  mailer.NewService(cfg)                                         │
//	│    - MigrateTransport(type, options)  -> DSN + notas            │
//	│    - GetMailer(transport)             -> *Mailer                │
//	└───────────────────────────┬─────────────────────────────────────┘
//	                            │
//	                            ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                  Transport (TransportFromDSN)                   │
//	│  smtp:// smtps://  -> SMTPTransport (go-mail)                   │
//	│  null://           -> NullTransport                             │
//	└─────────────────────────────────────────────────────────────────┘
package mailer
