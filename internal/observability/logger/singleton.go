package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu       sync.Mutex
	instance *zap.Logger
)

// Init inicializa el logger global.
// A diferencia de un servicio, la CLI puede re-inicializarlo (ej: el flag
// --log-level se conoce recién después de parsear los argumentos).
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = build(cfg)
}

// Set reemplaza el logger global. Pensado para tests (zaptest/observer).
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	instance = l
}

// L retorna el logger global.
// Si Init() no fue llamado, crea uno por defecto (dev, warn).
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = build(Config{Env: "dev", Level: "warn"})
	}
	return instance
}

// Sync flushea cualquier buffer pendiente.
// Debe llamarse con defer en main.go.
func Sync() error {
	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		return instance.Sync()
	}
	return nil
}
