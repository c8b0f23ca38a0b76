package criteria

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/hugr-lab/criteria-go/filter"
)

// Config contains configuration for a criteria Engine.
type Config struct {
	// Columns resolves field names in criteria to typed columns.
	// REQUIRED: MUST NOT be nil.
	Columns filter.ColumnResolver

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil and LogLevel is nil.
	Logger *slog.Logger

	// LogLevel sets the logging level.
	// OPTIONAL: Only used if Logger is nil; a text logger writing to
	// stderr is created with that level.
	LogLevel *slog.Level

	// MaxParallelism bounds the number of requests CompileBatch compiles
	// at once.
	// OPTIONAL: If 0, uses GOMAXPROCS. MUST NOT be negative.
	MaxParallelism int
}

// Standard errors returned by the criteria package.
var (
	// ErrInvalidConfig indicates Config validation failed.
	ErrInvalidConfig = errors.New("invalid criteria config")
)

// validateConfig checks that required Config fields are valid.
func validateConfig(config Config) error {
	if config.Columns == nil {
		return fmt.Errorf("column resolver is required")
	}
	if config.MaxParallelism < 0 {
		return fmt.Errorf("max parallelism must not be negative, got %d", config.MaxParallelism)
	}
	return nil
}

// logger returns the configured logger, creating one for LogLevel if needed.
func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	if c.LogLevel == nil {
		return slog.Default()
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: *c.LogLevel,
	})
	return slog.New(handler)
}

func (c Config) parallelism() int {
	if c.MaxParallelism > 0 {
		return c.MaxParallelism
	}
	return runtime.GOMAXPROCS(0)
}
