// Package logging provides the process-wide zap logger and the field names
// shared by quoting, the ledger and the quote-file parser.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger. Quote output goes to stdout, so logs default to stderr.
var Logger *zap.Logger

// Config contains logging configuration
type Config struct {
	// Level is the minimum log level; unknown levels mean warn
	Level string `json:"level" mapstructure:"level"`

	// Format is json or console
	Format string `json:"format" mapstructure:"format"`

	// Output is stderr, stdout or a file path
	Output string `json:"output" mapstructure:"output"`

	// Development adds stack traces to errors
	Development bool `json:"development" mapstructure:"development"`
}

// DefaultConfig logs warnings and above to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "console",
		Output: "stderr",
	}
}

func (c Config) level() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return zapcore.WarnLevel
	}
	return level
}

func (c Config) encoder() zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "ts"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	if c.Format == "json" {
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func (c Config) sink() (zapcore.WriteSyncer, error) {
	switch c.Output {
	case "", "stderr":
		return zapcore.Lock(os.Stderr), nil
	case "stdout":
		return zapcore.Lock(os.Stdout), nil
	}
	f, err := os.OpenFile(c.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(f), nil
}

// Initialize builds the global logger from cfg. On error the previous logger stays.
func Initialize(cfg Config) error {
	sink, err := cfg.sink()
	if err != nil {
		return err
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.ErrorLevel))
	}
	Logger = zap.New(zapcore.NewCore(cfg.encoder(), sink, cfg.level()), opts...)
	return nil
}

// Replace swaps the global logger, returning a func that restores the previous one.
func Replace(l *zap.Logger) func() {
	prev := Logger
	Logger = l
	return func() { Logger = prev }
}

// Sync flushes the logger
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// With returns a logger with additional fields
func With(fields ...zap.Field) *zap.Logger {
	return Logger.WithOptions(zap.AddCallerSkip(-1)).With(fields...)
}

// Service names the priced service.
func Service(name string) zap.Field { return zap.String("service", name) }

// Item names a ledger line item.
func Item(id string) zap.Field { return zap.String("item", id) }

// Block names a quote-file block by its address.
func Block(address string) zap.Field { return zap.String("block", address) }

// Money logs a whole-unit amount.
func Money(key string, amount int64) zap.Field { return zap.Int64(key, amount) }

func Debug(msg string, fields ...zap.Field) { Logger.Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { Logger.Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { Logger.Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { Logger.Error(msg, fields...) }

func init() {
	_ = Initialize(DefaultConfig())
}
