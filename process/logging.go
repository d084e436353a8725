package process

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig configures the process wide zap logger.
type LogConfig struct {
	Level      string `help:"the minimum log level to log" default:"info" releaseDefault:"warn"`
	Encoding   string `help:"the encoding format for logs, one of [console|json]" default:"console"`
	Output     string `help:"where to write logs: stderr, stdout or a file path" default:"stderr"`
	MaxSize    int    `help:"maximum size in megabytes of a log file before it gets rotated" default:"100"`
	MaxBackups int    `help:"maximum number of rotated log files to retain" default:"7"`
	MaxAge     int    `help:"maximum number of days to retain rotated log files" default:"30"`
	Compress   bool   `help:"gzip rotated log files" default:"false"`
}

// NewLogger builds a logger from the config. File output is rotated with lumberjack.
func NewLogger(conf LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(conf.Level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch conf.Encoding {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	var ws zapcore.WriteSyncer
	switch conf.Output {
	case "", "stderr":
		ws = zapcore.Lock(os.Stderr)
	case "stdout":
		ws = zapcore.Lock(os.Stdout)
	default:
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   os.ExpandEnv(conf.Output),
			MaxSize:    conf.MaxSize,
			MaxBackups: conf.MaxBackups,
			MaxAge:     conf.MaxAge,
			Compress:   conf.Compress,
		})
	}

	return zap.New(zapcore.NewCore(enc, ws, level), zap.AddCaller()), nil
}
