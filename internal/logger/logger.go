package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu    sync.RWMutex
	sugar = zap.NewNop().Sugar()
)

// Conf holds logger configuration.
type Conf struct {
	Output     string // stdout or file
	Path       string
	Filename   string
	Level      string
	RotateSize int // MB
	RotateNum  int
	KeepDays   int
}

func (c *Conf) setDefaults() {
	if c.Filename == "" {
		c.Filename = "crm.log"
	}
	if c.RotateSize <= 0 {
		c.RotateSize = 100
	}
	if c.RotateNum <= 0 {
		c.RotateNum = 10
	}
	if c.KeepDays <= 0 {
		c.KeepDays = 7
	}
}

// New builds a zap logger from conf without touching the global instance.
func New(conf Conf) (*zap.Logger, error) {
	conf.setDefaults()

	var ws zapcore.WriteSyncer
	switch conf.Output {
	case "file":
		if conf.Path == "" {
			return nil, fmt.Errorf("log path is required when output is 'file'")
		}
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   fmt.Sprintf("%s/%s", conf.Path, conf.Filename),
			MaxSize:    conf.RotateSize,
			MaxBackups: conf.RotateNum,
			MaxAge:     conf.KeepDays,
			Compress:   true,
		})
	default:
		ws = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(encoder(), ws, ParseLevel(conf.Level))
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)), nil
}

// Init replaces the global logger.
func Init(conf Conf) error {
	l, err := New(conf)
	if err != nil {
		return err
	}
	mu.Lock()
	sugar = l.Sugar()
	mu.Unlock()
	return nil
}

// L returns the global sugared logger. It is a no-op logger until Init is called.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Sync() {
	_ = L().Sync()
}

func Debugw(msg string, kv ...any) { L().Debugw(msg, kv...) }
func Infow(msg string, kv ...any)  { L().Infow(msg, kv...) }
func Warnw(msg string, kv ...any)  { L().Warnw(msg, kv...) }
func Errorw(msg string, kv ...any) { L().Errorw(msg, kv...) }
func Fatalw(msg string, kv ...any) { L().Fatalw(msg, kv...) }

// ParseLevel maps DEBUG/INFO/WARN/ERROR to zap levels, defaulting to INFO.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func encoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = "time"
	cfg.LevelKey = "level"
	cfg.CallerKey = "caller"
	cfg.MessageKey = "msg"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05"))
	}
	cfg.EncodeDuration = zapcore.SecondsDurationEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(cfg)
}
