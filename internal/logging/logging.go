package logging

import (
    "io"
    "os"
    "path/filepath"
    "strings"
    "time"

    "github.com/sirupsen/logrus"
    lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
    Level      string
    Format     string // json|text
    File       string
    MaxSizeMB  int
    MaxBackups int
    MaxAgeDays int
    // Console keeps stderr output when File is set.
    Console    bool
}

// New builds a logger that stamps every entry with the service name.
func New(cfg Config, service string) (*logrus.Logger, error) {
    l := logrus.New()

    level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
    if err != nil {
        level = logrus.InfoLevel
    }
    l.SetLevel(level)

    switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
    case "text":
        l.SetFormatter(&logrus.TextFormatter{
            TimestampFormat: time.RFC3339Nano,
            FullTimestamp:   true,
            DisableColors:   true,
        })
    default:
        l.SetFormatter(&logrus.JSONFormatter{
            TimestampFormat: time.RFC3339Nano,
            FieldMap: logrus.FieldMap{
                logrus.FieldKeyTime:  "timestamp",
                logrus.FieldKeyLevel: "severity",
                logrus.FieldKeyMsg:   "message",
            },
        })
    }

    out, err := output(cfg)
    if err != nil {
        return nil, err
    }
    l.SetOutput(out)
    l.AddHook(serviceHook{service: service})
    return l, nil
}

func output(cfg Config) (io.Writer, error) {
    if cfg.File == "" {
        return os.Stderr, nil
    }
    if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
        return nil, err
    }
    file := &lumberjack.Logger{
        Filename:   cfg.File,
        MaxSize:    max(1, cfg.MaxSizeMB),
        MaxBackups: max(0, cfg.MaxBackups),
        MaxAge:     max(0, cfg.MaxAgeDays),
        Compress:   true,
    }
    if cfg.Console {
        return io.MultiWriter(os.Stderr, file), nil
    }
    return file, nil
}

type serviceHook struct{ service string }

func (h serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h serviceHook) Fire(e *logrus.Entry) error {
    if _, ok := e.Data["service"]; !ok {
        e.Data["service"] = h.service
    }
    return nil
}

// Discard returns a logger that drops everything, for tests and optional wiring.
func Discard() *logrus.Logger {
    l := logrus.New()
    l.SetOutput(io.Discard)
    return l
}

// MaskCode hides all but the last two digits of a PIN for log output.
func MaskCode(code string) string {
    if len(code) <= 2 {
        return strings.Repeat("*", len(code))
    }
    return strings.Repeat("*", len(code)-2) + code[len(code)-2:]
}
