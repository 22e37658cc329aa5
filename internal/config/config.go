package config

import (
    "errors"
    "fmt"
    "io/fs"
    "strings"
    "time"

    "github.com/joho/godotenv"
    "github.com/spf13/viper"

    "pincheck/internal/domain"
    "pincheck/internal/logging"
)

type Config struct {
    Env         string
    ListenAddr  string
    DatabaseURL string

    PinTTL           time.Duration
    IssueAttempts    int
    UnknownPinPolicy domain.UnknownPinPolicy

    RecentLimitDefault int
    RecentLimitMax     int

    MaxUploadBytes int64
    UploadRate     float64
    UploadBurst    int
    MaxConnections int

    CompactInterval  time.Duration
    CompactRetention time.Duration
    ShutdownTimeout  time.Duration

    MetricsEnabled bool
    Log            logging.Config
}

var ErrInvalid = errString("invalid config")

// SetDefaults registers defaults on v. Keys map to upper-case environment
// variables (listen_addr -> LISTEN_ADDR).
func SetDefaults(v *viper.Viper) {
    v.SetDefault("app_env", "development")
    v.SetDefault("listen_addr", ":8080")
    v.SetDefault("database_url", "")
    v.SetDefault("pin_ttl", "24h")
    v.SetDefault("pin_issue_attempts", 10)
    v.SetDefault("unknown_pin_policy", string(domain.PolicyLenient))
    v.SetDefault("recent_limit_default", 20)
    v.SetDefault("recent_limit_max", 100)
    v.SetDefault("max_upload_bytes", 1<<20)
    v.SetDefault("upload_rate", 5.0)
    v.SetDefault("upload_burst", 10)
    v.SetDefault("max_connections", 0)
    v.SetDefault("compact_interval", "0s")
    v.SetDefault("compact_retention", "72h")
    v.SetDefault("shutdown_timeout", "10s")
    v.SetDefault("metrics_enabled", true)
    v.SetDefault("log_level", "info")
    v.SetDefault("log_format", "json")
    v.SetDefault("log_file", "")
    v.SetDefault("log_max_size_mb", 100)
    v.SetDefault("log_max_backups", 3)
    v.SetDefault("log_max_age_days", 28)
    v.SetDefault("log_console", true)
}

// Load reads .env (if present), the optional config file named by the "config"
// key, and the environment, then validates the result.
func Load(v *viper.Viper) (Config, error) {
    if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
        return Config{}, fmt.Errorf("load .env: %w", err)
    }

    SetDefaults(v)
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
    v.AutomaticEnv()

    if file := v.GetString("config"); file != "" {
        v.SetConfigFile(file)
        if err := v.ReadInConfig(); err != nil {
            return Config{}, fmt.Errorf("read config %s: %w", file, err)
        }
    }

    policy, err := domain.ParseUnknownPinPolicy(strings.ToLower(strings.TrimSpace(v.GetString("unknown_pin_policy"))))
    if err != nil {
        return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
    }

    cfg := Config{
        Env:                v.GetString("app_env"),
        ListenAddr:         v.GetString("listen_addr"),
        DatabaseURL:        v.GetString("database_url"),
        PinTTL:             v.GetDuration("pin_ttl"),
        IssueAttempts:      v.GetInt("pin_issue_attempts"),
        UnknownPinPolicy:   policy,
        RecentLimitDefault: v.GetInt("recent_limit_default"),
        RecentLimitMax:     v.GetInt("recent_limit_max"),
        MaxUploadBytes:     v.GetInt64("max_upload_bytes"),
        UploadRate:         v.GetFloat64("upload_rate"),
        UploadBurst:        v.GetInt("upload_burst"),
        MaxConnections:     v.GetInt("max_connections"),
        CompactInterval:    v.GetDuration("compact_interval"),
        CompactRetention:   v.GetDuration("compact_retention"),
        ShutdownTimeout:    v.GetDuration("shutdown_timeout"),
        MetricsEnabled:     v.GetBool("metrics_enabled"),
        Log: logging.Config{
            Level:      v.GetString("log_level"),
            Format:     v.GetString("log_format"),
            File:       v.GetString("log_file"),
            MaxSizeMB:  v.GetInt("log_max_size_mb"),
            MaxBackups: v.GetInt("log_max_backups"),
            MaxAgeDays: v.GetInt("log_max_age_days"),
            Console:    v.GetBool("log_console"),
        },
    }
    return cfg, cfg.Validate()
}

func (c Config) Validate() error {
    var problems []string
    if c.ListenAddr == "" {
        problems = append(problems, "LISTEN_ADDR is empty")
    }
    if c.PinTTL <= 0 {
        problems = append(problems, "PIN_TTL must be positive")
    }
    if c.IssueAttempts < 1 {
        problems = append(problems, "PIN_ISSUE_ATTEMPTS must be at least 1")
    }
    if c.RecentLimitMax < 1 || c.RecentLimitDefault < 1 || c.RecentLimitDefault > c.RecentLimitMax {
        problems = append(problems, "RECENT_LIMIT_DEFAULT must be between 1 and RECENT_LIMIT_MAX")
    }
    if c.MaxUploadBytes <= 0 {
        problems = append(problems, "MAX_UPLOAD_BYTES must be positive")
    }
    if c.UploadRate < 0 || c.UploadBurst < 0 {
        problems = append(problems, "UPLOAD_RATE and UPLOAD_BURST must not be negative")
    }
    if c.CompactInterval < 0 || c.CompactRetention < 0 {
        problems = append(problems, "COMPACT_INTERVAL and COMPACT_RETENTION must not be negative")
    }
    if len(problems) > 0 {
        return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
    }
    return nil
}

type errString string

func (e errString) Error() string { return string(e) }
