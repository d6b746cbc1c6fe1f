package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	Analyzer  AnalyzerConfig
	Limits    LimitsConfig
	Retention RetentionConfig
	CORS      CORSConfig
	Email     EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AnalyzerConfig holds generative analysis provider settings.
type AnalyzerConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// placeholderKey is accepted in development environments so the service runs
// end to end on the deterministic tier without real credentials.
const placeholderKey = "dummy-key-for-development"

// GenerativeEnabled reports whether the generative path should be attempted
// at all. Absent or placeholder credentials mean every analysis takes the
// deterministic path.
func (a *AnalyzerConfig) GenerativeEnabled() bool {
	return a.Provider != "" && a.APIKey != "" && a.APIKey != placeholderKey
}

// LimitsConfig holds ingestion validation limits.
type LimitsConfig struct {
	MaxDocuments      int `mapstructure:"max_documents"`
	MaxDocumentSizeMB int `mapstructure:"max_document_size_mb"`
}

// MaxDocumentSizeBytes returns the per-document size limit in bytes.
func (l *LimitsConfig) MaxDocumentSizeBytes() int {
	return l.MaxDocumentSizeMB * 1024 * 1024
}

// RetentionConfig holds settings for the original-text retention sweeper.
type RetentionConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Window        time.Duration `mapstructure:"window"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// S3Config holds AWS S3 settings for original-corpus archival.
type S3Config struct {
	Region           string `mapstructure:"region"`
	Bucket           string `mapstructure:"bucket"`
	Endpoint         string `mapstructure:"endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	ArchiveOriginals bool   `mapstructure:"archive_originals"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// Load reads configuration from environment variables with the GETGSA_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GETGSA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "getgsa")
	v.SetDefault("db.password", "getgsa_secret")
	v.SetDefault("db.name", "getgsa_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Analyzer defaults
	v.SetDefault("analyzer.provider", "openai")
	v.SetDefault("analyzer.api_key", "")
	v.SetDefault("analyzer.model", "")
	v.SetDefault("analyzer.timeout_secs", 120)

	// Ingestion limits
	v.SetDefault("limits.max_documents", 20)
	v.SetDefault("limits.max_document_size_mb", 2)

	// Retention defaults
	v.SetDefault("retention.enabled", true)
	v.SetDefault("retention.window", "720h")
	v.SetDefault("retention.sweep_interval", "1h")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "getgsa-archive")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.archive_originals", false)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@getgsa.local")
	v.SetDefault("email.from_name", "GSA Review Team")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "GETGSA_SERVER_PORT",
		"server.read_timeout":         "GETGSA_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "GETGSA_SERVER_WRITE_TIMEOUT",
		"server.environment":          "GETGSA_SERVER_ENVIRONMENT",
		"db.host":                     "GETGSA_DB_HOST",
		"db.port":                     "GETGSA_DB_PORT",
		"db.user":                     "GETGSA_DB_USER",
		"db.password":                 "GETGSA_DB_PASSWORD",
		"db.name":                     "GETGSA_DB_NAME",
		"db.sslmode":                  "GETGSA_DB_SSLMODE",
		"db.max_open":                 "GETGSA_DB_MAX_OPEN",
		"db.max_idle":                 "GETGSA_DB_MAX_IDLE",
		"analyzer.provider":           "GETGSA_ANALYZER_PROVIDER",
		"analyzer.api_key":            "GETGSA_ANALYZER_API_KEY",
		"analyzer.model":              "GETGSA_ANALYZER_MODEL",
		"analyzer.timeout_secs":       "GETGSA_ANALYZER_TIMEOUT_SECS",
		"limits.max_documents":        "GETGSA_LIMITS_MAX_DOCUMENTS",
		"limits.max_document_size_mb": "GETGSA_LIMITS_MAX_DOCUMENT_SIZE_MB",
		"retention.enabled":           "GETGSA_RETENTION_ENABLED",
		"retention.window":            "GETGSA_RETENTION_WINDOW",
		"retention.sweep_interval":    "GETGSA_RETENTION_SWEEP_INTERVAL",
		"s3.region":                   "GETGSA_S3_REGION",
		"s3.bucket":                   "GETGSA_S3_BUCKET",
		"s3.endpoint":                 "GETGSA_S3_ENDPOINT",
		"s3.access_key":               "GETGSA_S3_ACCESS_KEY",
		"s3.secret_key":               "GETGSA_S3_SECRET_KEY",
		"s3.archive_originals":        "GETGSA_S3_ARCHIVE_ORIGINALS",
		"log.level":                   "GETGSA_LOG_LEVEL",
		"log.format":                  "GETGSA_LOG_FORMAT",
		"cors.allowed_origins":        "GETGSA_CORS_ALLOWED_ORIGINS",
		"email.provider":              "GETGSA_EMAIL_PROVIDER",
		"email.region":                "GETGSA_EMAIL_REGION",
		"email.from_address":          "GETGSA_EMAIL_FROM_ADDRESS",
		"email.from_name":             "GETGSA_EMAIL_FROM_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GETGSA_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GETGSA_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Analyzer = AnalyzerConfig{
		Provider:    v.GetString("analyzer.provider"),
		APIKey:      v.GetString("analyzer.api_key"),
		Model:       v.GetString("analyzer.model"),
		TimeoutSecs: v.GetInt("analyzer.timeout_secs"),
	}
	cfg.Limits = LimitsConfig{
		MaxDocuments:      v.GetInt("limits.max_documents"),
		MaxDocumentSizeMB: v.GetInt("limits.max_document_size_mb"),
	}
	cfg.Retention = RetentionConfig{
		Enabled:       v.GetBool("retention.enabled"),
		Window:        v.GetDuration("retention.window"),
		SweepInterval: v.GetDuration("retention.sweep_interval"),
	}
	cfg.S3 = S3Config{
		Region:           v.GetString("s3.region"),
		Bucket:           v.GetString("s3.bucket"),
		Endpoint:         v.GetString("s3.endpoint"),
		AccessKey:        v.GetString("s3.access_key"),
		SecretKey:        v.GetString("s3.secret_key"),
		ArchiveOriginals: v.GetBool("s3.archive_originals"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	return cfg, nil
}
