package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Supabase    SupabaseConfig
	Email       EmailConfig
	Invite      InviteConfig
	RateLimit   RateLimitConfig
	Tracing     TracingConfig
	Environment string
	AppURL      string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
	SSL  SSLConfig
}

type SSLConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

type DatabaseConfig struct {
	// URL takes precedence over the discrete fields when set
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SupabaseConfig struct {
	URL            string
	ServiceRoleKey string

	// JWTSecret verifies access tokens sent by the dashboard
	JWTSecret string

	// AuthEmailHookSecret verifies the Send Email auth hook ("v1,whsec_...")
	AuthEmailHookSecret string
}

type EmailConfig struct {
	// Provider is one of "resend", "smtp", "ses" or "console"
	Provider         string
	ResendAPIKey     string
	FromAddress      string
	FromName         string
	PasswordResetURL string
	SMTP             SMTPConfig
	SES              SESConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type SESConfig struct {
	Region    string
	AccessKey string
	SecretKey string
}

type InviteConfig struct {
	ProfileConfirmAttempts int
	ProfileConfirmBackoff  time.Duration
}

// RateLimitConfig throttles password reset emails per address.
// A zero PasswordResetMax disables throttling.
type RateLimitConfig struct {
	PasswordResetMax    int
	PasswordResetWindow time.Duration
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// "jaeger", "zipkin", "stackdriver", "datadog", "xray" or "none"
	TraceExporter  string
	JaegerEndpoint string
	ZipkinEndpoint string

	StackdriverProjectID string
	DatadogAgentAddress  string
	XRayRegion           string

	// comma separated: "prometheus", "stackdriver", "datadog" or "none"
	MetricsExporter string
	PrometheusPort  int
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)
	v.SetDefault("APP_URL", "http://localhost:5173")

	v.SetDefault("EMAIL_PROVIDER", "resend")
	v.SetDefault("EMAIL_FROM_ADDRESS", "noreply@harmonic.app")
	v.SetDefault("EMAIL_FROM_NAME", "Harmonic")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SES_REGION", "us-east-1")

	v.SetDefault("PROFILE_CONFIRM_ATTEMPTS", 5)
	v.SetDefault("PROFILE_CONFIRM_BACKOFF_MS", 200)

	v.SetDefault("PASSWORD_RESET_RATE_LIMIT", 3)
	v.SetDefault("PASSWORD_RESET_RATE_WINDOW_MINUTES", 15)

	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "harmonic-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_DATADOG_AGENT_ADDRESS", "localhost:8126")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	supabaseURL := strings.TrimRight(v.GetString("SUPABASE_URL"), "/")
	if supabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	serviceRoleKey := v.GetString("SUPABASE_SERVICE_ROLE_KEY")
	if serviceRoleKey == "" {
		return nil, fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required")
	}

	appURL := strings.TrimRight(v.GetString("APP_URL"), "/")

	resetURL := v.GetString("PASSWORD_RESET_REDIRECT_URL")
	if resetURL == "" {
		resetURL = appURL + "/reset-password"
	}

	attempts := v.GetInt("PROFILE_CONFIRM_ATTEMPTS")
	if attempts < 1 {
		attempts = 1
	}

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
			SSL: SSLConfig{
				Enabled:  v.GetBool("SSL_ENABLED"),
				CertFile: v.GetString("SSL_CERT_FILE"),
				KeyFile:  v.GetString("SSL_KEY_FILE"),
			},
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Supabase: SupabaseConfig{
			URL:                 supabaseURL,
			ServiceRoleKey:      serviceRoleKey,
			JWTSecret:           v.GetString("SUPABASE_JWT_SECRET"),
			AuthEmailHookSecret: v.GetString("AUTH_EMAIL_HOOK_SECRET"),
		},
		Email: EmailConfig{
			Provider:         strings.ToLower(v.GetString("EMAIL_PROVIDER")),
			ResendAPIKey:     v.GetString("RESEND_API_KEY"),
			FromAddress:      v.GetString("EMAIL_FROM_ADDRESS"),
			FromName:         v.GetString("EMAIL_FROM_NAME"),
			PasswordResetURL: resetURL,
			SMTP: SMTPConfig{
				Host:     v.GetString("SMTP_HOST"),
				Port:     v.GetInt("SMTP_PORT"),
				Username: v.GetString("SMTP_USERNAME"),
				Password: v.GetString("SMTP_PASSWORD"),
			},
			SES: SESConfig{
				Region:    v.GetString("SES_REGION"),
				AccessKey: v.GetString("SES_ACCESS_KEY"),
				SecretKey: v.GetString("SES_SECRET_KEY"),
			},
		},
		Invite: InviteConfig{
			ProfileConfirmAttempts: attempts,
			ProfileConfirmBackoff:  time.Duration(v.GetInt("PROFILE_CONFIRM_BACKOFF_MS")) * time.Millisecond,
		},
		RateLimit: RateLimitConfig{
			PasswordResetMax:    v.GetInt("PASSWORD_RESET_RATE_LIMIT"),
			PasswordResetWindow: time.Duration(v.GetInt("PASSWORD_RESET_RATE_WINDOW_MINUTES")) * time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:              v.GetBool("TRACING_ENABLED"),
			ServiceName:          v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability:  v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:        v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:       v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:       v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			StackdriverProjectID: v.GetString("TRACING_STACKDRIVER_PROJECT_ID"),
			DatadogAgentAddress:  v.GetString("TRACING_DATADOG_AGENT_ADDRESS"),
			XRayRegion:           v.GetString("TRACING_XRAY_REGION"),
			MetricsExporter:      v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:       v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		Environment: v.GetString("ENVIRONMENT"),
		AppURL:      appURL,
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	return config, nil
}

// DSN returns the Postgres connection string, preferring DATABASE_URL
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// EmailEnabled reports whether outgoing email is configured. A missing Resend
// API key disables email without failing requests.
func (c EmailConfig) EmailEnabled() bool {
	switch c.Provider {
	case "resend":
		return c.ResendAPIKey != ""
	case "smtp":
		return c.SMTP.Host != ""
	case "ses":
		return c.SES.AccessKey != "" && c.SES.SecretKey != ""
	case "console":
		return true
	default:
		return false
	}
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
