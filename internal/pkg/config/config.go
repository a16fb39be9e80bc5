package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   gateway credentials) and security settings
// - default: Values common across all environments (timeouts, retry budgets)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Momo     MomoConfig
	SMS      SMSConfig
	Dispatch DispatchConfig
	Deposit  DepositConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Africa/Accra"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Africa/Accra"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"` // Accra is UTC
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// MomoConfig points at the mobile-money payment gateway.
type MomoConfig struct {
	BaseURL   string        `envconfig:"MOMO_BASE_URL" required:"true"`
	SecretKey string        `envconfig:"MOMO_SECRET_KEY" required:"true"`
	Currency  string        `envconfig:"MOMO_CURRENCY" default:"GHS"`
	Timeout   time.Duration `envconfig:"MOMO_TIMEOUT" default:"30s"`
}

type SMSConfig struct {
	BaseURL  string        `envconfig:"SMS_BASE_URL" required:"true"`
	APIKey   string        `envconfig:"SMS_API_KEY" required:"true"`
	SenderID string        `envconfig:"SMS_SENDER_ID" default:"BUNDLEMART"`
	Timeout  time.Duration `envconfig:"SMS_TIMEOUT" default:"15s"`
}

// DispatchConfig bounds the SMS notification dispatcher.
type DispatchConfig struct {
	MaxRetries      int           `envconfig:"DISPATCH_MAX_RETRIES" default:"2"`
	BatchSize       int           `envconfig:"DISPATCH_BATCH_SIZE" default:"5"`
	InterBatchDelay time.Duration `envconfig:"DISPATCH_INTER_BATCH_DELAY" default:"5s"`
	GatewayBackoff  time.Duration `envconfig:"DISPATCH_GATEWAY_BACKOFF" default:"2s"`
	NetworkBackoff  time.Duration `envconfig:"DISPATCH_NETWORK_BACKOFF" default:"3s"`
	DrainInterval   time.Duration `envconfig:"DISPATCH_DRAIN_INTERVAL" default:"30s"`
	DrainBatchLimit int           `envconfig:"DISPATCH_DRAIN_BATCH_LIMIT" default:"50"`
}

type DepositConfig struct {
	MinAmount       float64 `envconfig:"DEPOSIT_MIN_AMOUNT" default:"10"`
	MaxOtpAttempts  int     `envconfig:"DEPOSIT_MAX_OTP_ATTEMPTS" default:"5"`
	MaxStatusChecks int     `envconfig:"DEPOSIT_MAX_STATUS_CHECKS" default:"10"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Africa/Accra",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Africa/Accra",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Momo: MomoConfig{
			Currency: "GHS",
			Timeout:  5 * time.Second,
		},
		SMS: SMSConfig{
			SenderID: "BUNDLEMART",
			Timeout:  time.Second,
		},
		Dispatch: DispatchConfig{
			MaxRetries:      2,
			BatchSize:       5,
			InterBatchDelay: 10 * time.Millisecond,
			GatewayBackoff:  time.Millisecond,
			NetworkBackoff:  time.Millisecond,
			DrainInterval:   50 * time.Millisecond,
			DrainBatchLimit: 50,
		},
		Deposit: DepositConfig{
			MinAmount:       10,
			MaxOtpAttempts:  5,
			MaxStatusChecks: 10,
		},
	}
}
