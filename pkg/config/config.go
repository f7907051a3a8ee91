package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "marketpulse"

	AppEnvDev     = "dev"
	AppEnvStaging = "staging"
	AppEnvProd    = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Reports      ReportsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MARKETPULSE_APP_ENV" required:"true" validate:"oneof=dev staging prod"`
	Port         string `envconfig:"MARKETPULSE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MARKETPULSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MARKETPULSE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return a.Env == AppEnvDev
}

func (a AppConfig) IsProd() bool {
	return a.Env == AppEnvProd
}

type DBConfig struct {
	DSN    string `envconfig:"MARKETPULSE_DB_DSN"`
	Driver string `envconfig:"MARKETPULSE_DB_DRIVER" default:"postgres" validate:"oneof=postgres sqlite"`

	Host     string `envconfig:"MARKETPULSE_DB_HOST"`
	Port     int    `envconfig:"MARKETPULSE_DB_PORT" default:"5432"`
	User     string `envconfig:"MARKETPULSE_DB_USER"`
	Password string `envconfig:"MARKETPULSE_DB_PASSWORD"`
	Name     string `envconfig:"MARKETPULSE_DB_NAME"`
	SSLMode  string `envconfig:"MARKETPULSE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MARKETPULSE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MARKETPULSE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MARKETPULSE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MARKETPULSE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" || d.Driver == "sqlite" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either MARKETPULSE_DB_DSN or host/user/name parts are required")
	}
	d.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
	return nil
}

type JWTConfig struct {
	Secret            string `envconfig:"MARKETPULSE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MARKETPULSE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MARKETPULSE_JWT_EXPIRATION_MINUTES" default:"60" validate:"gt=0"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"MARKETPULSE_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"MARKETPULSE_SQLITE_PATH" default:"marketpulse.db"`
	AutoMigrate bool   `envconfig:"MARKETPULSE_AUTO_MIGRATE" default:"false"`
}

type ReportsConfig struct {
	LeaderboardSize   int `envconfig:"MARKETPULSE_REPORTS_LEADERBOARD_SIZE" default:"3" validate:"gt=0"`
	MonthlyBoardSize  int `envconfig:"MARKETPULSE_REPORTS_MONTHLY_BOARD_SIZE" default:"10" validate:"gt=0"`
	LocalityBoardSize int `envconfig:"MARKETPULSE_REPORTS_LOCALITY_BOARD_SIZE" default:"5" validate:"gt=0"`
}
