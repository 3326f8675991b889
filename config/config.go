package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingClinicTag is returned when an operation requires the clinic tag
// (stamped onto referrals, services and invoices) and none is configured.
var ErrMissingClinicTag = errors.New("CLINIC_TAG is not configured")

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Clinic ClinicConfig
}

type AppConfig struct {
	Port string
	Env  string
	// Backend optionally pins the data-access backend ("pgx" or "gorm").
	// Empty means: use the default baked into the binary at build time.
	Backend string
	// RequestTimeout bounds every request context, so a stalled database
	// cannot hold pool connections indefinitely.
	RequestTimeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string

	MaxOpenConns   int
	MaxIdleConns   int
	AcquireTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// ClinicConfig identifies the clinic instance that owns created records.
type ClinicConfig struct {
	Tag  string
	Name string
}

// RequireTag returns the clinic tag, or ErrMissingClinicTag if unset.
func (c ClinicConfig) RequireTag() (string, error) {
	if c.Tag == "" {
		return "", ErrMissingClinicTag
	}
	return c.Tag, nil
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	acquireTimeout, err := time.ParseDuration(viper.GetString("DB_ACQUIRE_TIMEOUT"))
	if err != nil {
		acquireTimeout = 5 * time.Second
	}

	requestTimeout, err := time.ParseDuration(viper.GetString("APP_REQUEST_TIMEOUT"))
	if err != nil {
		requestTimeout = 30 * time.Second
	}

	maxOpen := viper.GetInt("DB_MAX_OPEN_CONNS")
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := viper.GetInt("DB_MAX_IDLE_CONNS")
	if maxIdle <= 0 {
		maxIdle = 10
	}

	config := &Config{
		App: AppConfig{
			Port:           viper.GetString("APP_PORT"),
			Env:            viper.GetString("APP_ENV"),
			Backend:        viper.GetString("APP_BACKEND"),
			RequestTimeout: requestTimeout,
		},
		DB: DBConfig{
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASSWORD"),
			Name:           viper.GetString("DB_NAME"),
			MaxOpenConns:   maxOpen,
			MaxIdleConns:   maxIdle,
			AcquireTimeout: acquireTimeout,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Clinic: ClinicConfig{
			Tag:  viper.GetString("CLINIC_TAG"),
			Name: viper.GetString("CLINIC_NAME"),
		},
	}

	return config, nil
}
