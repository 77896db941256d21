package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const devJWTSecret = "super_secret_key_change_me"

// Config agrupa toda la configuración del proceso.
// Prioridad: ENV > .env > env-default.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Log      LogConfig
	Clinics  ClinicsConfig
}

type AppConfig struct {
	Name     string `env:"APP_NAME"       env-default:"Petify API"`
	Env      string `env:"APP_ENV"        env-default:"development"`
	SeedDemo bool   `env:"SEED_DEMO_DATA" env-default:"true"`
}

type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR"             env-default:":8000"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     env-default:"5s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    env-default:"10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS"          env-default:"http://localhost:3000,http://localhost:5173,http://127.0.0.1:5173"`
}

type DatabaseConfig struct {
	// URL vacío => store in-memory (modo dev).
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS"    env-default:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS"    env-default:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnectAttempts int           `env:"DB_CONNECT_ATTEMPTS"  env-default:"10"`
	ConnectDelay    time.Duration `env:"DB_CONNECT_DELAY"     env-default:"2s"`
}

type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET"      env-default:"super_secret_key_change_me"`
	TokenTTL       time.Duration `env:"JWT_TTL"         env-default:"168h"`
	Audience       string        `env:"JWT_AUDIENCE"    env-default:"petify:auth"`
	RateLimitMax   int           `env:"AUTH_RATE_LIMIT" env-default:"20"`
	RateLimitEvery time.Duration `env:"AUTH_RATE_WINDOW" env-default:"1m"`
}

type RedisConfig struct {
	// Addr vacío => rate limit deshabilitado.
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

type ClinicsConfig struct {
	NominatimURL string        `env:"NOMINATIM_URL"     env-default:"https://nominatim.openstreetmap.org"`
	UserAgent    string        `env:"NOMINATIM_UA"      env-default:"petify-clinic-importer/1.0"`
	Timeout      time.Duration `env:"NOMINATIM_TIMEOUT" env-default:"10s"`
}

// Load lee .env (si existe) y luego variables de entorno.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// UsesMemoryStore indica modo dev sin Postgres.
func (c *Config) UsesMemoryStore() bool {
	return strings.TrimSpace(c.Database.URL) == ""
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProduction() && c.Auth.JWTSecret == devJWTSecret {
		return errors.New("JWT_SECRET must be changed in production")
	}
	if c.IsProduction() && c.UsesMemoryStore() {
		return errors.New("DATABASE_URL is required in production")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.Database.ConnectAttempts <= 0 {
		return errors.New("DB_CONNECT_ATTEMPTS must be positive")
	}
	if c.Database.ConnectDelay < 0 {
		return errors.New("DB_CONNECT_DELAY must not be negative")
	}
	return nil
}
