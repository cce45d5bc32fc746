package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// envFiles are loaded in order before the environment is read. Variables
// already set in the process environment are never overridden.
var envFiles = []string{".env", "config.env"}

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	LLM     LLMConfig
	DB      DBConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Audit   AuditConfig
	Scoring ScoringConfig
}

type LLMConfig struct {
	APIKey        string        `env:"GEMINI_API_KEY"`
	Model         string        `env:"LLM_MODEL,          default=gemini-2.5-flash"`
	ChatTimeout   time.Duration `env:"LLM_CHAT_TIMEOUT,   default=30s"`
	ScreenTimeout time.Duration `env:"LLM_SCREEN_TIMEOUT, default=20s"`
}

type DBConfig struct {
	Host         string        `env:"DB_HOST,           default=localhost"`
	Port         int           `env:"DB_PORT,           default=3306"`
	User         string        `env:"DB_USER,           default=root"`
	Password     string        `env:"DB_PASSWORD"`
	Name         string        `env:"DB_NAME,           default=ats_system"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS, default=10"`
	QueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT,  default=5s"`
}

// MongoConfig enables the chat audit log when URI is set.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=ats_assistant"`
}

// RedisConfig enables the screening memo when Addr is set.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// ScoringConfig tunes the fallback screening scorer.
type ScoringConfig struct {
	Base             float64 `env:"SCORE_BASE,              default=40"`
	OverlapWeight    float64 `env:"SCORE_OVERLAP_WEIGHT,    default=40"`
	ExperienceWeight float64 `env:"SCORE_EXPERIENCE_WEIGHT, default=4"`
	Floor            float64 `env:"SCORE_FLOOR,             default=20"`
	Ceiling          float64 `env:"SCORE_CEILING,           default=100"`
	Shortlist        float64 `env:"SCORE_SHORTLIST,         default=75"`
	Reject           float64 `env:"SCORE_REJECT,            default=45"`
	LowOverlapRatio  float64 `env:"SCORE_LOW_OVERLAP_RATIO, default=0.3"`
}

// Load reads .env files, then configuration from environment variables
// using go-envconfig.
func Load() *Config {
	if err := loadEnvFiles(envFiles...); err != nil {
		panic(fmt.Sprintf("config: failed to read env file: %v", err))
	}
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith resolves the configuration from lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.DB.Port <= 0 {
		errs = append(errs, fmt.Errorf("DB_PORT must be positive, got %d", c.DB.Port))
	}
	if c.Scoring.Floor > c.Scoring.Ceiling {
		errs = append(errs, fmt.Errorf("SCORE_FLOOR (%g) exceeds SCORE_CEILING (%g)", c.Scoring.Floor, c.Scoring.Ceiling))
	}
	if c.Scoring.Reject >= c.Scoring.Shortlist {
		errs = append(errs, fmt.Errorf("SCORE_REJECT (%g) must be below SCORE_SHORTLIST (%g)", c.Scoring.Reject, c.Scoring.Shortlist))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool { return c.Env == "production" }

func loadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
