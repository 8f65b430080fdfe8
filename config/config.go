package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env  string `mapstructure:"APP_ENV"`
	Port string `mapstructure:"PORT"`

	DBDriver    string `mapstructure:"DB_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	MySQLURL    string `mapstructure:"MYSQL_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPass      string `mapstructure:"DB_PASS"`
	DBName      string `mapstructure:"DB_NAME"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`

	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	TokenDuration time.Duration `mapstructure:"TOKEN_DURATION"`
	CorsOrigins   string        `mapstructure:"CORS_ORIGINS"`

	GracePeriodHours float64       `mapstructure:"GRACE_PERIOD_HOURS"`
	DraftTTL         time.Duration `mapstructure:"DRAFT_TTL"`
	HistoryPageSize  int           `mapstructure:"HISTORY_PAGE_SIZE"`

	LoginRatePerMin int `mapstructure:"LOGIN_RATE_PER_MIN"`
	LoginBurst      int `mapstructure:"LOGIN_BURST"`

	KafkaBrokers     []string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopicPrefix string   `mapstructure:"KAFKA_TOPIC_PREFIX"`

	SeedOwnerEmail    string `mapstructure:"SEED_OWNER_EMAIL"`
	SeedOwnerPassword string `mapstructure:"SEED_OWNER_PASSWORD"`
	SeedDeskEmail     string `mapstructure:"SEED_DESK_EMAIL"`
	SeedDeskPassword  string `mapstructure:"SEED_DESK_PASSWORD"`
}

// IsDev reports whether the process runs on a developer machine.
func (c *Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "local"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("MYSQL_URL", "")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "hotel_db")
	v.SetDefault("SQLITE_PATH", "hotel.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_DURATION", 12*time.Hour)
	v.SetDefault("CORS_ORIGINS", "")
	v.SetDefault("GRACE_PERIOD_HOURS", 0)
	v.SetDefault("DRAFT_TTL", 2*time.Hour)
	v.SetDefault("HISTORY_PAGE_SIZE", 5)
	v.SetDefault("LOGIN_RATE_PER_MIN", 10)
	v.SetDefault("LOGIN_BURST", 5)
	v.SetDefault("KAFKA_BROKERS", []string{})
	v.SetDefault("KAFKA_TOPIC_PREFIX", "hotel.")
	v.SetDefault("SEED_OWNER_EMAIL", "owner@hotel.local")
	v.SetDefault("SEED_OWNER_PASSWORD", "")
	v.SetDefault("SEED_DESK_EMAIL", "desk@hotel.local")
	v.SetDefault("SEED_DESK_PASSWORD", "")
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.KafkaBrokers = splitList(cfg.KafkaBrokers)
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.GracePeriodHours < 0 {
		return fmt.Errorf("GRACE_PERIOD_HOURS must not be negative")
	}
	if c.HistoryPageSize <= 0 {
		c.HistoryPageSize = 5
	}
	if c.DraftTTL <= 0 {
		c.DraftTTL = 2 * time.Hour
	}
	return nil
}

// splitList flattens "a,b" style entries that arrive as a single env value.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// ParseCorsOrigins splits CORS_ORIGINS. Empty means any origin.
func (c *Config) ParseCorsOrigins() []string {
	origins := splitList([]string{c.CorsOrigins})
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
