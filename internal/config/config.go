package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	App        AppConfig
	Owner      OwnerConfig
	Monitor    MonitorConfig
	Delays     DelayConfig
	Storage    StorageConfig
	Cache      CacheConfig
	Server     ServerConfig
	TestSender TestSenderConfig
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"auto-claim-bot"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Version     string `envconfig:"APP_VERSION" default:"2.0.0"`
	Mode        string `envconfig:"BOT_MODE" default:"private"` // private or public
}

// OwnerConfig identifies the bot owner on the messaging transport.
type OwnerConfig struct {
	Number    string `envconfig:"OWNER_NUMBER" default:""`
	JIDSuffix string `envconfig:"OWNER_JID_SUFFIX" default:"@s.whatsapp.net"`
}

// JID returns the owner's full chat identifier.
func (o *OwnerConfig) JID() string {
	return o.Number + o.JIDSuffix
}

// MonitorConfig holds sender allow-lists for spawn detection.
// An empty list means every sender is monitored.
type MonitorConfig struct {
	CardSenders     []string      `envconfig:"MONITORED_CARD_SENDERS" default:""`
	CreatureSenders []string      `envconfig:"MONITORED_CREATURE_SENDERS" default:""`
	MaxMessageAge   time.Duration `envconfig:"MAX_MESSAGE_AGE" default:"30s"`
}

// DelayConfig holds randomized delay ranges for human-like send pacing.
type DelayConfig struct {
	InitialMin time.Duration `envconfig:"DELAY_INITIAL_MIN" default:"3s"`
	InitialMax time.Duration `envconfig:"DELAY_INITIAL_MAX" default:"6s"`
	InterMin   time.Duration `envconfig:"DELAY_INTER_MIN" default:"1s"`
	InterMax   time.Duration `envconfig:"DELAY_INTER_MAX" default:"2s"`
}

// StorageConfig holds inventory and settings persistence settings.
type StorageConfig struct {
	Type          string `envconfig:"STORAGE_TYPE" default:"file"` // file, sqlite, or mysql
	CardsPath     string `envconfig:"STORAGE_CARDS_PATH" default:"./data/inventory.json"`
	CreaturesPath string `envconfig:"STORAGE_CREATURES_PATH" default:"./data/creature_inventory.json"`
	SettingsPath  string `envconfig:"STORAGE_SETTINGS_PATH" default:"./data/bot_settings.json"`
	SQLitePath    string `envconfig:"STORAGE_SQLITE_PATH" default:"./data/inventory.db"`
	// MySQL settings
	MySQLHost     string `envconfig:"STORAGE_MYSQL_HOST" default:"localhost"`
	MySQLPort     int    `envconfig:"STORAGE_MYSQL_PORT" default:"3306"`
	MySQLName     string `envconfig:"STORAGE_MYSQL_NAME" default:"autoclaim"`
	MySQLUser     string `envconfig:"STORAGE_MYSQL_USER" default:"root"`
	MySQLPassword string `envconfig:"STORAGE_MYSQL_PASS" default:""`
}

// MySQLDSN returns the MySQL data source name.
func (s *StorageConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		s.MySQLUser, s.MySQLPassword, s.MySQLHost, s.MySQLPort, s.MySQLName)
}

// CacheConfig holds cache settings for the group-name resolver.
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"memory"` // memory or redis
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// ServerConfig holds admin HTTP server settings.
type ServerConfig struct {
	Enabled         bool          `envconfig:"SERVER_ENABLED" default:"true"`
	Host            string        `envconfig:"SERVER_HOST" default:"127.0.0.1"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	AdminKey        string        `envconfig:"ADMIN_KEY" default:""`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// TestSenderConfig bounds the bulk test-message command.
type TestSenderConfig struct {
	MaxMessages int           `envconfig:"TEST_SENDER_MAX" default:"200"`
	MinDelay    time.Duration `envconfig:"TEST_SENDER_MIN_DELAY" default:"500ms"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Delays.InitialMax < cfg.Delays.InitialMin || cfg.Delays.InterMax < cfg.Delays.InterMin {
		return nil, fmt.Errorf("invalid delay range: max must not be below min")
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
