package config

import (
	"strings"
	"time" // Ensure time package is imported

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Menu     MenuConfig     `mapstructure:"menu"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// Database drivers.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type DatabaseConfig struct {
	Driver    string        `mapstructure:"driver"`
	URI       string        `mapstructure:"uri"`
	Name      string        `mapstructure:"name"`
	OpTimeout time.Duration `mapstructure:"op_timeout"` // Per-request store deadline
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	URLExpiry       time.Duration `mapstructure:"url_expiry"`
}

// Enabled reports whether banner media can be presigned from a bucket.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// GatewayConfig authenticates the chat gateway that exchanges user ids for tokens.
type GatewayConfig struct {
	SecretHash string  `mapstructure:"secret_hash"` // bcrypt hash of the shared secret
	AdminIDs   []int64 `mapstructure:"admin_ids"`
}

// IsAdmin reports whether userID is granted the admin role.
func (c GatewayConfig) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type MenuConfig struct {
	ErrorMedia   string   `mapstructure:"error_media"`
	WeekdayNames []string `mapstructure:"weekday_names"` // Monday first
	Timezone     string   `mapstructure:"timezone"`
}

// Location returns the configured time zone, falling back to time.Local.
func (c MenuConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultWeekdayNames match the day-of-week values stored by the bot.
var DefaultWeekdayNames = []string{
	"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота", "Воскресенье",
}

// DefaultErrorMedia is shown on every error screen unless configured.
const DefaultErrorMedia = "https://postimg.cc/Ty7d15kq"

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Handling ---
	v.AutomaticEnv()
	// Use replacer for nested keys e.g., server.address -> SERVER_ADDRESS
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// --- Set default values ---
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fitness_bot")
	v.SetDefault("database.op_timeout", "5s")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.url_expiry", "15m")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("menu.error_media", DefaultErrorMedia)
	v.SetDefault("menu.weekday_names", DefaultWeekdayNames)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// --- Read Config File ---
	err = v.ReadInConfig()
	// If config file not found, continue and rely on env vars and defaults.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	// Duration strings ("5s", "1h") decode straight into time.Duration fields.
	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if len(config.Menu.WeekdayNames) != 7 {
		config.Menu.WeekdayNames = DefaultWeekdayNames
	}

	return config, nil
}
