package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// MinSecretLength is the shortest JWT secret the server accepts.
const MinSecretLength = 32

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	Env     string `mapstructure:"env"` // development / production
}

// IsProduction reports whether cookies must be marked Secure.
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Env, "production")
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AppSubConfig struct {
	EnableInit bool `mapstructure:"enable_init"`
	PageSize   int  `mapstructure:"page_size"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	Log      LogConfig      `mapstructure:"log"`
	App      AppSubConfig   `mapstructure:"app"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.env", "development")

	v.SetDefault("database.path", "./data/taskify.db")
	v.SetDefault("database.log_mode", false)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "taskify")

	v.SetDefault("security.bcrypt_cost", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("app.enable_init", true)
	v.SetDefault("app.page_size", 20)
}

// Load reads configuration from the given YAML file and the environment.
// If path is empty, "config.yaml" in the working directory is used when it
// exists; a missing default file is not an error.
// Environment overrides use the TASKIFY_ prefix, e.g. TASKIFY_JWT_SECRET.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("TASKIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// production deployments never expose the seeding endpoint unless asked
	if c.Server.IsProduction() && !v.InConfig("app.enable_init") && !isEnvSet("TASKIFY_APP_ENABLE_INIT") {
		c.App.EnableInit = false
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks settings the server cannot start without.
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < MinSecretLength {
		return fmt.Errorf("jwt.secret must be at least %d characters", MinSecretLength)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.App.PageSize <= 0 {
		c.App.PageSize = 20
	}
	return nil
}

func isEnvSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}
