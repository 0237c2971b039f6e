package config

import (
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = ".env"

// Config holds the application configuration
type Config struct {
	SonarQube SonarQubeConfig `mapstructure:"sonarqube"`
	API       APIConfig       `mapstructure:"api"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// SonarQubeConfig describes the upstream quality service.
type SonarQubeConfig struct {
	URL          string `mapstructure:"url"`
	Token        string `mapstructure:"token"`
	Organization string `mapstructure:"organization"`
}

// APIConfig contains the HTTP bridge binding.
type APIConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// .env values never override the real environment
	if envMap, err := godotenv.Read(envFile); err == nil {
		for k, val := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, val)
			}
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sonarqube.url", "https://sonarcloud.io")
	v.SetDefault("sonarqube.token", "")
	v.SetDefault("sonarqube.organization", "")
	v.SetDefault("api.host", "localhost")
	v.SetDefault("api.port", "8080")
	v.SetDefault("logging.level", "info")
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"sonarqube.url",
		"sonarqube.token",
		"sonarqube.organization",
		"api.host",
		"api.port",
		"logging.level",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.SonarQube.Token == "" {
		return &ConfigError{Field: "SONARQUBE_TOKEN", Message: "SonarQube token is required"}
	}
	u, err := url.Parse(c.SonarQube.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigError{Field: "SONARQUBE_URL", Message: "must be an absolute http(s) URL"}
	}
	return nil
}

// APIAddr returns host:port for the HTTP bridge.
func (c *Config) APIAddr() string {
	return c.API.Host + ":" + c.API.Port
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
