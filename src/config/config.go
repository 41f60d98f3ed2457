package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Auth            AuthConfig           `mapstructure:"auth"`
	Logging         LoggingConfig        `mapstructure:"logging"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type ServiceType `mapstructure:"type"`
	Port string      `mapstructure:"port"`
	// Serve the built-in demo portfolio when a user has no holdings.
	DemoFallback bool `mapstructure:"demoFallback"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
	// When set, the password is fetched from AWS Secrets Manager instead of
	// being read from the config file.
	PasswordSecretID string `mapstructure:"password_secret_id"`
	AWSRegion        string `mapstructure:"aws_region"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type ExternalClientConfig struct {
	MarketData MarketDataConfig `mapstructure:"marketData"`
}

type MarketDataConfig struct {
	BaseURL      string `mapstructure:"baseUrl"`
	APIKey       string `mapstructure:"apiKey"`
	RankingLimit int    `mapstructure:"rankingLimit"`
	// Poll interval for the price feed, in seconds.
	PollIntervalSeconds int `mapstructure:"pollIntervalSeconds"`
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwtSecret"`
	TokenTTLHours int    `mapstructure:"tokenTTLHours"`
}

type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	LogToFile bool   `mapstructure:"logToFile"`
	FilePath  string `mapstructure:"filePath"`
}

// LoadConfig reads appsettings.yaml from path, overlaying the environment
// specific appsettings.<env>.yaml when env is not empty.
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	if env != "" {
		viper.SetConfigName("appsettings." + strings.ToLower(env))
		if err := viper.MergeInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.ExternalClients.MarketData.RankingLimit == 0 {
		cfg.ExternalClients.MarketData.RankingLimit = 50
	}
	if cfg.ExternalClients.MarketData.PollIntervalSeconds == 0 {
		cfg.ExternalClients.MarketData.PollIntervalSeconds = 30
	}
	if cfg.Auth.TokenTTLHours == 0 {
		cfg.Auth.TokenTTLHours = 24
	}
	return &cfg, nil
}
