package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Bun          BunConfig
	Redis        RedisConfig
	JWT          JWT
	LoggerMode   LoggerMode
	Signing      Signing
	Notification Notification
	Messaging    Messaging
	Pairing      Pairing
}

type Server struct {
	Port        string
	Environment string
	Version     string
}

type BunConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LoggerMode struct {
	Development bool
	Prod        bool
	Level       string
}

// JWT guards the trusted-server notification path.
type JWT struct {
	Secret string
}

type Signing struct {
	// HashPrefix is prepended to every signed message before hashing.
	HashPrefix string
}

type Notification struct {
	MaxRetries               int
	RetryDelaySeconds        int
	Workers                  int
	VisibilityTimeoutSeconds int
	PollIntervalMillis       int
	QueuePrefix              string
}

// Messaging selects the push provider: "fcm", "sns" or "mock".
type Messaging struct {
	Provider        string
	CredentialsFile string
	ProjectID       string
	SNSPlatformArn  string
	AWSRegion       string
}

type Pairing struct {
	// RequireRegisteredDevices rejects pairings for addresses without a Device
	// instead of creating placeholders.
	RequireRegisteredDevices bool
}

const (
	ProviderFCM  = "fcm"
	ProviderSNS  = "sns"
	ProviderMock = "mock"
)

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	err := v.Unmarshal(&c)
	if err != nil {
		slog.Error("Unable to unmarshal config", "err", err)
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Signing.HashPrefix == "" {
		c.Signing.HashPrefix = "GNO"
	}
	if c.Notification.Workers == 0 {
		c.Notification.Workers = 4
	}
	if c.Notification.VisibilityTimeoutSeconds == 0 {
		c.Notification.VisibilityTimeoutSeconds = 60
	}
	if c.Notification.PollIntervalMillis == 0 {
		c.Notification.PollIntervalMillis = 500
	}
	if c.Notification.QueuePrefix == "" {
		c.Notification.QueuePrefix = "notifications"
	}
	if c.Messaging.Provider == "" {
		c.Messaging.Provider = ProviderMock
	}
}

// Validate checks that the configuration is coherent.
func (c Config) Validate() error {
	if c.Notification.MaxRetries < 0 {
		return fmt.Errorf("invalid notification.maxRetries: must be >= 0")
	}
	if c.Notification.RetryDelaySeconds < 0 {
		return fmt.Errorf("invalid notification.retryDelaySeconds: must be >= 0")
	}
	if c.Notification.Workers < 1 {
		return fmt.Errorf("invalid notification.workers: must be > 0")
	}
	switch c.Messaging.Provider {
	case ProviderMock:
	case ProviderFCM:
		if c.Messaging.CredentialsFile == "" {
			return fmt.Errorf("invalid messaging.credentialsFile: required for provider %q", ProviderFCM)
		}
	case ProviderSNS:
		if c.Messaging.SNSPlatformArn == "" {
			return fmt.Errorf("invalid messaging.snsPlatformArn: required for provider %q", ProviderSNS)
		}
	default:
		return fmt.Errorf("invalid messaging.provider: must be %q, %q or %q", ProviderFCM, ProviderSNS, ProviderMock)
	}
	return nil
}

func (n Notification) RetryDelay() time.Duration {
	return time.Duration(n.RetryDelaySeconds) * time.Second
}

func (n Notification) VisibilityTimeout() time.Duration {
	return time.Duration(n.VisibilityTimeoutSeconds) * time.Second
}

func (n Notification) PollInterval() time.Duration {
	return time.Duration(n.PollIntervalMillis) * time.Millisecond
}
