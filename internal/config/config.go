package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix            = "ASSOCIATION"
	defaultHTTPAddress   = "0.0.0.0:8080"
	defaultDatabasePath  = "association.db"
	defaultLogLevel      = "info"
	defaultAdminEmail    = "info@uzeuro.eu"
	defaultAdminUsername = "uzeuro"
	defaultAdminPassword = "eurouz"
	defaultMailEndpoint  = "https://api.mailchannels.net/tx/v1/send"
	defaultMailFrom      = "noreply@uzeuro.eu"
	defaultMailFromName  = "UZEURO Association"
	defaultTokenTTLMin   = 720
)

// AppConfig captures runtime configuration for the API server.
type AppConfig struct {
	HTTPAddress     string
	DatabasePath    string
	LogLevel        string
	AdminEmail      string
	AdminUsername   string
	AdminPassword   string
	SigningSecret   string
	TokenTTL        time.Duration
	MailEndpoint    string
	MailFromAddress string
	MailFromName    string
	TelegramToken   string
	TelegramChatID  int64
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("http.address", defaultHTTPAddress)
	configViper.SetDefault("database.path", defaultDatabasePath)
	configViper.SetDefault("log.level", defaultLogLevel)
	configViper.SetDefault("admin.email", defaultAdminEmail)
	configViper.SetDefault("admin.username", defaultAdminUsername)
	configViper.SetDefault("admin.password", defaultAdminPassword)
	configViper.SetDefault("auth.token_ttl_minutes", defaultTokenTTLMin)
	configViper.SetDefault("mail.endpoint", defaultMailEndpoint)
	configViper.SetDefault("mail.from_address", defaultMailFrom)
	configViper.SetDefault("mail.from_name", defaultMailFromName)
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddress:     configViper.GetString("http.address"),
		DatabasePath:    configViper.GetString("database.path"),
		LogLevel:        configViper.GetString("log.level"),
		AdminEmail:      configViper.GetString("admin.email"),
		AdminUsername:   configViper.GetString("admin.username"),
		AdminPassword:   configViper.GetString("admin.password"),
		SigningSecret:   configViper.GetString("auth.signing_secret"),
		TokenTTL:        time.Duration(configViper.GetInt("auth.token_ttl_minutes")) * time.Minute,
		MailEndpoint:    configViper.GetString("mail.endpoint"),
		MailFromAddress: configViper.GetString("mail.from_address"),
		MailFromName:    configViper.GetString("mail.from_name"),
		TelegramToken:   configViper.GetString("telegram.bot_token"),
		TelegramChatID:  configViper.GetInt64("telegram.chat_id"),
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database.path is required")
	}
	if strings.TrimSpace(c.AdminEmail) == "" {
		return fmt.Errorf("admin.email is required")
	}
	if strings.TrimSpace(c.AdminUsername) == "" || strings.TrimSpace(c.AdminPassword) == "" {
		return fmt.Errorf("admin credentials are required")
	}
	return nil
}
