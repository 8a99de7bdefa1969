package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	BotToken        string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	PublicChannelID string `envconfig:"PUBLIC_CHANNEL_ID" required:"true"`

	// AdminCommand is the hidden registration command, without the leading
	// slash. It is deployment-specific so ordinary users cannot discover it.
	AdminCommand  string `envconfig:"ADMIN_COMMAND" required:"true"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" required:"true"`

	PollInterval   time.Duration `envconfig:"POLL_INTERVAL" default:"60s"`
	PollFirstDelay time.Duration `envconfig:"POLL_FIRST_DELAY" default:"5s"`

	PostgresDSN string `envconfig:"POSTGRES_DSN"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	SessionTTL    int    `envconfig:"SESSION_TTL_HOURS" default:"24"`

	PayeeAccount string `envconfig:"PAYEE_ACCOUNT" default:"1000649561382"`
	PayeeName    string `envconfig:"PAYEE_NAME" default:"Jemal Hussen Hassen"`
	PayeeBank    string `envconfig:"PAYEE_BANK" default:"CBE"`

	HealthAddr string `envconfig:"HEALTH_ADDR" default:":8081"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogSink    string `envconfig:"LOG_SINK" default:"stdout"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
