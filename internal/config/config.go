// Package config provides configuration types and loading for slackbridge.
package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the root configuration struct.
type Config struct {
	ListenAddr   string        `json:"listenAddr" envconfig:"ADDR"`
	DBPath       string        `json:"dbPath" envconfig:"DB_PATH"`
	SlackAPIBase string        `json:"slackApiBase" envconfig:"SLACK_API_BASE"`
	HTTPTimeout  time.Duration `json:"httpTimeout" envconfig:"HTTP_TIMEOUT"`
	Kafka        KafkaConfig   `json:"kafka"`
}

// KafkaConfig configures the optional delivery report emitter. Emission is
// disabled when Brokers is empty.
type KafkaConfig struct {
	Brokers string `json:"brokers" envconfig:"KAFKA_BROKERS"`
	Topic   string `json:"topic" envconfig:"KAFKA_TOPIC"`
}

// BrokerList splits the comma-separated broker string.
func (k KafkaConfig) BrokerList() []string {
	out := make([]string, 0, 2)
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		ListenAddr:   ":5050",
		DBPath:       "slackbridge.db",
		SlackAPIBase: "https://slack.com/api",
		HTTPTimeout:  20 * time.Second,
		Kafka: KafkaConfig{
			Topic: "slackbridge.deliveries",
		},
	}
}

// Load builds the configuration from defaults overlaid with SLACKBRIDGE_*
// environment variables.
func Load() (Config, error) {
	cfg := Default()
	if err := envconfig.Process("SLACKBRIDGE", &cfg); err != nil {
		return cfg, err
	}
	cfg.ListenAddr = strings.TrimSpace(cfg.ListenAddr)
	cfg.SlackAPIBase = strings.TrimRight(strings.TrimSpace(cfg.SlackAPIBase), "/")
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 20 * time.Second
	}
	return cfg, nil
}
