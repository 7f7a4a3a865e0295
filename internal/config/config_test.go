package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":5050" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.SlackAPIBase != "https://slack.com/api" {
		t.Fatalf("slack api base = %q", cfg.SlackAPIBase)
	}
	if cfg.HTTPTimeout != 20*time.Second {
		t.Fatalf("http timeout = %v", cfg.HTTPTimeout)
	}
	if cfg.Kafka.Brokers != "" || cfg.Kafka.Topic != "slackbridge.deliveries" {
		t.Fatalf("kafka config = %#v", cfg.Kafka)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SLACKBRIDGE_ADDR", ":9999")
	t.Setenv("SLACKBRIDGE_SLACK_API_BASE", "http://127.0.0.1:8080/api/")
	t.Setenv("SLACKBRIDGE_HTTP_TIMEOUT", "5s")
	t.Setenv("SLACKBRIDGE_KAFKA_BROKERS", "broker1:9092, broker2:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.SlackAPIBase != "http://127.0.0.1:8080/api" {
		t.Fatalf("slack api base = %q (trailing slash should be trimmed)", cfg.SlackAPIBase)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("http timeout = %v", cfg.HTTPTimeout)
	}
	got := cfg.Kafka.BrokerList()
	if len(got) != 2 || got[0] != "broker1:9092" || got[1] != "broker2:9092" {
		t.Fatalf("broker list = %#v", got)
	}
}
