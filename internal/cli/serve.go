package cli

import (
	"context"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/slackbridge/slackbridge/internal/bridge"
	"github.com/slackbridge/slackbridge/internal/config"
	"github.com/slackbridge/slackbridge/internal/report"
	"github.com/slackbridge/slackbridge/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bridge HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	reporter := report.NewReporter(256)
	b := bridge.New(cfg, st, reporter)

	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		emitter := report.NewKafkaEmitter(brokers, cfg.Kafka.Topic)
		defer emitter.Close()
		reporter.Subscribe(emitter.Emit)
		log.Printf("delivery reports publishing to kafka topic %s", cfg.Kafka.Topic)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go reporter.Run(ctx)

	log.Printf("slackbridge listening on %s", cfg.ListenAddr)
	return http.ListenAndServe(cfg.ListenAddr, b.Router())
}
