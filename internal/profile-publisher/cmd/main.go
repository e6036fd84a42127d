// cmd/profile-publisher/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	profilePublisher "github.com/LeonardoBeccarini/soilparams/internal/profile-publisher"
	"github.com/LeonardoBeccarini/soilparams/pkg/rabbitmq"
)

func main() {
	// define flags
	dir := flag.String("dir", "profiles", "directory of .json/.yaml profile files")
	interval := flag.Duration("interval", 0, "republish interval (0 = once)")
	wait := flag.Duration("wait", 5*time.Second, "time to wait for results when publishing once")
	clientID := flag.String("client-id", "profilePublisher1", "MQTT client ID")
	host := flag.String("host", "localhost", "broker host")
	port := flag.Int("port", 1883, "broker MQTT port")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	// inject flags into config
	cfg := &rabbitmq.RabbitMQConfig{
		Host:     *host,
		Port:     *port,
		User:     "guest",
		Password: "guest",
		ClientID: *clientID,
		Logger:   logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := rabbitmq.NewRabbitMQConn(cfg, ctx)
	if err != nil {
		logger.Fatal("mqtt connection error", zap.Error(err))
	}

	publisher := rabbitmq.NewPublisher(client, "soil/profile/raw/unknown", logger)
	consumer := rabbitmq.NewMultiConsumer(client, profilePublisher.ResultTopics, nil, logger)
	pp := profilePublisher.NewProfilePublisher(*dir, consumer, publisher, logger)

	if err := pp.Start(ctx, *interval, *wait); err != nil {
		logger.Fatal("profile publisher failed", zap.Error(err))
	}
}
