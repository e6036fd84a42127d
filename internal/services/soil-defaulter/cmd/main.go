package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sony/gobreaker"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	msg "github.com/LeonardoBeccarini/soilparams/internal/model/messages"
	soildefaulter "github.com/LeonardoBeccarini/soilparams/internal/services/soil-defaulter"
	"github.com/LeonardoBeccarini/soilparams/internal/soil/defaults"
	"github.com/LeonardoBeccarini/soilparams/pkg/dedup"
	"github.com/LeonardoBeccarini/soilparams/pkg/rabbitmq"
)

func mkCB(name string, fails, openMs, intervalMs int, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     name,
		Interval: time.Duration(intervalMs) * time.Millisecond,
		Timeout:  time.Duration(openMs) * time.Millisecond,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= uint32(fails)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})
}

func main() {
	cfg, err := loadConfig(viper.New())
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	cfg.Rabbit.Logger = logger

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === Metrics ===
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := soildefaulter.NewMetrics(reg)

	// === InfluxDB (audit) ===
	var (
		writer *soildefaulter.Writer
		influx influxdb2.Client
	)
	opts := []soildefaulter.ServiceOption{
		soildefaulter.WithMetrics(metrics),
		soildefaulter.WithDeduper(dedup.New(cfg.DedupTTL, 20000)),
		soildefaulter.WithAuditTimeout(cfg.AuditTimeout),
	}
	if cfg.InfluxToken != "" {
		influx = influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
		defer influx.Close()
		cb := mkCB("influx-audit", cfg.CBFails, cfg.CBOpenMs, cfg.CBIntervalMs, logger)
		writer = soildefaulter.NewWriter(influx.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket), cb, logger)
		opts = append(opts, soildefaulter.WithAuditor(writer))
	} else {
		logger.Info("INFLUX_TOKEN not set, audit trail disabled")
	}

	// === MQTT ===
	mqttClient, err := rabbitmq.NewRabbitMQConn(&cfg.Rabbit, ctx)
	if err != nil {
		logger.Fatal("mqtt connection error", zap.Error(err))
	}
	defer rabbitmq.CloseRabbitMQConn(mqttClient)

	publisher := rabbitmq.NewPublisher(mqttClient, msg.DefaultedTopic("unknown"), logger)
	defaulter := defaults.NewDefaulter(defaults.WithLogger(logger.Named("defaults")))
	svc := soildefaulter.NewService(defaulter, publisher, logger, opts...)

	consumer := rabbitmq.NewConsumer(mqttClient, cfg.RawTopic, svc.Handle, logger)
	go consumer.ConsumeMessage(ctx)

	// === gRPC health ===
	lis, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.GRPCPort))
	if err != nil {
		logger.Fatal("grpc listen error", zap.Int("port", cfg.GRPCPort), zap.Error(err))
	}
	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	go soildefaulter.WatchHealth(ctx, hs, mqttClient, 5*time.Second)
	go func() {
		logger.Info("gRPC health listening", zap.Int("port", cfg.GRPCPort))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc serve error", zap.Error(err))
		}
	}()

	// === HTTP ===
	mux := soildefaulter.NewHTTPMux(svc,
		soildefaulter.NewHealthHandler(mqttClient, writer),
		soildefaulter.NewReadyHandler(mqttClient),
		reg)
	if influx != nil {
		// GET /profiles/audit?profile=...&crop=...
		mux.Handle("/profiles/audit", soildefaulter.NewAuditHandler(influx.QueryAPI(cfg.InfluxOrg), cfg.InfluxBucket))
	}
	hsrv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("HTTP listening", zap.Int("port", cfg.HTTPPort))
		if err := hsrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	// === Wait for signal ===
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down...")

	cancel()
	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	_ = hsrv.Shutdown(shCtx)
	grpcServer.GracefulStop()
}
