package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/LeonardoBeccarini/soilparams/pkg/rabbitmq"
)

// ===================== Config =====================

type config struct {
	Rabbit rabbitmq.RabbitMQConfig

	InfluxURL    string
	InfluxToken  string
	InfluxOrg    string
	InfluxBucket string

	RawTopic string

	HTTPPort int
	GRPCPort int
	LogLevel string

	DedupTTL     time.Duration
	AuditTimeout time.Duration

	CBFails      int
	CBOpenMs     int
	CBIntervalMs int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("RABBITMQ_HOST", "localhost")
	v.SetDefault("RABBITMQ_PORT", 1883)
	v.SetDefault("RABBITMQ_USER", "guest")
	v.SetDefault("RABBITMQ_PASSWORD", "guest")
	v.SetDefault("HOSTNAME", "soil-defaulter")

	v.SetDefault("INFLUX_URL", "http://localhost:8086")
	v.SetDefault("INFLUX_TOKEN", "")
	v.SetDefault("INFLUX_ORG", "msut")
	v.SetDefault("INFLUX_BUCKET", "soil")

	v.SetDefault("SOIL_RAW_TOPIC", "soil/profile/raw/#")

	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("GRPC_PORT", 50051)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DEDUP_TTL", "10m")
	v.SetDefault("AUDIT_TIMEOUT", "3s")

	v.SetDefault("CB_FAILS", 3)
	v.SetDefault("CB_OPEN_MS", 10000)
	v.SetDefault("CB_INTERVAL_MS", 60000)
}

// loadConfig legge env e, se indicato da SOIL_CONFIG_FILE, un file YAML.
// Le variabili d'ambiente hanno la precedenza sul file.
func loadConfig(v *viper.Viper) (config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if file := strings.TrimSpace(v.GetString("SOIL_CONFIG_FILE")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := config{
		Rabbit: rabbitmq.RabbitMQConfig{
			Host:     v.GetString("RABBITMQ_HOST"),
			Port:     v.GetInt("RABBITMQ_PORT"),
			User:     v.GetString("RABBITMQ_USER"),
			Password: v.GetString("RABBITMQ_PASSWORD"),
			ClientID: v.GetString("HOSTNAME"),
		},
		InfluxURL:    v.GetString("INFLUX_URL"),
		InfluxToken:  v.GetString("INFLUX_TOKEN"),
		InfluxOrg:    v.GetString("INFLUX_ORG"),
		InfluxBucket: v.GetString("INFLUX_BUCKET"),
		RawTopic:     v.GetString("SOIL_RAW_TOPIC"),
		HTTPPort:     v.GetInt("HTTP_PORT"),
		GRPCPort:     v.GetInt("GRPC_PORT"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		DedupTTL:     v.GetDuration("DEDUP_TTL"),
		AuditTimeout: v.GetDuration("AUDIT_TIMEOUT"),
		CBFails:      v.GetInt("CB_FAILS"),
		CBOpenMs:     v.GetInt("CB_OPEN_MS"),
		CBIntervalMs: v.GetInt("CB_INTERVAL_MS"),
	}
	if cfg.HTTPPort <= 0 || cfg.GRPCPort <= 0 {
		return cfg, fmt.Errorf("invalid ports http=%d grpc=%d", cfg.HTTPPort, cfg.GRPCPort)
	}
	if cfg.CBFails <= 0 {
		cfg.CBFails = 1
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
