package config

import (
	"fmt"
	"time"
)

type Audit struct {
	RabbitMQURL     string
	ShutdownTimeout time.Duration
}

func LoadAudit() (Audit, error) {
	cfg := Audit{
		RabbitMQURL:     getEnv("RABBITMQ_URL", ""),
		ShutdownTimeout: defaultShutdownTimeout,
	}

	if cfg.RabbitMQURL == "" {
		return Audit{}, fmt.Errorf("RABBITMQ_URL is required")
	}

	return cfg, nil
}
