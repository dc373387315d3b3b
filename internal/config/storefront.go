package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultHTTPAddr     = ":3000"
	defaultProductsPath = "products.json"
	defaultCurrency     = "RUB"

	defaultShutdownTimeout   = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
)

type Storefront struct {
	BotToken              string
	AdminChatID           int64
	WebAppURL             string
	PaymentsProviderToken string
	HTTPAddr              string
	ProductsPath          string
	Currency              string
	RabbitMQURL           string
	ShutdownTimeout       time.Duration
	ReadHeaderTimeout     time.Duration
}

func LoadStorefront() (Storefront, error) {
	cfg := Storefront{
		BotToken:              getEnv("BOT_TOKEN", ""),
		WebAppURL:             getEnv("WEB_APP_URL", ""),
		PaymentsProviderToken: getEnv("PAYMENTS_PROVIDER_TOKEN", ""),
		HTTPAddr:              getEnv("HTTP_ADDR", defaultHTTPAddr),
		ProductsPath:          getEnv("PRODUCTS_PATH", defaultProductsPath),
		Currency:              getEnv("CURRENCY", defaultCurrency),
		RabbitMQURL:           getEnv("RABBITMQ_URL", ""),
		ShutdownTimeout:       defaultShutdownTimeout,
		ReadHeaderTimeout:     defaultReadHeaderTimeout,
	}

	if cfg.BotToken == "" {
		return Storefront{}, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.WebAppURL == "" {
		return Storefront{}, fmt.Errorf("WEB_APP_URL is required")
	}
	if cfg.PaymentsProviderToken == "" {
		return Storefront{}, fmt.Errorf("PAYMENTS_PROVIDER_TOKEN is required")
	}

	rawAdminChatID := getEnv("ADMIN_CHAT_ID", "")
	if rawAdminChatID == "" {
		return Storefront{}, fmt.Errorf("ADMIN_CHAT_ID is required")
	}
	adminChatID, err := strconv.ParseInt(rawAdminChatID, 10, 64)
	if err != nil {
		return Storefront{}, fmt.Errorf("ADMIN_CHAT_ID must be an integer")
	}
	cfg.AdminChatID = adminChatID

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
