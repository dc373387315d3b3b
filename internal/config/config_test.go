package config

import (
	"os"
	"testing"
)

func validStorefrontEnv() map[string]string {
	return map[string]string{
		"BOT_TOKEN":               "123:abc",
		"ADMIN_CHAT_ID":           "1056083125",
		"WEB_APP_URL":             "https://shop.example",
		"PAYMENTS_PROVIDER_TOKEN": "456:TEST:def",
	}
}

func TestLoadStorefront(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(env map[string]string)
		wantErr string
	}{
		{
			name:   "valid config with defaults",
			mutate: func(map[string]string) {},
		},
		{
			name:    "missing BOT_TOKEN",
			mutate:  func(env map[string]string) { delete(env, "BOT_TOKEN") },
			wantErr: "BOT_TOKEN is required",
		},
		{
			name:    "missing ADMIN_CHAT_ID",
			mutate:  func(env map[string]string) { delete(env, "ADMIN_CHAT_ID") },
			wantErr: "ADMIN_CHAT_ID is required",
		},
		{
			name:    "non-numeric ADMIN_CHAT_ID",
			mutate:  func(env map[string]string) { env["ADMIN_CHAT_ID"] = "not-a-number" },
			wantErr: "ADMIN_CHAT_ID must be an integer",
		},
		{
			name:    "missing WEB_APP_URL",
			mutate:  func(env map[string]string) { delete(env, "WEB_APP_URL") },
			wantErr: "WEB_APP_URL is required",
		},
		{
			name:    "missing PAYMENTS_PROVIDER_TOKEN",
			mutate:  func(env map[string]string) { delete(env, "PAYMENTS_PROVIDER_TOKEN") },
			wantErr: "PAYMENTS_PROVIDER_TOKEN is required",
		},
		{
			name:   "custom HTTP_ADDR overrides default",
			mutate: func(env map[string]string) { env["HTTP_ADDR"] = ":9090" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			env := validStorefrontEnv()
			tt.mutate(env)
			for k, v := range env {
				t.Setenv(k, v)
			}

			cfg, err := LoadStorefront()
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tt.wantErr)
				}
				if err.Error() != tt.wantErr {
					t.Fatalf("want error %q, got %q", tt.wantErr, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.BotToken != env["BOT_TOKEN"] {
				t.Fatalf("want BotToken %q, got %q", env["BOT_TOKEN"], cfg.BotToken)
			}
			if cfg.AdminChatID != 1056083125 {
				t.Fatalf("want AdminChatID 1056083125, got %d", cfg.AdminChatID)
			}
			if addr, ok := env["HTTP_ADDR"]; ok && cfg.HTTPAddr != addr {
				t.Fatalf("want HTTPAddr %q, got %q", addr, cfg.HTTPAddr)
			}
			if _, ok := env["HTTP_ADDR"]; !ok && cfg.HTTPAddr != defaultHTTPAddr {
				t.Fatalf("want default HTTPAddr %q, got %q", defaultHTTPAddr, cfg.HTTPAddr)
			}
			if cfg.ProductsPath != defaultProductsPath {
				t.Fatalf("want default ProductsPath %q, got %q", defaultProductsPath, cfg.ProductsPath)
			}
			if cfg.Currency != defaultCurrency {
				t.Fatalf("want default Currency %q, got %q", defaultCurrency, cfg.Currency)
			}
			if cfg.ShutdownTimeout != defaultShutdownTimeout {
				t.Fatalf("want ShutdownTimeout %v, got %v", defaultShutdownTimeout, cfg.ShutdownTimeout)
			}
		})
	}
}

func TestLoadAudit(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing RABBITMQ_URL",
			env:     map[string]string{},
			wantErr: "RABBITMQ_URL is required",
		},
		{
			name: "valid config",
			env:  map[string]string{"RABBITMQ_URL": "amqp://localhost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadAudit()
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tt.wantErr)
				}
				if err.Error() != tt.wantErr {
					t.Fatalf("want error %q, got %q", tt.wantErr, err.Error())
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.RabbitMQURL != tt.env["RABBITMQ_URL"] {
				t.Fatalf("want RabbitMQURL %q, got %q", tt.env["RABBITMQ_URL"], cfg.RabbitMQURL)
			}
			if cfg.ShutdownTimeout != defaultShutdownTimeout {
				t.Fatalf("want ShutdownTimeout %v, got %v", defaultShutdownTimeout, cfg.ShutdownTimeout)
			}
		})
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"BOT_TOKEN", "ADMIN_CHAT_ID", "WEB_APP_URL", "PAYMENTS_PROVIDER_TOKEN",
		"HTTP_ADDR", "PRODUCTS_PATH", "CURRENCY", "RABBITMQ_URL",
	}
	for _, key := range keys {
		if val, ok := os.LookupEnv(key); ok {
			t.Setenv(key, val)
		}
		os.Unsetenv(key)
	}
}
