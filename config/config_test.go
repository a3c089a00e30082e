package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s failed: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		}
	})
}

func TestLoadRequiresMySQLDSN(t *testing.T) {
	unsetEnv(t, "MYSQL_DSN")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing MYSQL_DSN")
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/mathtutor?parseTime=true")
	setEnv(t, "APP_SERVICE_NAME", "math-tutor-test")
	setEnv(t, "HTTP_PORT", "8181")
	setEnv(t, "MYSQL_MAX_OPEN_CONNS", "20")
	setEnv(t, "MYSQL_MAX_IDLE_CONNS", "8")
	setEnv(t, "MYSQL_CONN_MAX_LIFETIME_MINUTES", "40")
	setEnv(t, "PAYSTACK_PLAN_CODE_PREMIUM", "PLN_premium")
	setEnv(t, "PAYSTACK_PLAN_CODE_PRO", "PLN_pro")
	setEnv(t, "PAYSTACK_HTTP_TIMEOUT_SECONDS", "7")
	setEnv(t, "BILLING_STORE_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.App.ServiceName != "math-tutor-test" {
		t.Fatalf("unexpected app service name: %s", cfg.App.ServiceName)
	}
	if cfg.HTTP.Port != "8181" {
		t.Fatalf("unexpected http port: %s", cfg.HTTP.Port)
	}
	if cfg.MySQL.MaxOpenConns != 20 || cfg.MySQL.MaxIdleConns != 8 {
		t.Fatalf("unexpected mysql pool config: %+v", cfg.MySQL)
	}
	if cfg.MySQL.ConnMaxLifetime != 40*time.Minute {
		t.Fatalf("unexpected mysql lifetime: %v", cfg.MySQL.ConnMaxLifetime)
	}
	if cfg.Paystack.PlanCodePremium != "PLN_premium" || cfg.Paystack.PlanCodePro != "PLN_pro" {
		t.Fatalf("unexpected plan codes: %+v", cfg.Paystack)
	}
	if cfg.Paystack.HTTPTimeout != 7*time.Second {
		t.Fatalf("unexpected paystack http timeout: %v", cfg.Paystack.HTTPTimeout)
	}
	if cfg.Paystack.Currency != "GHS" {
		t.Fatalf("unexpected default currency: %s", cfg.Paystack.Currency)
	}
	if cfg.Billing.StoreTimeout != 3*time.Second {
		t.Fatalf("unexpected store timeout: %v", cfg.Billing.StoreTimeout)
	}
}

func TestLoadMissingPaystackSecretIsNotFatal(t *testing.T) {
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/mathtutor?parseTime=true")
	unsetEnv(t, "PAYSTACK_SECRET_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Paystack.SecretKey != "" {
		t.Fatalf("expected empty secret key, got %q", cfg.Paystack.SecretKey)
	}
}
