package postgres

import (
	"testing"
	"time"

	"github.com/ogurasousui/ems-api/internal/platform/config"
)

func TestBuildPoolConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "ems",
		Password:        "secret",
		Name:            "ems",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 15 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}

	poolCfg, err := BuildPoolConfig(cfg)
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	if poolCfg.MaxConns != 10 {
		t.Errorf("expected MaxConns 10, got %d", poolCfg.MaxConns)
	}

	if poolCfg.MinConns != 5 {
		t.Errorf("expected MinConns 5, got %d", poolCfg.MinConns)
	}

	if poolCfg.MaxConnLifetime != 15*time.Minute {
		t.Errorf("expected MaxConnLifetime 15m, got %v", poolCfg.MaxConnLifetime)
	}

	if poolCfg.MaxConnIdleTime != 5*time.Minute {
		t.Errorf("expected MaxConnIdleTime 5m, got %v", poolCfg.MaxConnIdleTime)
	}

	if poolCfg.ConnConfig.Database != "ems" {
		t.Errorf("expected database ems, got %s", poolCfg.ConnConfig.Database)
	}
}

func TestBuildPoolConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "ems",
		Password: "secret",
		Name:     "ems",
		SSLMode:  "disable",
	}

	poolCfg, err := BuildPoolConfig(cfg)
	if err != nil {
		t.Fatalf("BuildPoolConfig returned error: %v", err)
	}

	// 0 値の設定は pgxpool の既定値に任せる。
	if poolCfg.MaxConns <= 0 {
		t.Errorf("expected pgxpool default MaxConns, got %d", poolCfg.MaxConns)
	}
}
