package main

import (
	"context"
	"testing"
	"time"

	"voxrelay/config"
	"voxrelay/internal/service"

	"go.uber.org/zap"
)

func TestNewHttpClient_Timeout(t *testing.T) {
	cases := []struct {
		name    string
		timeout int
		want    time.Duration
	}{
		{"unset uses runtime default", 0, 0},
		{"negative treated as unset", -5, 0},
		{"configured seconds", 30, 30 * time.Second},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conf := &config.Configuration{HTTP: config.HTTP{Timeout: tc.timeout}}
			if got := newHttpClient(conf).Timeout; got != tc.want {
				t.Errorf("Timeout = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestApp_CloseDrainsReadiness(t *testing.T) {
	conf := &config.Configuration{}
	health := service.NewHealthService()
	health.SetReady(true)

	app := newApp(conf, zap.NewNop(), nil, nil, health, nil)
	if err := app.Close(context.Background()); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	health.SetReady(true)
	if health.IsReady() {
		t.Error("readiness must stay off after Close")
	}
}
