package server

import (
	"fmt"

	"github.com/preston-bernstein/hockey-pool-service/internal/config"
	"github.com/preston-bernstein/hockey-pool-service/internal/providers"
	"github.com/preston-bernstein/hockey-pool-service/internal/providers/fixture"
	"github.com/preston-bernstein/hockey-pool-service/internal/providers/hockeylive"
	"github.com/preston-bernstein/hockey-pool-service/internal/timeutil"
)

func selectProvider(cfg config.Config) (providers.GameProvider, error) {
	switch cfg.Provider {
	case "hockeylive", "":
		return hockeylive.NewClient(hockeylive.Config{
			URL:      cfg.Hockey.URL,
			APIKey:   cfg.Hockey.APIKey,
			Timeout:  cfg.Refresh.FetchTimeout,
			Timezone: cfg.Hockey.Timezone,
		}), nil
	case "fixture":
		return fixture.New(timeutil.ResolveLocation(cfg.Hockey.Timezone)), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
