package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Provider != defaultProvider {
		t.Fatalf("expected default provider %s, got %s", defaultProvider, cfg.Provider)
	}
	if cfg.Hockey.URL != defaultHockeyURL {
		t.Fatalf("expected default hockey url %s, got %s", defaultHockeyURL, cfg.Hockey.URL)
	}
	if cfg.Hockey.APIKey != "" {
		t.Fatalf("expected empty api key by default, got %s", cfg.Hockey.APIKey)
	}
	if cfg.Hockey.Timezone != defaultLocalTimezone {
		t.Fatalf("expected default timezone, got %s", cfg.Hockey.Timezone)
	}
	if cfg.Refresh.FetchTimeout != defaultFetchTimeout || cfg.Refresh.FetchRetries != 0 {
		t.Fatalf("unexpected fetch defaults %+v", cfg.Refresh)
	}
	if cfg.Refresh.ShortInterval != 10*time.Minute || cfg.Refresh.LongInterval != 2*time.Hour {
		t.Fatalf("unexpected interval defaults %+v", cfg.Refresh)
	}
	if cfg.Refresh.ChangeDetection != "index" || cfg.Refresh.LastUpdatedPolicy != LastUpdatedOnChange {
		t.Fatalf("unexpected detection defaults %+v", cfg.Refresh)
	}
	if cfg.Snapshots.Backend != "fs" || cfg.Snapshots.Path == "" {
		t.Fatalf("unexpected snapshot defaults %+v", cfg.Snapshots)
	}
	if len(cfg.Roster) != 3 || cfg.Roster[0].Name != "Sean" {
		t.Fatalf("expected embedded roster, got %+v", cfg.Roster)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected cors defaults %v", cfg.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envProvider, "Fixture")
	t.Setenv(envHockeyURL, "http://example.com/api")
	t.Setenv(envHockeyKey, "secret-key")
	t.Setenv(envLocalTimezone, "Europe/Bratislava")
	t.Setenv(envFetchTimeout, "5s")
	t.Setenv(envFetchRetries, "3")
	t.Setenv(envMinFetchGap, "1m")
	t.Setenv(envShortInterval, "5m")
	t.Setenv(envLongInterval, "1h")
	t.Setenv(envChangeDetection, "MATCHUP")
	t.Setenv(envLastUpdatedPolicy, "always")
	t.Setenv(envSnapshotBackend, "sqlite")
	t.Setenv(envSnapshotPath, "/tmp/pool.db")
	t.Setenv(envRedisAddr, "redis:6379")
	t.Setenv(envCORSOrigins, "http://a.example, http://b.example,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.Port != "5000" || cfg.Provider != "fixture" {
		t.Fatalf("unexpected port/provider %s %s", cfg.Port, cfg.Provider)
	}
	if cfg.Hockey.URL != "http://example.com/api" || cfg.Hockey.APIKey != "secret-key" || cfg.Hockey.Timezone != "Europe/Bratislava" {
		t.Fatalf("unexpected hockey config %+v", cfg.Hockey)
	}
	want := RefreshConfig{
		FetchTimeout:      5 * time.Second,
		FetchRetries:      3,
		MinFetchGap:       time.Minute,
		ShortInterval:     5 * time.Minute,
		LongInterval:      time.Hour,
		ChangeDetection:   "matchup",
		LastUpdatedPolicy: LastUpdatedAlways,
	}
	if cfg.Refresh != want {
		t.Fatalf("expected %+v, got %+v", want, cfg.Refresh)
	}
	if cfg.Snapshots != (SnapshotConfig{Backend: "sqlite", Path: "/tmp/pool.db", RedisAddr: "redis:6379"}) {
		t.Fatalf("unexpected snapshot config %+v", cfg.Snapshots)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.example" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
}

func TestLoadInvalidValuesFallBackAndFailValidate(t *testing.T) {
	t.Setenv(envShortInterval, "not-a-duration")
	t.Setenv(envFetchTimeout, "0s")
	t.Setenv(envLastUpdatedPolicy, "sometimes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Refresh.ShortInterval != defaultShortInterval {
		t.Fatalf("expected default short interval on invalid value, got %s", cfg.Refresh.ShortInterval)
	}
	if cfg.Refresh.FetchTimeout != defaultFetchTimeout {
		t.Fatalf("expected default timeout on non-positive value, got %s", cfg.Refresh.FetchTimeout)
	}
	if cfg.Refresh.LastUpdatedPolicy != LastUpdatedOnChange {
		t.Fatalf("expected change policy, got %s", cfg.Refresh.LastUpdatedPolicy)
	}

	err = cfg.Validate()
	if err == nil {
		t.Fatalf("expected invalid values reported")
	}
	for _, key := range []string{envShortInterval, envFetchTimeout, envLastUpdatedPolicy} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in %q", key, err)
		}
	}
}

func TestLoadAcceptsZeroRetries(t *testing.T) {
	t.Setenv(envFetchRetries, "0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Refresh.FetchRetries != 0 || cfg.Validate() != nil {
		t.Fatalf("expected zero retries accepted, got %d / %v", cfg.Refresh.FetchRetries, cfg.Validate())
	}
}

func TestLoadReadsRosterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	if err := os.WriteFile(path, []byte("owners:\n  - name: Ana\n    teams: [svk, cze]\n"), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	t.Setenv(envRosterFile, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cfg.Roster) != 1 || cfg.Roster[0].Teams[0] != "SVK" {
		t.Fatalf("expected roster from file, got %+v", cfg.Roster)
	}
}

func TestLoadMissingRosterFileErrors(t *testing.T) {
	t.Setenv(envRosterFile, filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing roster file")
	}
}

func TestParseRosterRejectsInvalidInput(t *testing.T) {
	cases := map[string]string{
		"malformed": "owners: [",
		"nameless":  "owners:\n  - teams: [CAN]\n",
		"duplicate": "owners:\n  - name: A\n    teams: [CAN]\n  - name: B\n    teams: [can]\n",
		"same name": "owners:\n  - name: Sean\n    teams: [SWE]\n  - name: sean\n    teams: [CAN]\n",
	}
	for name, body := range cases {
		if _, err := parseRoster([]byte(body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	base, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	bad := base
	bad.Provider = "espn"
	if bad.Validate() == nil {
		t.Fatalf("expected provider error")
	}
	bad = base
	bad.Snapshots.Backend = "s3"
	if bad.Validate() == nil {
		t.Fatalf("expected backend error")
	}
	bad = base
	bad.Refresh.ChangeDetection = "hash"
	if bad.Validate() == nil {
		t.Fatalf("expected detection error")
	}
	bad = base
	bad.Roster = nil
	if bad.Validate() == nil {
		t.Fatalf("expected roster error")
	}
}
