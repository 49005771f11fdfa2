package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/preston-bernstein/hockey-pool-service/internal/domain/standings"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port        string
	Provider    string
	Hockey      HockeyConfig
	Refresh     RefreshConfig
	Snapshots   SnapshotConfig
	Roster      standings.Roster
	CORSOrigins []string
	Logging     LoggingConfig
	Metrics     MetricsConfig

	// invalidEnv lists environment values Load could not use.
	invalidEnv []string
}

// HockeyConfig controls how we talk to the schedule API.
type HockeyConfig struct {
	URL      string
	APIKey   string
	Timezone string
}

// RefreshConfig tunes the fetch cycle and the adaptive scheduler.
type RefreshConfig struct {
	FetchTimeout      Duration
	FetchRetries      int
	MinFetchGap       Duration
	ShortInterval     Duration
	LongInterval      Duration
	ChangeDetection   string
	LastUpdatedPolicy string
}

// SnapshotConfig selects where the last batch and last-updated label persist.
type SnapshotConfig struct {
	Backend   string
	Path      string
	RedisAddr string
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// Only an unreadable or malformed ROSTER_FILE is an error here; other unusable
// values fall back to their defaults and are reported by Validate.
func Load() (Config, error) {
	return load(newEnvReader())
}

func load(env *envReader) (Config, error) {
	roster, err := loadRoster(env.str(envRosterFile, ""))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:     env.str(envPort, defaultPort),
		Provider: strings.ToLower(env.str(envProvider, defaultProvider)),
		Hockey: HockeyConfig{
			URL:      env.str(envHockeyURL, defaultHockeyURL),
			APIKey:   env.str(envHockeyKey, ""),
			Timezone: env.str(envLocalTimezone, defaultLocalTimezone),
		},
		Refresh:     loadRefresh(env),
		Snapshots:   loadSnapshots(env),
		Roster:      roster,
		CORSOrigins: splitList(env.str(envCORSOrigins, defaultCORSOrigins)),
		Logging: LoggingConfig{
			Level:  env.str(envLogLevel, defaultLogLevel),
			Format: env.str(envLogFormat, defaultLogFormat),
		},
		Metrics: loadMetrics(env),
	}
	cfg.invalidEnv = env.invalid
	return cfg, nil
}

func loadRefresh(env *envReader) RefreshConfig {
	return RefreshConfig{
		FetchTimeout:      env.duration(envFetchTimeout, defaultFetchTimeout),
		FetchRetries:      env.count(envFetchRetries, defaultFetchRetries),
		MinFetchGap:       env.duration(envMinFetchGap, defaultMinFetchGap),
		ShortInterval:     env.duration(envShortInterval, defaultShortInterval),
		LongInterval:      env.duration(envLongInterval, defaultLongInterval),
		ChangeDetection:   strings.ToLower(env.str(envChangeDetection, defaultChangeDetection)),
		LastUpdatedPolicy: env.oneOf(envLastUpdatedPolicy, defaultLastUpdatedPolicy, LastUpdatedOnChange, LastUpdatedAlways),
	}
}

func loadSnapshots(env *envReader) SnapshotConfig {
	return SnapshotConfig{
		Backend:   strings.ToLower(env.str(envSnapshotBackend, defaultSnapshotBackend)),
		Path:      env.str(envSnapshotPath, defaultSnapshotPath()),
		RedisAddr: env.str(envRedisAddr, defaultRedisAddr),
	}
}

// defaultSnapshotPath resolves the per-user cache directory, falling back to a
// relative data folder if XDG resolution fails.
func defaultSnapshotPath() string {
	dir, err := xdg.CacheFile(filepath.Join(appDir, "snapshots", ".keep"))
	if err != nil {
		return filepath.Join("data", "snapshots")
	}
	return filepath.Dir(dir)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate reports settings that cannot be served.
func (c Config) Validate() error {
	if len(c.invalidEnv) > 0 {
		return fmt.Errorf("config: invalid environment values: %s", strings.Join(c.invalidEnv, ", "))
	}
	switch c.Provider {
	case "hockeylive", "fixture":
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider)
	}
	switch c.Snapshots.Backend {
	case "fs", "sqlite", "redis", "none":
	default:
		return fmt.Errorf("config: unknown snapshot backend %q", c.Snapshots.Backend)
	}
	switch c.Refresh.ChangeDetection {
	case "index", "matchup":
	default:
		return fmt.Errorf("config: unknown change detection mode %q", c.Refresh.ChangeDetection)
	}
	if len(c.Roster) == 0 {
		return fmt.Errorf("config: roster is empty")
	}
	return nil
}
