package config

import "time"

const (
	envPort              = "PORT"
	envProvider          = "PROVIDER"
	envHockeyURL         = "HOCKEY_API_URL"
	envHockeyKey         = "HOCKEY_API_KEY"
	envLocalTimezone     = "LOCAL_TIMEZONE"
	envFetchTimeout      = "FETCH_TIMEOUT"
	envFetchRetries      = "FETCH_RETRIES"
	envMinFetchGap       = "MIN_FETCH_GAP"
	envShortInterval     = "SHORT_INTERVAL"
	envLongInterval      = "LONG_INTERVAL"
	envChangeDetection   = "CHANGE_DETECTION"
	envLastUpdatedPolicy = "LAST_UPDATED_POLICY"
	envSnapshotBackend   = "SNAPSHOT_BACKEND"
	envSnapshotPath      = "SNAPSHOT_PATH"
	envRedisAddr         = "REDIS_ADDR"
	envRosterFile        = "ROSTER_FILE"
	envCORSOrigins       = "CORS_ORIGINS"
	envLogLevel          = "LOG_LEVEL"
	envLogFormat         = "LOG_FORMAT"
	envMetricsPort       = "METRICS_PORT"
	envMetricsOn         = "METRICS_ENABLED"
	envOtelEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService       = "OTEL_SERVICE_NAME"
	envOtelInsecure      = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort              = "4000"
	defaultProvider          = "hockeylive"
	defaultHockeyURL         = "https://www.hockey-live.sk/api/games/OG/2026"
	defaultLocalTimezone     = "America/New_York"
	defaultFetchTimeout      = 15 * Duration(time.Second)
	defaultFetchRetries      = 0
	defaultMinFetchGap       = 30 * Duration(time.Second)
	defaultShortInterval     = 10 * Duration(time.Minute)
	defaultLongInterval      = 2 * Duration(time.Hour)
	defaultChangeDetection   = "index"
	defaultLastUpdatedPolicy = LastUpdatedOnChange
	defaultSnapshotBackend   = "fs"
	defaultRedisAddr         = "localhost:6379"
	defaultCORSOrigins       = "*"
	defaultLogLevel          = "info"
	defaultLogFormat         = "text"
	defaultMetricsPort       = "9090"
	defaultServiceName       = "hockey-pool-service"

	// appDir names the per-user cache folder snapshots default into.
	appDir = "hockey-pool"
)

// Last-updated policies: stamp only when the batch changed, or on every successful cycle.
const (
	LastUpdatedOnChange = "change"
	LastUpdatedAlways   = "always"
)
