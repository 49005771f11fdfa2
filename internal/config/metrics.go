package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics(env *envReader) MetricsConfig {
	return MetricsConfig{
		Enabled:      env.flag(envMetricsOn, true),
		Port:         env.str(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: env.str(envOtelEndpoint, ""),
		ServiceName:  env.str(envOtelService, defaultServiceName),
		OtlpInsecure: env.flag(envOtelInsecure, true),
	}
}
