package hockeylive

import "time"

const (
	providerName       = "hockeylive"
	defaultURL         = "https://www.hockey-live.sk/api/games/OG/2026"
	defaultHTTPTimeout = 15 * time.Second
	defaultTimezone    = "America/New_York"
	apiKeyParam        = "key"
	// Upper bound on the response body we are willing to buffer.
	maxBodyBytes = 4 << 20
)

// ProviderName identifies this provider in logs and metrics.
const ProviderName = providerName
