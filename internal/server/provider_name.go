package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/hockey-pool-service/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving from instance when not explicitly configured.
func normalizeProviderName(raw string, provider providers.GameProvider) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		name := strings.ToLower(fmt.Sprintf("%T", provider))
		return strings.TrimPrefix(name, "*")
	}
	return "provider"
}
