package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// envReader reads settings from the environment. A value that is set but
// unusable falls back to the default and is recorded so Validate can report it.
type envReader struct {
	lookup  func(string) string
	invalid []string
}

func newEnvReader() *envReader {
	return &envReader{lookup: os.Getenv}
}

func (r *envReader) reject(key, raw, want string) {
	r.invalid = append(r.invalid, fmt.Sprintf("%s=%q (want %s)", key, raw, want))
}

func (r *envReader) str(key, defaultValue string) string {
	if val := strings.TrimSpace(r.lookup(key)); val != "" {
		return val
	}
	return defaultValue
}

// oneOf lower-cases the value and accepts only the listed choices.
func (r *envReader) oneOf(key, defaultValue string, choices ...string) string {
	raw := r.str(key, "")
	if raw == "" {
		return defaultValue
	}
	val := strings.ToLower(raw)
	for _, c := range choices {
		if val == c {
			return val
		}
	}
	r.reject(key, raw, strings.Join(choices, "|"))
	return defaultValue
}

func (r *envReader) duration(key string, defaultValue time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		r.reject(key, raw, "a positive duration such as 30s")
		return defaultValue
	}
	return parsed
}

// count accepts zero, unlike duration.
func (r *envReader) count(key string, defaultValue int) int {
	raw := r.str(key, "")
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		r.reject(key, raw, "a non-negative integer")
		return defaultValue
	}
	return val
}

func (r *envReader) flag(key string, defaultValue bool) bool {
	raw := r.str(key, "")
	if raw == "" {
		return defaultValue
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	r.reject(key, raw, "true|false")
	return defaultValue
}
