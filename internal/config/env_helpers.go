package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// envValue parses the variable named key, returning def when it is unset,
// blank or does not parse.
func envValue[T any](key string, def T, parse func(string) (T, error)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

func GetEnvAsInt(key string, def int) int {
	return envValue(key, def, strconv.Atoi)
}

func GetEnvAsFloat(key string, def float64) float64 {
	return envValue(key, def, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

func GetEnvAsDuration(key string, def time.Duration) time.Duration {
	return envValue(key, def, time.ParseDuration)
}

func GetEnvAsString(key string, def string) string {
	return envValue(key, def, func(s string) (string, error) { return s, nil })
}
