package config

import (
	"strconv"
	"strings"
)

const (
	legacyTextLimit = 16
	modernTextLimit = 256
	identifierLimit = 16
)

// Limits - потолки длины, выбранные один раз при старте по версии протокола хоста
type Limits struct {
	Prefix     int
	Suffix     int
	Identifier int
	Legacy     bool
}

// NegotiateLimits разбирает версию вида "1.8.8" или "1.20.4-R0.1".
// Версии до 1.12 включительно считаются старыми: 16 символов на префикс и суффикс.
func NegotiateLimits(version string) Limits {
	major, minor := parseVersion(version)

	legacy := major < 1 || (major == 1 && minor <= 12)
	if legacy {
		return Limits{
			Prefix:     legacyTextLimit,
			Suffix:     legacyTextLimit,
			Identifier: identifierLimit,
			Legacy:     true,
		}
	}
	return Limits{
		Prefix:     modernTextLimit,
		Suffix:     modernTextLimit,
		Identifier: identifierLimit,
	}
}

func parseVersion(version string) (int, int) {
	base := strings.SplitN(strings.TrimSpace(version), "-", 2)[0]
	parts := strings.Split(base, ".")
	return partAt(parts, 0, 1), partAt(parts, 1, 8)
}

func partAt(parts []string, idx, fallback int) int {
	if idx >= len(parts) {
		return fallback
	}
	n, err := strconv.Atoi(parts[idx])
	if err != nil {
		return fallback
	}
	return n
}
