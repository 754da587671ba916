package utils

import (
	"net"
	"strconv"
	"strings"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 0 {
		return defaultValue
	}

	return result
}

// ClientIP extracts the client address for rate-limit keying. Trusts
// X-Forwarded-For only for its first hop, falls back to the peer address.
func ClientIP(remoteAddr, forwardedFor string) string {
	if forwardedFor != "" {
		if i := strings.IndexByte(forwardedFor, ','); i >= 0 {
			forwardedFor = forwardedFor[:i]
		}
		return strings.TrimSpace(forwardedFor)
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// SanitizeText trims whitespace and strips control characters from free-text
// contact fields before storage.
func SanitizeText(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}
