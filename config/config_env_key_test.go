package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode":  "disable",
			"maxIdle":  10,
			"database": "alerte",
		},
		"secretKey": map[string]any{
			"access": "",
		},
		"auth": map[string]any{
			"profileFetchTimeout": "3s",
		},
	}

	tests := []struct {
		name   string
		rawKey string
		want   string
	}{
		{
			name:   "aligns to existing camelCase key",
			rawKey: "POSTGRES_SSLMODE",
			want:   "postgres.sslMode",
		},
		{
			name:   "nested camelCase parent",
			rawKey: "SECRETKEY_ACCESS",
			want:   "secretKey.access",
		},
		{
			name:   "multi word leaf",
			rawKey: "AUTH_PROFILEFETCHTIMEOUT",
			want:   "auth.profileFetchTimeout",
		},
		{
			name:   "unknown key falls back to lowercase",
			rawKey: "POSTGRES_UNKNOWN",
			want:   "postgres.unknown",
		},
		{
			name:   "fully unknown path",
			rawKey: "SOMETHING_ELSE",
			want:   "something.else",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := canonicalizeEnvKey(tt.rawKey, existing)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "sslmode", normalizeToken("sslMode"))
	assert.Equal(t, "maxidle", normalizeToken("max_idle"))
	assert.Equal(t, "abc123", normalizeToken("Abc-123"))
}
