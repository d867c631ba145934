package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("GOPHAUTH_HTTP_ADDR", ":9999")
	t.Setenv("GOPHAUTH_REFRESH_TOKEN_TTL", "48h")
	t.Setenv("GOPHAUTH_HASH_ITERATIONS", "12000")
	t.Setenv("GOPHAUTH_AUDIENCE", "mobile")

	c := defaults()
	require.NoError(t, parseEnv(&c))

	assert.Equal(t, ":9999", c.HTTPAddr)
	assert.Equal(t, 48*time.Hour, c.RefreshTokenValidityDuration)
	assert.Equal(t, 12000, c.HashIterations)
	assert.Equal(t, "mobile", c.Audience)
	assert.Equal(t, "gophauth", c.Issuer, "unset variables keep the previous value")
}

func TestParseEnv_InvalidNumber(t *testing.T) {
	t.Setenv("GOPHAUTH_HASH_ITERATIONS", "lots")

	c := defaults()
	assert.ErrorContains(t, parseEnv(&c), "parse env")
}
