package cryptox

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

func TestNewHasher_RaisesLowIterations(t *testing.T) {
	h := NewHasher(1)
	assert.Equal(t, DefaultIterations, h.iterations)

	h = NewHasher(20000)
	assert.Equal(t, 20000, h.iterations)
}

func TestNewSalt_SizeAndDistinct(t *testing.T) {
	h := NewHasher(DefaultIterations)

	a, err := h.NewSalt()
	require.NoError(t, err)
	b, err := h.NewSalt()
	require.NoError(t, err)

	assert.Len(t, a, SaltSize)
	assert.Len(t, b, SaltSize)
	assert.False(t, bytes.Equal(a, b), "two salts should differ")
}

func TestHash_DeterministicAndSalted(t *testing.T) {
	h := NewHasher(DefaultIterations)
	salt1 := bytes.Repeat([]byte{1}, SaltSize)
	salt2 := bytes.Repeat([]byte{2}, SaltSize)

	d1 := h.Hash("longpass1", salt1)
	d2 := h.Hash("longpass1", salt1)
	d3 := h.Hash("longpass1", salt2)

	assert.Len(t, d1, KeySize)
	assert.Equal(t, d1, d2)
	assert.NotEqual(t, d1, d3)
	assert.NotEqual(t, []byte("longpass1"), d1)
}

func TestHash_MatchesReferencePBKDF2(t *testing.T) {
	h := NewHasher(DefaultIterations)
	salt := []byte("0123456789abcdef0123456789abcdef")

	want := pbkdf2.Key([]byte("secret"), salt, 10000, 32, sha256.New)
	got := h.Hash("secret", salt)

	assert.Equal(t, base64.StdEncoding.EncodeToString(want), base64.StdEncoding.EncodeToString(got))
}

func TestVerify(t *testing.T) {
	h := NewHasher(DefaultIterations)
	salt, err := h.NewSalt()
	require.NoError(t, err)
	digest := h.Hash("correct horse", salt)

	assert.True(t, h.Verify("correct horse", salt, digest))
	assert.False(t, h.Verify("wrong horse", salt, digest))
	assert.False(t, h.Verify("correct horse", salt, digest[:KeySize-1]))

	otherSalt, err := h.NewSalt()
	require.NoError(t, err)
	assert.False(t, h.Verify("correct horse", otherSalt, digest))
}
