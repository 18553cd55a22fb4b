package token

import (
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueThenVerify(t *testing.T) {
	svc := NewService()

	tok, err := svc.Issue("user@example.com")
	require.NoError(t, err)

	p, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", p.Email)
	assert.True(t, p.ExpiresAt().After(time.Now()))
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), p.ExpiresAt(), 5*time.Second)
}

func TestVerifyExpired(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer := NewServiceWithClock(time.Hour, func() time.Time { return issuedAt })
	tok, err := issuer.Issue("user@example.com")
	require.NoError(t, err)

	later := NewServiceWithClock(time.Hour, func() time.Time { return issuedAt.Add(2 * time.Hour) })
	p, err := later.Verify(tok)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyPastExpLiteral(t *testing.T) {
	tok := base64.StdEncoding.EncodeToString([]byte(`{"email":"user@example.com","exp":1}`))

	_, err := NewService().Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyInvalid(t *testing.T) {
	svc := NewService()
	tests := map[string]string{
		"empty":       "",
		"not base64":  "%%%not-base64%%%",
		"not json":    base64.StdEncoding.EncodeToString([]byte("hello")),
		"json scalar": base64.StdEncoding.EncodeToString([]byte("5")),
	}

	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := svc.Verify(tok)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyMissingExp(t *testing.T) {
	tok := base64.StdEncoding.EncodeToString([]byte(`{"email":"user@example.com"}`))

	_, err := NewService().Verify(tok)
	assert.Error(t, err)
}

func TestVerifyUnpadded(t *testing.T) {
	exp := time.Now().Add(time.Hour).UnixMilli()
	raw := []byte(`{"email":"a@b.c","exp":` + strconv.FormatInt(exp, 10) + `}`)
	tok := base64.RawStdEncoding.EncodeToString(raw)

	p, err := NewService().Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", p.Email)
}
