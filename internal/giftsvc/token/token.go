// Package token issues and verifies the admin bearer token.
//
// A token is base64(JSON{"email", "exp"}) with exp in epoch milliseconds.
// It is NOT signed: anyone can mint a token that verifies. This mirrors
// the app's existing clients and is a known weakness, not a security
// boundary. Logout cannot revoke a token for the same reason.
package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const DefaultTTL = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type Payload struct {
	Email string `json:"email"`
	Exp   int64  `json:"exp"`
}

// ExpiresAt converts Exp to a time.
func (p Payload) ExpiresAt() time.Time {
	return time.UnixMilli(p.Exp)
}

type Service struct {
	ttl time.Duration
	now func() time.Time
}

func NewService() *Service {
	return &Service{ttl: DefaultTTL, now: time.Now}
}

// NewServiceWithClock is NewService with a fixed clock and lifetime.
func NewServiceWithClock(ttl time.Duration, now func() time.Time) *Service {
	return &Service{ttl: ttl, now: now}
}

func (s *Service) Issue(email string) (string, error) {
	p := Payload{
		Email: email,
		Exp:   s.now().Add(s.ttl).UnixMilli(),
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func (s *Service) Verify(tok string) (*Payload, error) {
	raw, err := decode(strings.TrimSpace(tok))
	if err != nil {
		return nil, ErrInvalidToken
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, ErrInvalidToken
	}

	if p.Exp <= s.now().UnixMilli() {
		return nil, ErrTokenExpired
	}
	return &p, nil
}

// decode accepts padded and unpadded standard base64.
func decode(tok string) ([]byte, error) {
	if tok == "" {
		return nil, ErrInvalidToken
	}
	if raw, err := base64.StdEncoding.DecodeString(tok); err == nil {
		return raw, nil
	}
	return base64.RawStdEncoding.DecodeString(tok)
}
