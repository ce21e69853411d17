// Package jwtx issues and verifies the signed, time-limited tokens used by
// the auth flows. Access and refresh tokens are signed with independent
// secrets and lifetimes so a leaked refresh secret cannot mint or validate
// access tokens, and vice versa.
package jwtx

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cobaltlabs/userhub/pkg/apierr"
)

// Kind selects which secret/lifetime pair a token is bound to.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Environment variable names for the per-kind signing configuration. They
// appear verbatim in configuration errors so operators know what to set.
const (
	EnvAccessSecret     = "JWT_ACCESS_TOKEN_SECRET"
	EnvAccessExpiresIn  = "JWT_ACCESS_TOKEN_EXPIRES_IN"
	EnvRefreshSecret    = "JWT_REFRESH_TOKEN_SECRET"
	EnvRefreshExpiresIn = "JWT_REFRESH_TOKEN_EXPIRES_IN"
)

// Payload is the identity snapshot embedded in every token.
type Payload struct {
	UserID    string `json:"userId"`
	LastName  string `json:"lastName"`
	Age       int64  `json:"age"`
	DeleteFlg int64  `json:"deleteFlg"`
}

// Claims are the full token claims: the identity payload plus the registered
// claims and a kind marker. The marker is defence in depth on top of the
// distinct secrets; a token signed as one kind never verifies as the other.
type Claims struct {
	jwt.RegisteredClaims
	Payload

	TokenKind string `json:"tkn"`
}

// KeyConfig holds the signing material for one token kind. A zero Secret or
// TTL means the corresponding environment variable was never set.
type KeyConfig struct {
	Secret string
	TTL    time.Duration
}

// Service signs and verifies both token kinds.
type Service struct {
	Issuer  string
	Access  KeyConfig
	Refresh KeyConfig
}

func (s *Service) key(kind Kind) KeyConfig {
	if kind == KindRefresh {
		return s.Refresh
	}
	return s.Access
}

// Issue signs a token of the given kind carrying p. Missing configuration
// for the kind is a ConfigurationError; signing failures map to the per-kind
// signing error code.
func (s *Service) Issue(kind Kind, p Payload) (string, error) {
	cfg := s.key(kind)

	secretEnv, ttlEnv := EnvAccessSecret, EnvAccessExpiresIn
	signCode := apierr.CodeSignAccessToken
	signMsg := "An error occurred while generating the access token."
	if kind == KindRefresh {
		secretEnv, ttlEnv = EnvRefreshSecret, EnvRefreshExpiresIn
		signCode = apierr.CodeSignRefreshToken
		signMsg = "An error occurred while generating the refresh token."
	}

	if cfg.Secret == "" {
		return "", apierr.MissingEnv("Issue", secretEnv)
	}
	if cfg.TTL <= 0 {
		return "", apierr.MissingEnv("Issue", ttlEnv)
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
		},
		Payload:   p,
		TokenKind: string(kind),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", apierr.New(http.StatusBadRequest, signCode, signMsg).
			WithParams("payload").
			WithDetail("jwt.SignedString", []string{p.UserID}, err.Error())
	}
	return signed, nil
}

// Verify checks raw against the kind's secret and returns the embedded
// payload. An empty token, a bad signature, a cross-kind token and an
// expired token all surface as the same caller-visible 401; expiry is only
// distinguished in the detail record for observability.
func (s *Service) Verify(kind Kind, raw string) (*Claims, error) {
	cfg := s.key(kind)

	secretEnv, name := EnvAccessSecret, "accessToken"
	code := apierr.CodeVerifyAccessToken
	msg := "Unauthorized Access Token!"
	if kind == KindRefresh {
		secretEnv, name = EnvRefreshSecret, "refreshToken"
		code = apierr.CodeVerifyRefreshToken
		msg = "Unauthorized Refresh Token!"
	}

	if cfg.Secret == "" {
		return nil, apierr.MissingEnv("Verify", secretEnv)
	}

	unauthorized := func(detail string) *apierr.Error {
		return apierr.New(http.StatusUnauthorized, code, msg).
			WithParams(name).
			WithDetail("jwt.ParseWithClaims", []string{name}, detail)
	}

	if raw == "" {
		return nil, unauthorized("The " + name + " is missing.")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.Secret), nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, unauthorized("The " + name + " is expired.")
	case err != nil:
		return nil, unauthorized("The " + name + " is invalid.")
	case !token.Valid:
		return nil, unauthorized("The " + name + " is invalid.")
	case claims.TokenKind != string(kind):
		return nil, unauthorized("The " + name + " kind does not match.")
	}

	return claims, nil
}
