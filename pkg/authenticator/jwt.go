package authenticator

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const issuer = "podlift"

type claims[T any] struct {
	jwt.RegisteredClaims
	Object T `json:"obj,omitempty"`
}

type jwtTokenEngine[T any] struct {
	secret     []byte
	expiration time.Duration
	parser     *jwt.Parser
}

// NewTokenEngine signs HS256 tokens. A token signed by another engine, with
// another method, or by another issuer never verifies.
func NewTokenEngine[T any](secret string, expiration time.Duration) TokenEngine[T] {
	return &jwtTokenEngine[T]{
		secret:     []byte(secret),
		expiration: expiration,
		parser:     jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (e *jwtTokenEngine[T]) Generate(sub string, obj T) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims[T]{
		Object: obj,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(e.expiration)),
		},
	})

	return token.SignedString(e.secret)
}

func (e *jwtTokenEngine[T]) Verify(token string) (T, error) {
	var c claims[T]
	if _, err := e.parser.ParseWithClaims(token, &c, e.key); err != nil {
		var zero T
		return zero, err
	}

	if !c.VerifyIssuer(issuer, true) {
		var zero T
		return zero, jwt.ErrTokenInvalidIssuer
	}

	return c.Object, nil
}

func (e *jwtTokenEngine[T]) key(*jwt.Token) (any, error) {
	return e.secret, nil
}
