package authenticator_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/podlift/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

type claim struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine[claim]("secret", time.Minute)
	token, err := engine.Generate("user1", claim{ID: "user1", Name: "Alice"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claim{ID: "user1", Name: "Alice"}, obj)

	other := authenticator.NewTokenEngine[claim]("other-secret", time.Minute)
	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine[claim]("secret", -time.Second)
	token, err := engine.Generate("user1", claim{ID: "user1"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}

func TestJWTRejectsUnsignedToken(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"iss": "podlift",
		"sub": "user1",
		"obj": map[string]any{"id": "user1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	engine := authenticator.NewTokenEngine[claim]("secret", time.Minute)
	_, err = engine.Verify(unsigned)
	require.Error(t, err)
}
