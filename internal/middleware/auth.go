package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/pkg/authenticator"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/router"
	"github.com/podlift/backend/pkg/xcontext"
)

type AuthVerifier struct {
	tokenEngine authenticator.TokenEngine[model.AccessToken]
	optional    bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (a *AuthVerifier) WithAccessToken(engine authenticator.TokenEngine[model.AccessToken]) *AuthVerifier {
	a.tokenEngine = engine
	return a
}

// Optional lets requests without a token through as anonymous.
func (a *AuthVerifier) Optional() *AuthVerifier {
	a.optional = true
	return a
}

// Middleware reads the access token from the Authorization header first, then
// from the cookie named in the configs.
func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := a.extractToken(ctx)
		if token == "" {
			if a.optional {
				return nil, nil
			}

			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		if a.tokenEngine == nil {
			xcontext.Logger(ctx).Errorf("No token engine is configured")
			return nil, errorx.Unknown
		}

		info, err := a.tokenEngine.Verify(token)
		if err != nil || info.ID == "" {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired access token")
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

func (a *AuthVerifier) extractToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)

	authorization := req.Header.Get("Authorization")
	if scheme, token, ok := strings.Cut(authorization, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil && err != http.ErrNoCookie {
		xcontext.Logger(ctx).Debugf("Cannot read access token cookie: %v", err)
	}
	if cookie != nil {
		return cookie.Value
	}

	return ""
}
