package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/authenticator"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/router"
	"github.com/podlift/backend/pkg/testutil"
	"github.com/podlift/backend/pkg/xcontext"
	"github.com/stretchr/testify/suite"
)

type whoamiRequest struct{}

type whoamiResponse struct {
	UserID string `json:"user_id"`
}

func whoami(ctx context.Context, req *whoamiRequest) (*whoamiResponse, error) {
	return &whoamiResponse{UserID: xcontext.RequestUserID(ctx)}, nil
}

type envelope struct {
	Code int64           `json:"code"`
	Data json.RawMessage `json:"data"`
}

type middlewareSuite struct {
	suite.Suite

	ctx    context.Context
	engine authenticator.TokenEngine[model.AccessToken]
	router *router.Router
}

func TestMiddleware(t *testing.T) {
	suite.Run(t, new(middlewareSuite))
}

func (s *middlewareSuite) SetupTest() {
	s.ctx = testutil.MockContext()
	testutil.CreateProfile(s.ctx, "user1", 0)
	admin := testutil.CreateProfile(s.ctx, "admin", 0)
	s.Require().NoError(xcontext.DB(s.ctx).Model(admin).Update("is_admin", true).Error)

	s.engine = authenticator.NewTokenEngine[model.AccessToken]("secret", time.Minute)
	s.router = router.New(s.ctx)
	s.router.AddCloser(Logger(), Prometheus())

	authRouter := s.router.Branch()
	authRouter.Before(NewAuthVerifier().WithAccessToken(s.engine).Middleware())
	router.GET(authRouter, "/whoami", whoami)

	adminRouter := authRouter.Branch()
	adminRouter.Before(NewOnlyAdmin(repository.NewProfileRepository()).Middleware())
	router.GET(adminRouter, "/admin", whoami)
}

func (s *middlewareSuite) do(path string, setup func(r *http.Request)) envelope {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if setup != nil {
		setup(req)
	}

	rec := httptest.NewRecorder()
	AllowCors([]string{"*"}, s.router.Handler()).ServeHTTP(rec, req)

	var resp envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (s *middlewareSuite) token(userID string) string {
	token, err := s.engine.Generate(userID, model.AccessToken{ID: userID})
	s.Require().NoError(err)
	return token
}

func (s *middlewareSuite) TestBearerToken() {
	resp := s.do("/whoami", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+s.token("user1"))
	})
	s.Equal(int64(0), resp.Code)
	s.JSONEq(`{"user_id":"user1"}`, string(resp.Data))
}

func (s *middlewareSuite) TestCookieToken() {
	resp := s.do("/whoami", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: xcontext.Configs(s.ctx).Auth.AccessToken.Name, Value: s.token("user1")})
	})
	s.Equal(int64(0), resp.Code)
}

func (s *middlewareSuite) TestMissingOrInvalidToken() {
	resp := s.do("/whoami", nil)
	s.Equal(int64(errorx.Unauthenticated), resp.Code)

	resp = s.do("/whoami", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer not-a-token")
	})
	s.Equal(int64(errorx.Unauthenticated), resp.Code)
}

func (s *middlewareSuite) TestOnlyAdmin() {
	resp := s.do("/admin", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+s.token("user1"))
	})
	s.Equal(int64(errorx.PermissionDenied), resp.Code)

	resp = s.do("/admin", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+s.token("admin"))
	})
	s.Equal(int64(0), resp.Code)
}
