package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

type echoResponse struct {
	Name   string `json:"name"`
	Limit  int    `json:"limit"`
	UserID string `json:"user_id"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Empty name")
	}

	return &echoResponse{Name: req.Name, Limit: req.Limit, UserID: xcontext.RequestUserID(ctx)}, nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response {
	var resp response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRouter_GET(t *testing.T) {
	r := New(context.Background())
	r.Before(func(ctx context.Context) (context.Context, error) {
		return xcontext.WithRequestUserID(ctx, "user1"), nil
	})
	GET(r, "/echo", echo)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/echo?name=pod&limit=7", nil))

	resp := decode(t, rec)
	require.Equal(t, int64(0), resp.Code)
	data := resp.Data.(map[string]any)
	require.Equal(t, "pod", data["name"])
	require.Equal(t, float64(7), data["limit"])
	require.Equal(t, "user1", data["user_id"])
}

func TestRouter_POSTError(t *testing.T) {
	r := New(context.Background())
	POST(r, "/echo", echo)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":""}`)))

	resp := decode(t, rec)
	require.Equal(t, int64(errorx.BadRequest), resp.Code)
	require.Equal(t, "Empty name", resp.Error)
}

func TestRouter_MiddlewareAbortsAndClosersRun(t *testing.T) {
	closed := false
	r := New(context.Background())
	r.AddCloser(func(ctx context.Context) { closed = true })

	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "Need authenticated")
	})
	GET(branch, "/private", echo)
	GET(r, "/public", echo)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private?name=x", nil))
	require.Equal(t, int64(errorx.Unauthenticated), decode(t, rec).Code)
	require.True(t, closed)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/public?name=x", nil))
	require.Equal(t, int64(0), decode(t, rec).Code)
}
