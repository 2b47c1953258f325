package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc may enrich the context. A non-nil error aborts the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response has been written, even on failure.
type CloserFunc func(ctx context.Context)

type Router struct {
	ctx context.Context
	mux *http.ServeMux

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router whose handlers inherit every value of the root context
// (database, configs, logger...).
func New(ctx context.Context) *Router {
	return &Router{ctx: ctx, mux: http.NewServeMux()}
}

// Branch creates a router sharing the same mux but with its own copy of the
// middleware chains.
func (r *Router) Branch() *Router {
	return &Router{
		ctx:     r.ctx,
		mux:     r.mux,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(m ...MiddlewareFunc) {
	r.befores = append(r.befores, m...)
}

func (r *Router) After(m ...MiddlewareFunc) {
	r.afters = append(r.afters, m...)
}

func (r *Router) AddCloser(c ...CloserFunc) {
	r.closers = append(r.closers, c...)
}

func (r *Router) Handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodPost, pattern, handler)
}

func route[Request, Response any](r *Router, method, pattern string, handler HandlerFunc[Request, Response]) {
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]MiddlewareFunc{}, r.afters...)
	closers := append([]CloserFunc{}, r.closers...)

	r.mux.HandleFunc(method+" "+pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := xcontext.WithHTTPRequest(r.ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithStartTime(ctx, time.Now())

		ctx = serve(ctx, method, befores, afters, handler)

		handleResponse(ctx)
		for _, closer := range closers {
			closer(ctx)
		}
	})
}

func serve[Request, Response any](
	ctx context.Context,
	method string,
	befores, afters []MiddlewareFunc,
	handler HandlerFunc[Request, Response],
) context.Context {
	var err error
	for _, m := range befores {
		if ctx, err = runMiddleware(ctx, m); err != nil {
			return xcontext.WithError(ctx, err)
		}
	}

	req := new(Request)
	if err := parseRequest(ctx, method, req); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot parse request: %v", err)
		return xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request"))
	}

	resp, err := handler(ctx, req)
	if err != nil {
		return xcontext.WithError(ctx, err)
	}
	ctx = xcontext.WithResponse(ctx, resp)

	for _, m := range afters {
		if ctx, err = runMiddleware(ctx, m); err != nil {
			return xcontext.WithError(ctx, err)
		}
	}

	return ctx
}

func runMiddleware(ctx context.Context, m MiddlewareFunc) (context.Context, error) {
	newCtx, err := m(ctx)
	if newCtx == nil {
		newCtx = ctx
	}

	return newCtx, err
}

func parseRequest(ctx context.Context, method string, req any) error {
	httpReq := xcontext.HTTPRequest(ctx)
	switch method {
	case http.MethodGet:
		query := map[string]any{}
		for key, values := range httpReq.URL.Query() {
			if len(values) == 1 {
				query[key] = values[0]
			} else {
				query[key] = values
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           req,
		})
		if err != nil {
			return err
		}

		return decoder.Decode(query)

	case http.MethodPost:
		if httpReq.Body == nil || httpReq.ContentLength == 0 {
			return nil
		}

		return json.NewDecoder(httpReq.Body).Decode(req)
	}

	return errors.New("unsupported method")
}
