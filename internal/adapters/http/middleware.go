package httpadapter

import (
    "context"
    "net"
    "net/http"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/sirupsen/logrus"

    api "pincheck/internal/api"
)

type ctxKey int

const sourceAddrKey ctxKey = iota

// withSourceAddr records the client address for handlers that only receive a
// context. Runs after middleware.RealIP so forwarded headers are honoured.
func withSourceAddr(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        addr := r.RemoteAddr
        if host, _, err := net.SplitHostPort(addr); err == nil {
            addr = host
        }
        next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sourceAddrKey, addr)))
    })
}

func sourceAddrFrom(ctx context.Context) string {
    addr, _ := ctx.Value(sourceAddrKey).(string)
    return addr
}

func (s *Server) limitBody(next http.Handler) http.Handler {
    if s.opts.MaxUploadBytes <= 0 {
        return next
    }
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.Body != nil {
            r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
        }
        next.ServeHTTP(w, r)
    })
}

// observe logs one line per request and records latency by route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
        start := time.Now()
        next.ServeHTTP(ww, r)
        elapsed := time.Since(start)

        route := "unmatched"
        if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
            route = rctx.RoutePattern()
        }
        status := ww.Status()
        if status == 0 {
            status = http.StatusOK
        }
        s.metrics.ObserveHTTP(route, status, elapsed)
        s.log.WithFields(logrus.Fields{
            "method":     r.Method,
            "route":      route,
            "status":     status,
            "durationMs": elapsed.Milliseconds(),
            "requestId":  middleware.GetReqID(r.Context()),
        }).Info("http request")
    })
}

// throttleUploads applies the upload rate limit to UploadScan only.
func (s *Server) throttleUploads(f api.StrictHandlerFunc, operationID string) api.StrictHandlerFunc {
    if operationID != "UploadScan" || s.uploads == nil {
        return f
    }
    return func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
        if !s.uploads.Allow() {
            s.metrics.Submission("throttled")
            return api.UploadScan429JSONResponse(errorBody("rate_limited", "too many uploads, retry later")), nil
        }
        return f(ctx, w, r, request)
    }
}
