package httpadapter

import (
    "context"
    "errors"
    "fmt"
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/sirupsen/logrus"
    "golang.org/x/time/rate"

    api "pincheck/internal/api"
    "pincheck/internal/domain"
    "pincheck/internal/logging"
    "pincheck/internal/metrics"
    "pincheck/internal/ports"
)

// ResultsPath is the requester-facing view for a PIN.
const ResultsPath = "/results/"

type Options struct {
    MaxUploadBytes int64
    UploadRate     float64 // uploads per second, 0 disables throttling
    UploadBurst    int
    RetryAfter     time.Duration
}

// Server implements the generated StrictServerInterface.
type Server struct {
    pins    ports.Issuer
    ledger  ports.Ledger
    query   ports.Gateway
    log     logrus.FieldLogger
    metrics *metrics.Metrics
    opts    Options
    uploads *rate.Limiter
}

var _ api.StrictServerInterface = (*Server)(nil)

func New(pins ports.Issuer, ledger ports.Ledger, query ports.Gateway, log logrus.FieldLogger, m *metrics.Metrics, opts Options) *Server {
    if log == nil {
        log = logging.Discard()
    }
    if opts.RetryAfter <= 0 {
        opts.RetryAfter = 5 * time.Second
    }
    s := &Server{pins: pins, ledger: ledger, query: query, log: log, metrics: m, opts: opts}
    if opts.UploadRate > 0 {
        burst := opts.UploadBurst
        if burst < 1 {
            burst = 1
        }
        s.uploads = rate.NewLimiter(rate.Limit(opts.UploadRate), burst)
    }
    return s
}

// Routes returns a chi.Router mounting the generated handlers.
func (s *Server) Routes() chi.Router {
    r := chi.NewRouter()
    r.Use(middleware.RequestID, middleware.RealIP, s.observe, middleware.Recoverer, s.limitBody, withSourceAddr)

    if s.metrics != nil {
        r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
    }

    handler := api.NewStrictHandlerWithOptions(s, []api.StrictMiddlewareFunc{s.throttleUploads}, api.StrictHTTPServerOptions{
        RequestErrorHandlerFunc:  s.requestError,
        ResponseErrorHandlerFunc: s.responseError,
    })
    api.HandlerWithOptions(handler, api.ChiServerOptions{
        BaseRouter:       r,
        ErrorHandlerFunc: s.requestError,
    })
    return r
}

func (s *Server) GetHealthz(ctx context.Context, _ api.GetHealthzRequestObject) (api.GetHealthzResponseObject, error) {
    ok := "ok"
    return api.GetHealthz200JSONResponse{Status: &ok}, nil
}

func (s *Server) IssuePin(ctx context.Context, req api.IssuePinRequestObject) (api.IssuePinResponseObject, error) {
    var owner string
    if req.Body != nil && req.Body.UserId != nil {
        owner = *req.Body.UserId
    }
    tok, err := s.pins.Issue(ctx, owner)
    if errors.Is(err, domain.ErrCapacityExhausted) {
        return api.IssuePin503JSONResponse{
            Body:    errorBody("capacity_exhausted", "no PIN available, retry shortly"),
            Headers: api.IssuePin503ResponseHeaders{RetryAfter: int(math.Ceil(s.opts.RetryAfter.Seconds()))},
        }, nil
    }
    if err != nil {
        return nil, err
    }
    return api.IssuePin201JSONResponse{
        Success: true,
        Pin:     tok.Code,
        Expires: tok.ExpiresAt.UTC(),
        Url:     ResultsPath + tok.Code,
        UserId:  tok.OwnerID,
    }, nil
}

func (s *Server) CheckPin(ctx context.Context, req api.CheckPinRequestObject) (api.CheckPinResponseObject, error) {
    chk, err := s.query.CheckPin(ctx, req.Pin)
    if err != nil {
        return nil, err
    }
    out := api.PinStatus{
        Pin:        chk.Code,
        Exists:     chk.Exists,
        State:      api.PinState(chk.State),
        HasResults: chk.HasResult,
        Valid:      chk.State == domain.PinActive,
        Used:       chk.State == domain.PinConsumed,
    }
    if chk.Token != nil {
        created, expires := chk.Token.IssuedAt.UTC(), chk.Token.ExpiresAt.UTC()
        out.Created = &created
        out.Expires = &expires
    }
    return api.CheckPin200JSONResponse(out), nil
}

func (s *Server) UploadScan(ctx context.Context, req api.UploadScanRequestObject) (api.UploadScanResponseObject, error) {
    if req.Body == nil {
        return api.UploadScan400JSONResponse(errorBody("invalid_input", "request body is required")), nil
    }
    code, err := normalizePin(req.Body.Pin)
    if err != nil {
        s.metrics.Submission("invalid")
        return api.UploadScan400JSONResponse(errorBody("invalid_input", err.Error())), nil
    }

    res, err := s.ledger.Submit(ctx, domain.Submission{
        PinCode:    code,
        Findings:   req.Body.Results,
        SourceAddr: sourceAddrFrom(ctx),
    })
    switch {
    case err == nil:
    case errors.Is(err, domain.ErrInvalidInput):
        return api.UploadScan400JSONResponse(errorBody("invalid_input", err.Error())), nil
    case errors.Is(err, domain.ErrAlreadyConsumed):
        return api.UploadScan409JSONResponse(errorBody("already_consumed", err.Error())), nil
    case errors.Is(err, domain.ErrTokenExpired):
        return api.UploadScan410JSONResponse(errorBody("token_expired", err.Error())), nil
    default:
        return nil, err
    }

    return api.UploadScan201JSONResponse{
        Success:   true,
        ScanId:    res.ID,
        Pin:       res.PinCode,
        RiskScore: res.RiskScore,
        RiskLevel: api.RiskLevel(res.RiskTier),
        Timestamp: res.ReceivedAt.UTC(),
        Linked:    res.Linked,
        ViewUrl:   ResultsPath + res.PinCode,
    }, nil
}

func (s *Server) ListRecentScans(ctx context.Context, req api.ListRecentScansRequestObject) (api.ListRecentScansResponseObject, error) {
    limit := 0
    if req.Params.Limit != nil {
        limit = *req.Params.Limit
    }
    results, err := s.query.Recent(ctx, limit)
    if err != nil {
        return nil, err
    }
    scans := make([]api.ScanRecord, 0, len(results))
    for _, res := range results {
        scans = append(scans, toRecord(res))
    }
    return api.ListRecentScans200JSONResponse{Success: true, Scans: scans, Count: len(scans)}, nil
}

func (s *Server) FetchScan(ctx context.Context, req api.FetchScanRequestObject) (api.FetchScanResponseObject, error) {
    look, err := s.query.FetchResult(ctx, req.Pin)
    if err != nil {
        return nil, err
    }
    switch look.Outcome {
    case domain.FetchFound:
        return api.FetchScan200JSONResponse{Success: true, Scan: toRecord(*look.Result)}, nil
    case domain.FetchPending:
        return api.FetchScan202JSONResponse{
            Success: true,
            Pin:     req.Pin,
            Status:  "pending",
            Message: "No scan results for this PIN yet. The scan may still be in progress.",
        }, nil
    case domain.FetchExpired:
        return api.FetchScan410JSONResponse(errorBody("token_expired", "PIN expired before a scan was uploaded")), nil
    default:
        return api.FetchScan404JSONResponse(errorBody("not_found", "no scan for this PIN")), nil
    }
}

func toRecord(res domain.ScanResult) api.ScanRecord {
    rec := api.ScanRecord{
        Id:         res.ID,
        Pin:        res.PinCode,
        ReceivedAt: res.ReceivedAt.UTC(),
        Results:    res.RawFindings,
        RiskScore:  res.RiskScore,
        RiskLevel:  api.RiskLevel(res.RiskTier),
        Linked:     res.Linked,
    }
    if res.Hostname != "" {
        rec.Hostname = &res.Hostname
    }
    if res.OS != "" {
        rec.Os = &res.OS
    }
    if res.SourceAddr != "" {
        rec.SourceAddr = &res.SourceAddr
    }
    return rec
}

// normalizePin accepts the PIN as a JSON string or a whole JSON number.
func normalizePin(v interface{}) (string, error) {
    switch pin := v.(type) {
    case string:
        return strings.TrimSpace(pin), nil
    case float64:
        if pin < 0 || pin != math.Trunc(pin) || math.IsInf(pin, 0) {
            return "", fmt.Errorf("%w: pin must be six digits", domain.ErrInvalidInput)
        }
        return strconv.FormatFloat(pin, 'f', -1, 64), nil
    case nil:
        return "", fmt.Errorf("%w: pin is required", domain.ErrInvalidInput)
    default:
        return "", fmt.Errorf("%w: pin must be a string or number", domain.ErrInvalidInput)
    }
}
