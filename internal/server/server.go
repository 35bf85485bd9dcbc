// Package server exposes the square-root calculator over HTTP: a JSON
// computation endpoint mirroring the console report, a health probe and
// Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rputra/rootcalc/internal/cli"
	"github.com/rputra/rootcalc/internal/config"
	apperrors "github.com/rputra/rootcalc/internal/errors"
	"github.com/rputra/rootcalc/internal/format"
	"github.com/rputra/rootcalc/internal/logging"
	"github.com/rputra/rootcalc/internal/orchestration"
	"github.com/rputra/rootcalc/internal/sqrt"
)

const shutdownGrace = 5 * time.Second

// Server is the HTTP API instance.
type Server struct {
	addr     string
	factory  sqrt.EngineFactory
	logger   logging.Logger
	metrics  *Metrics
	security SecurityConfig
	tracer   trace.Tracer
}

// New creates a Server with the default security limits and a fresh metric
// set.
//
// Parameters:
//   - addr: The listen address (e.g. ":8080").
//   - factory: The engine factory computations are served from.
//   - logger: The structured request logger.
//
// Returns:
//   - *Server: The configured server; call ListenAndServe to start it.
func New(addr string, factory sqrt.EngineFactory, logger logging.Logger) *Server {
	return &Server{
		addr:     addr,
		factory:  factory,
		logger:   logger,
		metrics:  NewMetrics(),
		security: DefaultSecurityConfig(),
		tracer:   otel.Tracer("rootcalc/server"),
	}
}

// Handler builds the route table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sqrt", s.wrap(s.handleSqrt))
	mux.HandleFunc("/health", s.wrap(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrap(s.metrics.WritePrometheus))
	return mux
}

// wrap applies the shared middleware: security headers, metrics tracking and
// request logging, outermost first.
func (s *Server) wrap(handler http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.security, s.metricsMiddleware(s.logMiddleware(handler)))
}

// logMiddleware emits one structured log line per request.
func (s *Server) logMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.logger.Info("request handled",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.String("elapsed", format.ExecutionDuration(time.Since(start))),
		)
	}
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully within a bounded grace period.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	s.logger.Info("server listening", logging.String("addr", s.addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("server stopped")
		return nil
	}
}

// handleHealth answers liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// sqrtRequest is the JSON body of POST /api/sqrt.
type sqrtRequest struct {
	Number            string `json:"number"`
	PrecDigits        uint   `json:"prec_digits"`
	Iterations        uint   `json:"iterations"`
	Method            string `json:"method"`
	InitMode          string `json:"init_mode"`
	InitValue         string `json:"init_value"`
	IncludeIterations bool   `json:"include_iterations"`
	SaveCSV           bool   `json:"save_csv"`
}

// iterationRow is one entry of the optional per-iterate array.
type iterationRow struct {
	Iteration int    `json:"iteration"`
	Value     string `json:"value"`
	AbsError  string `json:"abs_error"`
	RelError  string `json:"rel_error"`
}

// sqrtResponse mirrors the console report, with all values rendered at the
// requested digit count.
type sqrtResponse struct {
	Number       string         `json:"number"`
	PrecDigits   uint           `json:"prec_digits"`
	Bits         uint           `json:"bits"`
	Method       string         `json:"method"`
	Iterations   uint           `json:"iterations"`
	InitialGuess string         `json:"initial_guess"`
	ElapsedNs    int64          `json:"elapsed_ns"`
	Reference    string         `json:"reference"`
	LibrarySqrt  string         `json:"library_sqrt"`
	Final        string         `json:"final"`
	AbsError     string         `json:"abs_error"`
	RelError     string         `json:"rel_error"`
	Iterates     []iterationRow `json:"iterates,omitempty"`
}

// handleSqrt serves POST /api/sqrt.
func (s *Server) handleSqrt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := s.decodeSqrtRequest(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, err := s.compute(r.Context(), req)
	if err != nil {
		s.logger.Warn("computation rejected", logging.Err(err))
		status := http.StatusBadRequest
		if apperrors.IsContextError(err) {
			status = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), status)
		return
	}

	if req.SaveCSV {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="iterations.csv"`)
		if err := cli.RenderIterationsCSV(w, rep); err != nil {
			s.logger.Error("csv rendering failed", logging.Err(err))
		}
		return
	}

	resp := sqrtResponse{
		Number:       rep.Number,
		PrecDigits:   rep.Digits,
		Bits:         rep.Bits,
		Method:       rep.Result.Key,
		Iterations:   uint(len(rep.Result.Sequence) - 1),
		InitialGuess: format.Scientific(rep.Result.InitialGuess, rep.Digits),
		ElapsedNs:    rep.Result.Duration.Nanoseconds(),
		Reference:    format.Scientific(rep.Reference, rep.Digits),
		LibrarySqrt:  format.Scientific(rep.Trusted, rep.Digits),
		Final:        format.Scientific(rep.Result.Approx, rep.Digits),
		AbsError:     format.Scientific(rep.Analysis.Final.Abs, rep.Digits),
		RelError:     format.Scientific(rep.Analysis.Final.Rel, rep.Digits),
	}
	if req.IncludeIterations {
		resp.Iterates = make([]iterationRow, len(rep.Result.Roots))
		for i, root := range rep.Result.Roots {
			rec := rep.Analysis.Records[i]
			resp.Iterates[i] = iterationRow{
				Iteration: i,
				Value:     format.Scientific(root, rep.Digits),
				AbsError:  format.Scientific(rec.Abs, rep.Digits),
				RelError:  format.Scientific(rec.Rel, rep.Digits),
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("response encoding failed", logging.Err(err))
	}
}

// decodeSqrtRequest parses and validates the request body against the
// security limits, applying defaults and the iteration clamp.
func (s *Server) decodeSqrtRequest(w http.ResponseWriter, r *http.Request) (sqrtRequest, error) {
	var req sqrtRequest
	r.Body = http.MaxBytesReader(w, r.Body, s.security.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("malformed request body: %w", err)
	}

	if req.Number == "" {
		return req, errors.New("number is required")
	}
	if len(req.Number) > s.security.MaxNumberLength {
		return req, fmt.Errorf("number exceeds %d characters", s.security.MaxNumberLength)
	}
	if req.PrecDigits == 0 {
		req.PrecDigits = sqrt.DefaultDigits
	}
	if req.PrecDigits < s.security.MinPrecDigits || req.PrecDigits > s.security.MaxPrecDigits {
		return req, fmt.Errorf("prec_digits must be between %d and %d",
			s.security.MinPrecDigits, s.security.MaxPrecDigits)
	}
	if req.Iterations > s.security.MaxIterations {
		req.Iterations = s.security.MaxIterations
	}
	if req.Method == "" {
		req.Method = sqrt.MethodHeron
	}
	switch req.InitMode {
	case "":
		req.InitMode = config.InitModeAuto
	case config.InitModeAuto:
	case config.InitModeManual:
		if req.InitValue == "" {
			return req, errors.New("init_value is required when init_mode is manual")
		}
	default:
		return req, fmt.Errorf("init_mode must be %q or %q", config.InitModeAuto, config.InitModeManual)
	}
	return req, nil
}

// compute runs a single-engine computation for the API, traced per request.
func (s *Server) compute(ctx context.Context, req sqrtRequest) (cli.Report, error) {
	ctx, span := s.tracer.Start(ctx, "sqrt.compute", trace.WithAttributes(
		attribute.String("method", req.Method),
		attribute.Int("prec_digits", int(req.PrecDigits)),
		attribute.Int("iterations", int(req.Iterations)),
	))
	defer span.End()

	rep, err := s.computeReport(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return cli.Report{}, err
	}
	span.SetStatus(codes.Ok, "")
	return rep, nil
}

func (s *Server) computeReport(ctx context.Context, req sqrtRequest) (cli.Report, error) {
	engine, err := s.factory.Get(req.Method)
	if err != nil {
		return cli.Report{}, err
	}

	bits := sqrt.DigitsToBits(req.PrecDigits)
	a, err := sqrt.ParseDecimal(req.Number, bits)
	if err != nil {
		return cli.Report{}, err
	}
	if a.Sign() < 0 {
		return cli.Report{}, apperrors.NewDomainError("sqrt", "negative radicand %s", req.Number)
	}

	engines := []sqrt.Engine{engine}
	seeds, err := orchestration.Seeds(engines, a, req.InitMode, req.InitValue)
	if err != nil {
		return cli.Report{}, err
	}

	reference, err := sqrt.Reference(req.Number, bits)
	if err != nil {
		return cli.Report{}, err
	}

	results := orchestration.ExecuteEngines(ctx, engines, seeds, a, req.Iterations, orchestration.NullProgressReporter{}, nil)
	result := results[0]
	if result.Err != nil {
		return cli.Report{}, result.Err
	}

	return cli.Report{
		Number:    req.Number,
		Digits:    req.PrecDigits,
		Bits:      bits,
		Result:    result,
		Analysis:  orchestration.Analyze(result, reference),
		Reference: reference,
		Trusted:   sqrt.TrustedSqrt(a),
	}, nil
}
