package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rputra/rootcalc/internal/logging"
	"github.com/rputra/rootcalc/internal/sqrt"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
	if m.registry == nil {
		t.Error("metrics registry not initialized")
	}
	if m.handler == nil {
		t.Error("metrics HTTP handler not initialized")
	}
}

func TestMetrics_ActiveRequests(t *testing.T) {
	m := NewMetrics()

	t.Run("Increment does not panic", func(t *testing.T) {
		m.IncrementActiveRequests()
		m.IncrementActiveRequests()
	})

	t.Run("Decrement does not panic", func(t *testing.T) {
		m.DecrementActiveRequests()
		m.DecrementActiveRequests()
	})
}

func TestMetrics_ObserveRequest(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest("/api/sqrt", http.StatusOK, 42*time.Millisecond)
	m.ObserveRequest("/api/sqrt", http.StatusBadRequest, time.Millisecond)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	m.WritePrometheus(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `rootcalc_requests_total{path="/api/sqrt",status="200"} 1`) {
		t.Errorf("counter for 200 not exported:\n%s", body)
	}
	if !strings.Contains(body, `rootcalc_requests_total{path="/api/sqrt",status="400"} 1`) {
		t.Errorf("counter for 400 not exported:\n%s", body)
	}
}

func TestMetrics_WritePrometheus(t *testing.T) {
	m := NewMetrics()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	m.WritePrometheus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	for _, metric := range []string{"rootcalc_active_requests", "go_"} {
		if !strings.Contains(body, metric) {
			t.Errorf("exposition missing %q", metric)
		}
	}
}

func TestMetricsMiddleware(t *testing.T) {
	s := New(":0", sqrt.NewDefaultFactory(), logging.NewLogger(io.Discard, "server"))

	t.Run("Next handler is called", func(t *testing.T) {
		called := false
		handler := s.metricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusTeapot)
		})

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

		if !called {
			t.Error("wrapped handler was not invoked")
		}
		if rec.Code != http.StatusTeapot {
			t.Errorf("status = %d, want 418", rec.Code)
		}
	})

	t.Run("Metrics are tracked", func(t *testing.T) {
		handler := s.metricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tracked", http.NoBody))

		rec := httptest.NewRecorder()
		s.metrics.WritePrometheus(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
		if !strings.Contains(rec.Body.String(), `path="/tracked"`) {
			t.Error("request path not recorded in metrics")
		}
	})
}
