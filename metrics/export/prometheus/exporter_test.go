package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authflow "github.com/inflowhq/authflow"
)

type fakeSource struct {
	snapshot authflow.MetricsSnapshot
}

func (f fakeSource) MetricsSnapshot() authflow.MetricsSnapshot { return f.snapshot }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: authflow.MetricsSnapshot{
			Counters: map[authflow.MetricID]uint64{},
		},
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderIncludesAllCounters(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: authflow.MetricsSnapshot{
			Counters: map[authflow.MetricID]uint64{
				authflow.MetricLoginSuccess:  7,
				authflow.MetricNotifyFailure: 2,
			},
		},
	})

	out := exp.Render()
	if !strings.Contains(out, "authflow_login_success_total 7") {
		t.Fatalf("expected login_success counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "authflow_notify_failure_total 2") {
		t.Fatalf("expected notify_failure counter in output, got:\n%s", out)
	}
	// Zero-valued counters are still rendered so scrapes see a stable series set.
	if !strings.Contains(out, "authflow_register_success_total 0") {
		t.Fatalf("expected zero-valued counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "# TYPE authflow_login_success_total counter") {
		t.Fatalf("expected TYPE line in output, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: authflow.MetricsSnapshot{
			Counters: map[authflow.MetricID]uint64{authflow.MetricLoginSuccess: 1},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func BenchmarkRender(b *testing.B) {
	exp := NewExporterFromSource(fakeSource{
		snapshot: authflow.MetricsSnapshot{
			Counters: map[authflow.MetricID]uint64{
				authflow.MetricRegisterSuccess: 1000,
				authflow.MetricLoginSuccess:    900,
				authflow.MetricLoginFailure:    40,
				authflow.MetricResetRequest:    25,
			},
		},
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = exp.Render()
	}
}
