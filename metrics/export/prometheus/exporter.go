package prometheus

import (
	"net/http"
	"strconv"
	"strings"

	authflow "github.com/inflowhq/authflow"
)

type metricsSource interface {
	MetricsSnapshot() authflow.MetricsSnapshot
}

// CounterDef defines a public type used by authflow APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   authflow.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication engine.
var CounterDefs = []CounterDef{
	{ID: authflow.MetricRegisterSuccess, Name: "authflow_register_success_total", Help: "Successful account registrations."},
	{ID: authflow.MetricRegisterRejected, Name: "authflow_register_rejected_total", Help: "Registration attempts rejected by validation or duplicate email."},
	{ID: authflow.MetricLoginSuccess, Name: "authflow_login_success_total", Help: "Successful login attempts."},
	{ID: authflow.MetricLoginFailure, Name: "authflow_login_failure_total", Help: "Failed login attempts."},
	{ID: authflow.MetricResetRequest, Name: "authflow_reset_request_total", Help: "Password reset codes issued."},
	{ID: authflow.MetricResetRequestRejected, Name: "authflow_reset_request_rejected_total", Help: "Reset requests for unknown emails."},
	{ID: authflow.MetricResetVerifySuccess, Name: "authflow_reset_verify_success_total", Help: "Successful reset code verifications."},
	{ID: authflow.MetricResetVerifyFailure, Name: "authflow_reset_verify_failure_total", Help: "Failed reset code verifications."},
	{ID: authflow.MetricResetConfirmSuccess, Name: "authflow_reset_confirm_success_total", Help: "Successful password reset confirmations."},
	{ID: authflow.MetricResetConfirmFailure, Name: "authflow_reset_confirm_failure_total", Help: "Failed password reset confirmations."},
	{ID: authflow.MetricNotifyFailure, Name: "authflow_notify_failure_total", Help: "Reset notifications that failed after the code was persisted."},
}

// Exporter renders authflow metrics in Prometheus text exposition format.
//
// Exporter instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Exporter struct {
	source metricsSource
}

// NewExporter creates an exporter that reads from the given [authflow.Engine].
//
// NewExporter does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewExporter(engine *authflow.Engine) *Exporter {
	return &Exporter{source: engine}
}

// NewExporterFromSource creates an exporter from a custom snapshot source.
//
// NewExporterFromSource does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewExporterFromSource(source metricsSource) *Exporter {
	return &Exporter{source: source}
}

// Handler returns an http.Handler that serves the current metrics.
//
// Handler does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Exporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(e.Render()))
	})
}

// Render writes the current metrics in Prometheus text exposition format.
//
// Render does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Exporter) Render() string {
	if e == nil || e.source == nil {
		return ""
	}

	snapshot := e.source.MetricsSnapshot()
	if len(snapshot.Counters) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(4096)

	for _, def := range CounterDefs {
		writeCounter(&b, def.Name, def.Help, snapshot.Counters[def.ID])
	}

	return b.String()
}

func writeCounter(b *strings.Builder, name, help string, value uint64) {
	b.WriteString("# HELP ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(escapeHelp(help))
	b.WriteByte('\n')
	b.WriteString("# TYPE ")
	b.WriteString(name)
	b.WriteString(" counter\n")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(strconv.FormatUint(value, 10))
	b.WriteByte('\n')
}

func escapeHelp(help string) string {
	help = strings.ReplaceAll(help, "\\", "\\\\")
	help = strings.ReplaceAll(help, "\n", "\\n")
	return help
}
