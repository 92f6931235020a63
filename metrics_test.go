package authflow

import (
	"context"
	"sync"
	"testing"
)

func TestMetricsCountBusinessOutcomes(t *testing.T) {
	store := newMockStore()
	notifier := &stubNotifier{}
	codes := &stubCodeSource{code: "654321"}
	engine := newTestEngine(t, store, notifier, func(b *Builder) { b.WithCodeSource(codes) })

	ctx := context.Background()

	mustRegister(t, engine, "Ana", "ana@x.com", "0900000000", "Abc12345")
	if _, err := engine.Register(ctx, RegisterRequest{Email: "bad", Password: "Abc12345"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := engine.Login(ctx, "ana@x.com", "Abc12345"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := engine.Login(ctx, "ana@x.com", "wrong"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := engine.ForgotPassword(ctx, "ana@x.com"); err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}
	if _, err := engine.ForgotPassword(ctx, "nobody@x.com"); err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}
	if _, err := engine.VerifyResetCode(ctx, "ana@x.com", "654321"); err != nil {
		t.Fatalf("VerifyResetCode failed: %v", err)
	}
	if _, err := engine.VerifyResetCode(ctx, "ana@x.com", "000000"); err != nil {
		t.Fatalf("VerifyResetCode failed: %v", err)
	}
	if _, err := engine.ResetPassword(ctx, "ana@x.com", "654321", "NewPass99"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	snap := engine.MetricsSnapshot()
	want := map[MetricID]uint64{
		MetricRegisterSuccess:      1,
		MetricRegisterRejected:     1,
		MetricLoginSuccess:         1,
		MetricLoginFailure:         1,
		MetricResetRequest:         1,
		MetricResetRequestRejected: 1,
		MetricResetVerifySuccess:   1,
		MetricResetVerifyFailure:   1,
		MetricResetConfirmSuccess:  1,
		MetricResetConfirmFailure:  0,
		MetricNotifyFailure:        0,
	}
	for id, n := range want {
		if got := snap.Counters[id]; got != n {
			t.Errorf("counter %d = %d, want %d", id, got, n)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	store := newMockStore()
	engine := newTestEngine(t, store, &stubNotifier{}, func(b *Builder) {
		b.WithMetricsEnabled(false)
	})

	mustRegister(t, engine, "Ana", "ana@x.com", "0900000000", "Abc12345")

	snap := engine.MetricsSnapshot()
	if len(snap.Counters) != 0 {
		t.Fatalf("expected an empty snapshot with metrics disabled, got %v", snap.Counters)
	}
	if engine.metrics.Value(MetricRegisterSuccess) != 0 {
		t.Fatal("expected no counting with metrics disabled")
	}
}

func TestMetricsConcurrentInc(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const workers, perWorker = 8, 1000
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.Inc(MetricLoginSuccess)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricLoginSuccess); got != workers*perWorker {
		t.Fatalf("Value = %d, want %d", got, workers*perWorker)
	}
}

func TestMetricsSnapshotIsDetached(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricLoginSuccess)

	snap := m.Snapshot()
	m.Inc(MetricLoginSuccess)

	if snap.Counters[MetricLoginSuccess] != 1 {
		t.Fatalf("snapshot mutated after capture: %v", snap.Counters)
	}
	if m.Value(MetricLoginSuccess) != 2 {
		t.Fatalf("Value = %d, want 2", m.Value(MetricLoginSuccess))
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.Inc(MetricLoginSuccess)
	if m.Enabled() {
		t.Fatal("nil metrics must report disabled")
	}
	if got := m.Snapshot(); len(got.Counters) != 0 {
		t.Fatalf("expected empty snapshot from nil metrics, got %v", got.Counters)
	}
}
