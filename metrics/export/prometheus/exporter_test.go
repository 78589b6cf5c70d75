package prometheus

import (
	"net/http/httptest"
	"strings"
	"testing"

	admingate "github.com/kovrae/admingate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type stubSource struct {
	snap admingate.MetricsSnapshot
}

func (s stubSource) MetricsSnapshot() admingate.MetricsSnapshot { return s.snap }

func scrape(t *testing.T, source metricsSource) string {
	t.Helper()
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewCollectorFromSource(source)); err != nil {
		t.Fatalf("register collector: %v", err)
	}
	rec := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	return rec.Body.String()
}

func TestCollectorExposesEveryCounter(t *testing.T) {
	source := stubSource{snap: admingate.MetricsSnapshot{
		Counters: map[admingate.MetricID]uint64{
			admingate.MetricLoginSuccess:       3,
			admingate.MetricGuardRedirectLogin: 7,
			admingate.MetricSelfHealLogout:     1,
		},
	}}

	body := scrape(t, source)

	for _, want := range []string{
		"admingate_login_success_total 3",
		"admingate_guard_redirect_login_total 7",
		"admingate_self_heal_logout_total 1",
		// Untouched counters still appear, at zero.
		"admingate_logout_total 0",
		"admingate_storage_failure_total 0",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("scrape output missing %q:\n%s", want, body)
		}
	}
}

func TestCollectorCoversAllDefinedMetrics(t *testing.T) {
	body := scrape(t, stubSource{snap: admingate.MetricsSnapshot{Counters: map[admingate.MetricID]uint64{}}})

	for _, def := range CounterDefs {
		if !strings.Contains(body, def.Name) {
			t.Fatalf("metric %s missing from scrape output", def.Name)
		}
	}
}

func TestCounterDefNamesUniqueAndWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range CounterDefs {
		if seen[def.Name] {
			t.Fatalf("duplicate metric name %s", def.Name)
		}
		seen[def.Name] = true
		if !strings.HasPrefix(def.Name, "admingate_") || !strings.HasSuffix(def.Name, "_total") {
			t.Fatalf("metric name %s violates naming convention", def.Name)
		}
		if def.Help == "" {
			t.Fatalf("metric %s has no help text", def.Name)
		}
	}
}
