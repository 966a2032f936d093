package checkout

import (
	"testing"
	"time"

	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/domain/plans"
	"github.com/juanlopezjs/waggi-plan-purchase-flow/internal/platform/sim"
)

func TestWeightedProvider_FreePlan_AlwaysSuccess(t *testing.T) {
	w := NewWeightedProvider(sim.NewRand(1))
	free := plans.Plan{ID: "huellito", MonthlyPrice: 0}

	for i := 0; i < 100; i++ {
		outcome, delay := w.Draw(free)
		if outcome != OutcomeSuccess {
			t.Fatalf("free plan draw #%d: expected success, got %s", i, outcome)
		}
		if delay != 1500*time.Millisecond {
			t.Fatalf("free plan delay: expected 1.5s, got %s", delay)
		}
	}
}

func TestWeightedProvider_PaidPlan_Distribution(t *testing.T) {
	w := NewWeightedProvider(sim.NewRand(42))
	paid := plans.Plan{ID: "bigotes", MonthlyPrice: 28700}

	const n = 20000
	counts := map[Outcome]int{}
	for i := 0; i < n; i++ {
		outcome, delay := w.Draw(paid)
		counts[outcome]++
		if delay < 2*time.Second || delay > 5*time.Second {
			t.Fatalf("delay %s out of [2s, 5s]", delay)
		}
	}

	// Con seed fija los conteos son deterministas; las tolerancias
	// cubren cualquier seed razonable.
	checks := []struct {
		outcome Outcome
		want    float64
	}{
		{OutcomeSuccess, 0.70},
		{OutcomePayment, 0.15},
		{OutcomeCancelled, 0.10},
		{OutcomeExpired, 0.05},
	}
	for _, c := range checks {
		got := float64(counts[c.outcome]) / n
		if got < c.want-0.02 || got > c.want+0.02 {
			t.Fatalf("outcome %s: got ratio %.4f, want %.2f ± 0.02", c.outcome, got, c.want)
		}
	}
}

func TestFixedProvider_RespectsFreePlan(t *testing.T) {
	f := FixedProvider{Outcome: OutcomeCancelled}

	if out, _ := f.Draw(plans.Plan{MonthlyPrice: 28700}); out != OutcomeCancelled {
		t.Fatalf("paid plan: expected cancelled, got %s", out)
	}
	if out, _ := f.Draw(plans.Plan{MonthlyPrice: 0}); out != OutcomeSuccess {
		t.Fatalf("free plan: expected success, got %s", out)
	}
}
