package steps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/systemstart/deploy-sequencer/pkg/api"
	"github.com/systemstart/deploy-sequencer/pkg/sequencer"
)

// newReadiness gates a step on Count resources matching the selector existing
// and all of them reporting the condition. Each poll gives the CLI-side wait
// one interval; the sequencer enforces the overall timeout.
func newReadiness(w *api.WaitConfig, env Env) *sequencer.Readiness {
	desc := fmt.Sprintf("%d %s %s matching %s", w.Count, w.Kind, w.Condition, w.Selector)

	probe := func(ctx context.Context, rc api.RunContext) (bool, string, error) {
		n, err := env.Cluster.Count(ctx, rc.Namespace, w.Kind, w.Selector)
		if err != nil {
			slog.Debug("readiness count failed", "selector", w.Selector, "error", err)
			return false, err.Error(), nil
		}
		if n < w.Count {
			return false, fmt.Sprintf("%d/%d %s matching %s exist", n, w.Count, w.Kind, w.Selector), nil
		}

		res, err := env.Cluster.Wait(ctx, rc.Namespace, w.Kind, w.Condition, w.Selector, w.Interval)
		if err != nil {
			return false, "", err
		}
		if !res.Success() {
			return false, res.Output(), nil
		}

		slog.Info("resources ready", "kind", w.Kind, "selector", w.Selector, "count", n)
		return true, "", nil
	}

	return &sequencer.Readiness{
		Description: desc,
		Timeout:     w.Timeout,
		Interval:    w.Interval,
		Probe:       probe,
	}
}
