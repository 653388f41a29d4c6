package steps

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/systemstart/deploy-sequencer/pkg/api"
	"github.com/systemstart/deploy-sequencer/pkg/sequencer"
)

type reportData struct {
	api.RunContext
	Value string
}

// newReport looks up a field of a named resource, e.g. the host of a route.
func newReport(cfg *api.ReportConfig, env Env) (*sequencer.Report, error) {
	report := &sequencer.Report{
		Name: cfg.Name,
		Lookup: func(ctx context.Context, rc api.RunContext) (string, error) {
			return env.Cluster.GetField(ctx, rc.Namespace, cfg.Kind, cfg.Resource, cfg.Field)
		},
	}

	if cfg.Format == "" {
		return report, nil
	}

	tmpl, err := template.New("report").Funcs(sprig.TxtFuncMap()).Parse(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("parsing report format: %w", err)
	}

	report.Format = func(rc api.RunContext, value string) (string, error) {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, reportData{RunContext: rc, Value: value}); err != nil {
			return "", fmt.Errorf("executing report format: %w", err)
		}
		return strings.TrimSpace(buf.String()), nil
	}

	return report, nil
}
