package steps

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/systemstart/deploy-sequencer/pkg/api"
	"github.com/systemstart/deploy-sequencer/pkg/command"
	"github.com/systemstart/deploy-sequencer/pkg/sequencer"
)

// newCommandAction runs an arbitrary command. Each argument is a template
// rendered against the run context, e.g. "{{ .Image }}" or
// "{{ .Namespace | upper }}".
func newCommandAction(name string, cfg *api.CommandConfig, env Env) (sequencer.Action, error) {
	templates := make([]*template.Template, len(cfg.Args))
	for i, arg := range cfg.Args {
		tmpl, err := template.New(fmt.Sprintf("%s[%d]", name, i)).
			Funcs(sprig.TxtFuncMap()).
			Option("missingkey=error").
			Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("parsing argument %d: %w", i, err)
		}
		templates[i] = tmpl
	}

	return func(ctx context.Context, rc api.RunContext) (*command.Result, error) {
		args := make([]string, len(templates))
		for i, tmpl := range templates {
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, rc); err != nil {
				return nil, fmt.Errorf("rendering argument %d: %w", i, err)
			}
			args[i] = buf.String()
		}

		slog.Info("running command", "step", name, "command", command.Line(cfg.Name, args...))
		return env.Runner.Run(ctx, rc.WorkDir, cfg.Name, args...)
	}, nil
}
