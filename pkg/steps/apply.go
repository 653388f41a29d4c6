package steps

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/systemstart/deploy-sequencer/pkg/api"
	"github.com/systemstart/deploy-sequencer/pkg/command"
	"github.com/systemstart/deploy-sequencer/pkg/manifest"
	"github.com/systemstart/deploy-sequencer/pkg/sequencer"
)

// newApplyAction applies one manifest, or every manifest matching a glob in
// lexical order, stopping at the first file the cluster rejects.
func newApplyAction(name string, cfg *api.ApplyConfig, env Env) sequencer.Action {
	return func(ctx context.Context, rc api.RunContext) (*command.Result, error) {
		files, err := manifest.Resolve(rc.ManifestDir, cfg.File, cfg.Glob)
		if err != nil {
			return nil, fmt.Errorf("resolving manifests: %w", err)
		}

		outputs := make([]string, 0, len(files))
		for _, file := range files {
			res, err := applyFile(ctx, name, file, cfg.Template, rc, env)
			if err != nil {
				return nil, err
			}
			if out := res.Output(); out != "" {
				outputs = append(outputs, out)
			}
			if !res.Success() {
				return &command.Result{ExitCode: res.ExitCode, Stdout: strings.Join(outputs, "\n")}, nil
			}
		}

		return &command.Result{Stdout: strings.Join(outputs, "\n")}, nil
	}
}

func applyFile(ctx context.Context, step, file string, template bool, rc api.RunContext, env Env) (*command.Result, error) {
	rel, err := filepath.Rel(rc.WorkDir, file)
	if err != nil {
		rel = file
	}

	resources, err := manifest.Describe(file)
	if err != nil {
		slog.Warn("could not read resources from manifest", "step", step, "file", rel, "error", err)
	}
	slog.Info("applying manifest", "step", step, "file", rel, "resources", resources, "template", template)

	target := file
	if template {
		rendered, cleanup, err := manifest.Render(file, rc.Placeholder, rc.Image)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", rel, err)
		}
		defer cleanup()
		target = rendered
	}

	return env.Cluster.Apply(ctx, rc.Namespace, target)
}
