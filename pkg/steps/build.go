package steps

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/systemstart/deploy-sequencer/pkg/api"
	"github.com/systemstart/deploy-sequencer/pkg/command"
	"github.com/systemstart/deploy-sequencer/pkg/sequencer"
)

// newBuildAction builds the image for the target platform without cache and
// pushes it under the run's image reference.
func newBuildAction(cfg *api.BuildConfig, env Env) sequencer.Action {
	tool := env.BuildTool
	if tool == "" {
		tool = api.DefaultBuildTool
	}

	return func(ctx context.Context, rc api.RunContext) (*command.Result, error) {
		buildContext := rc.WorkDir
		if cfg != nil && cfg.Context != "" {
			buildContext = resolvePath(rc.WorkDir, cfg.Context)
		}

		args := []string{
			"buildx", "build",
			"--platform", rc.Platform,
			"--no-cache",
			"-t", rc.Image,
		}
		if cfg != nil && cfg.Dockerfile != "" {
			args = append(args, "-f", resolvePath(rc.WorkDir, cfg.Dockerfile))
		}
		args = append(args, "--push", buildContext)

		slog.Info("building image", "image", rc.Image, "platform", rc.Platform, "context", buildContext)
		return env.Runner.Run(ctx, rc.WorkDir, tool, args...)
	}
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
