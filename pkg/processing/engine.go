package processing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/systemstart/deploy-sequencer/pkg/api"
	"github.com/systemstart/deploy-sequencer/pkg/command"
	"github.com/systemstart/deploy-sequencer/pkg/sequencer"
	"github.com/systemstart/deploy-sequencer/pkg/steps"
)

// Deployer runs a plan end to end.
type Deployer struct {
	Runner   command.Runner
	Reporter sequencer.Reporter
	// Now defaults to time.Now.
	Now func() time.Time
}

// Deploy validates args, resolves the run context and executes the plan.
// Argument errors are returned before any external command runs. Every
// returned error has already been printed through the Reporter.
func (d *Deployer) Deploy(ctx context.Context, p *api.Plan, args []string) ([]sequencer.Result, error) {
	identity, err := ParseArgs(args)
	if err != nil {
		d.Reporter.Error("%v", err)
		return nil, err
	}

	env := steps.NewEnv(d.Runner, p)

	seq, err := steps.NewSequence(p, env)
	if err != nil {
		err = fmt.Errorf("%w: %v", sequencer.ErrConfiguration, err)
		d.Reporter.Error("%v", err)
		return nil, err
	}

	now := time.Now
	if d.Now != nil {
		now = d.Now
	}

	rc, err := NewRunContext(ctx, identity, p, d.Runner, env.Cluster, now())
	if err != nil {
		d.Reporter.Error("%v", err)
		return nil, err
	}

	slog.Info("run context resolved",
		"image", rc.Image,
		"namespace", rc.Namespace,
		"manifests", rc.ManifestDir,
		"clusterCLI", env.Cluster.CLI())
	d.Reporter.Success("image %s, project %s", rc.Image, rc.Namespace)

	return sequencer.New(d.Reporter).Run(ctx, seq, rc)
}
