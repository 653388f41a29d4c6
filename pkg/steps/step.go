package steps

import (
	"github.com/systemstart/deploy-sequencer/pkg/api"
	"github.com/systemstart/deploy-sequencer/pkg/cluster"
	"github.com/systemstart/deploy-sequencer/pkg/command"
)

// Env bundles the collaborators step actions are built with.
type Env struct {
	Runner    command.Runner
	Cluster   *cluster.Client
	BuildTool string
}

// NewEnv creates an Env for plan p.
func NewEnv(runner command.Runner, p *api.Plan) Env {
	return Env{
		Runner:    runner,
		Cluster:   cluster.NewClient(runner, p.ClusterCLI, p.Dir),
		BuildTool: p.BuildTool,
	}
}
