package steps

import (
	"fmt"

	"github.com/systemstart/deploy-sequencer/pkg/api"
	"github.com/systemstart/deploy-sequencer/pkg/sequencer"
)

// NewStep creates a sequencer step from a StepConfig.
func NewStep(cfg api.StepConfig, env Env) (sequencer.Step, error) {
	var action sequencer.Action
	switch cfg.Type {
	case api.StepTypeBuild:
		action = newBuildAction(cfg.Build, env)
	case api.StepTypeApply:
		action = newApplyAction(cfg.Name, cfg.Apply, env)
	case api.StepTypeCommand:
		a, err := newCommandAction(cfg.Name, cfg.Command, env)
		if err != nil {
			return sequencer.Step{}, err
		}
		action = a
	default:
		return sequencer.Step{}, fmt.Errorf("unknown step type: %s", cfg.Type)
	}

	step := sequencer.Step{
		Name:      cfg.Name,
		Action:    action,
		Retryable: cfg.Retryable,
	}
	if cfg.Wait != nil {
		step.Readiness = newReadiness(cfg.Wait, env)
	}
	return step, nil
}

// NewSequence builds the full sequence for a plan.
func NewSequence(p *api.Plan, env Env) (sequencer.Sequence, error) {
	seq := sequencer.Sequence{Steps: make([]sequencer.Step, 0, len(p.Steps))}

	for _, cfg := range p.Steps {
		step, err := NewStep(cfg, env)
		if err != nil {
			return sequencer.Sequence{}, fmt.Errorf("creating step %q: %w", cfg.Name, err)
		}
		seq.Steps = append(seq.Steps, step)
	}

	if p.Report != nil {
		report, err := newReport(p.Report, env)
		if err != nil {
			return sequencer.Sequence{}, fmt.Errorf("creating report: %w", err)
		}
		seq.Report = report
	}

	return seq, nil
}
