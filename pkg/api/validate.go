package api

import (
	"fmt"
	"strings"
)

var validStepTypes = map[string]bool{
	StepTypeBuild:   true,
	StepTypeApply:   true,
	StepTypeCommand: true,
}

var validClusterCLIs = map[string]bool{
	CLIOpenShift:  true,
	CLIKubernetes: true,
}

// Validate checks the plan configuration for errors.
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("plan has no steps")
	}

	if p.ClusterCLI != "" && !validClusterCLIs[p.ClusterCLI] {
		return fmt.Errorf("clusterCLI %q is not supported (valid: %s, %s)", p.ClusterCLI, CLIOpenShift, CLIKubernetes)
	}

	names := make(map[string]int)

	for i, step := range p.Steps {
		if step.Name == "" {
			return fmt.Errorf("step %d: name is required", i)
		}
		if prev, exists := names[step.Name]; exists {
			return fmt.Errorf("step %d: duplicate step name %q (first defined at step %d)", i, step.Name, prev)
		}
		names[step.Name] = i

		if !validStepTypes[step.Type] {
			return fmt.Errorf("step %q: unknown type %q", step.Name, step.Type)
		}

		if err := validateStepConfig(step); err != nil {
			return fmt.Errorf("step %q: %w", step.Name, err)
		}
	}

	if p.Report != nil {
		if err := validateReportConfig(p.Report); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}

	return nil
}

func validateStepConfig(step StepConfig) error {
	switch step.Type {
	case StepTypeApply:
		if err := validateApplyConfig(step); err != nil {
			return err
		}
	case StepTypeCommand:
		if step.Command == nil {
			return fmt.Errorf("command config is required")
		}
		if strings.TrimSpace(step.Command.Name) == "" {
			return fmt.Errorf("command.name is required")
		}
	}

	if step.Wait != nil {
		return validateWaitConfig(step.Wait)
	}
	return nil
}

func validateApplyConfig(step StepConfig) error {
	if step.Apply == nil {
		return fmt.Errorf("apply config is required")
	}
	if step.Apply.File == "" && step.Apply.Glob == "" {
		return fmt.Errorf("apply.file or apply.glob is required")
	}
	if step.Apply.File != "" && step.Apply.Glob != "" {
		return fmt.Errorf("apply.file and apply.glob are mutually exclusive")
	}
	return nil
}

func validateWaitConfig(w *WaitConfig) error {
	if w.Selector == "" {
		return fmt.Errorf("wait.selector is required")
	}
	if w.Count < 1 {
		return fmt.Errorf("wait.count must be at least 1, got %d", w.Count)
	}
	if w.Timeout <= 0 {
		return fmt.Errorf("wait.timeout must be positive, got %s", w.Timeout)
	}
	if w.Interval <= 0 {
		return fmt.Errorf("wait.interval must be positive, got %s", w.Interval)
	}
	return nil
}

func validateReportConfig(r *ReportConfig) error {
	if r.Kind == "" {
		return fmt.Errorf("report.kind is required")
	}
	if r.Resource == "" {
		return fmt.Errorf("report.resource is required")
	}
	if r.Field == "" {
		return fmt.Errorf("report.field is required")
	}
	return nil
}
