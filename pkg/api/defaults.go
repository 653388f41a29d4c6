package api

import "os"

const (
	EnvRegistry   = "DEPLOY_REGISTRY"
	EnvImageName  = "DEPLOY_IMAGE_NAME"
	EnvPlatform   = "DEPLOY_PLATFORM"
	EnvClusterCLI = "DEPLOY_CLUSTER_CLI"
	EnvNamespace  = "DEPLOY_NAMESPACE"
)

// DefaultPlan returns the built-in sequence: build the application image,
// then apply the MongoDB and application manifests in dependency order.
func DefaultPlan() *Plan {
	return &Plan{
		Steps: []StepConfig{
			{Name: "Build and push image", Type: StepTypeBuild, Build: &BuildConfig{}},
			{Name: "Apply ConfigMap", Type: StepTypeApply, Apply: &ApplyConfig{File: "configmap.yaml"}},
			{Name: "Apply Secret", Type: StepTypeApply, Apply: &ApplyConfig{File: "secret.yaml"}},
			{Name: "Apply MongoDB volume claim", Type: StepTypeApply, Apply: &ApplyConfig{File: "mongo-pvc.yaml"}},
			{
				Name:  "Deploy MongoDB",
				Type:  StepTypeApply,
				Apply: &ApplyConfig{File: "mongo-deployment.yaml"},
				Wait:  &WaitConfig{Selector: "app=mongodb", Count: 1},
			},
			{Name: "Apply MongoDB service", Type: StepTypeApply, Apply: &ApplyConfig{File: "mongo-service.yaml"}},
			{
				Name:  "Deploy application",
				Type:  StepTypeApply,
				Apply: &ApplyConfig{File: "app-deployment.yaml", Template: true},
				Wait:  &WaitConfig{Selector: "app=fastapi-app", Count: 1},
			},
			{Name: "Apply application service", Type: StepTypeApply, Apply: &ApplyConfig{File: "app-service.yaml"}},
			{Name: "Expose application route", Type: StepTypeApply, Apply: &ApplyConfig{File: "route.yaml"}},
		},
		Report: &ReportConfig{
			Name:     "Resolve application URL",
			Kind:     "route",
			Resource: "fastapi-app",
			Field:    "spec.host",
			Format:   "http://{{ .Value }}",
		},
	}
}

// ApplyDefaults fills every unset top-level, build and wait field.
func (p *Plan) ApplyDefaults() {
	setDefault(&p.Registry, DefaultRegistry)
	setDefault(&p.ImageName, DefaultImageName)
	setDefault(&p.Platform, DefaultPlatform)
	setDefault(&p.BuildTool, DefaultBuildTool)
	setDefault(&p.ClusterCLI, DefaultClusterCLI)
	setDefault(&p.ManifestDir, DefaultManifestDir)
	setDefault(&p.Placeholder, DefaultPlaceholder)

	for i := range p.Steps {
		if p.Steps[i].Type == StepTypeBuild && p.Steps[i].Build == nil {
			p.Steps[i].Build = &BuildConfig{}
		}

		w := p.Steps[i].Wait
		if w == nil {
			continue
		}
		setDefault(&w.Kind, DefaultWaitKind)
		setDefault(&w.Condition, DefaultWaitCondition)
		if w.Count == 0 {
			w.Count = 1
		}
		if w.Timeout == 0 {
			w.Timeout = DefaultWaitTimeout
		}
		if w.Interval == 0 {
			w.Interval = DefaultWaitInterval
		}
	}
}

// ApplyEnv overrides plan fields from DEPLOY_* environment variables.
// getenv is usually os.Getenv.
func (p *Plan) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	overrides := []struct {
		key    string
		target *string
	}{
		{EnvRegistry, &p.Registry},
		{EnvImageName, &p.ImageName},
		{EnvPlatform, &p.Platform},
		{EnvClusterCLI, &p.ClusterCLI},
		{EnvNamespace, &p.Namespace},
	}
	for _, o := range overrides {
		if v := getenv(o.key); v != "" {
			*o.target = v
		}
	}
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
