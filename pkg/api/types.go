package api

import "time"

const (
	DefaultRegistry    = "docker.io"
	DefaultImageName   = "fastapi-mongo-crud"
	DefaultPlatform    = "linux/amd64"
	DefaultBuildTool   = "docker"
	DefaultClusterCLI  = CLIOpenShift
	DefaultManifestDir = "k8s"
	DefaultPlaceholder = "docker.io/YOUR_DOCKERHUB_USERNAME/fastapi-mongo-crud:latest"
	DefaultPlanFile    = "deploy.yaml"

	DefaultWaitKind      = "pod"
	DefaultWaitCondition = "ready"
	DefaultWaitTimeout   = 5 * time.Minute
	DefaultWaitInterval  = 5 * time.Second

	StepTypeBuild   = "build"
	StepTypeApply   = "apply"
	StepTypeCommand = "command"

	CLIOpenShift  = "oc"
	CLIKubernetes = "kubectl"
)

// Plan is the deploy.yaml configuration format.
type Plan struct {
	Registry    string        `yaml:"registry"`
	ImageName   string        `yaml:"imageName"`
	Platform    string        `yaml:"platform"`
	BuildTool   string        `yaml:"buildTool"`
	ClusterCLI  string        `yaml:"clusterCLI"`
	Namespace   string        `yaml:"namespace"`
	ManifestDir string        `yaml:"manifestDir"`
	Placeholder string        `yaml:"placeholder"`
	Steps       []StepConfig  `yaml:"steps"`
	Report      *ReportConfig `yaml:"report,omitempty"`

	// Set by the loader, not from YAML.
	Dir      string `yaml:"-"`
	FilePath string `yaml:"-"`
}

// StepConfig defines a single step within a plan.
type StepConfig struct {
	Name      string         `yaml:"name"`
	Type      string         `yaml:"type"`
	Retryable bool           `yaml:"retryable"`
	Build     *BuildConfig   `yaml:"build,omitempty"`
	Apply     *ApplyConfig   `yaml:"apply,omitempty"`
	Command   *CommandConfig `yaml:"command,omitempty"`
	Wait      *WaitConfig    `yaml:"wait,omitempty"`
}

// BuildConfig configures the build step.
type BuildConfig struct {
	Context    string `yaml:"context"`
	Dockerfile string `yaml:"dockerfile"`
}

// ApplyConfig configures the apply step. Exactly one of File or Glob is set,
// both relative to the plan's manifest directory.
type ApplyConfig struct {
	File     string `yaml:"file"`
	Glob     string `yaml:"glob"`
	Template bool   `yaml:"template"`
}

// CommandConfig configures a free-form command step. Args are rendered as
// templates against the run context.
type CommandConfig struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args"`
}

// WaitConfig is a readiness gate: wait until Count resources of Kind matching
// Selector report Condition.
type WaitConfig struct {
	Kind      string        `yaml:"kind"`
	Selector  string        `yaml:"selector"`
	Count     int           `yaml:"count"`
	Condition string        `yaml:"condition"`
	Timeout   time.Duration `yaml:"timeout"`
	Interval  time.Duration `yaml:"interval"`
}

// ReportConfig configures the lookup printed after a successful run.
type ReportConfig struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Resource string `yaml:"resource"`
	Field    string `yaml:"field"`
	Format   string `yaml:"format"`
}

// RunContext holds the resolved parameters of one invocation. It is built
// once before any step runs and handed to every step by value.
type RunContext struct {
	Identity    string
	Registry    string
	ImageName   string
	Tag         string
	Image       string
	Platform    string
	WorkDir     string
	ManifestDir string
	Namespace   string
	Placeholder string
}
