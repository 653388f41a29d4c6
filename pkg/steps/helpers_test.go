package steps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/systemstart/deploy-sequencer/pkg/api"
	"github.com/systemstart/deploy-sequencer/pkg/cluster"
	"github.com/systemstart/deploy-sequencer/pkg/command/commandtest"
)

const testPlaceholder = "docker.io/YOUR_DOCKERHUB_USERNAME/fastapi-mongo-crud:latest"

// writeTestFile writes content to a file in dir, failing the test on error.
func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// testEnv returns an Env backed by a fake runner and a RunContext rooted in a
// fresh work directory with an empty k8s/ manifest directory.
func testEnv(t *testing.T) (Env, *commandtest.Runner, api.RunContext) {
	t.Helper()
	work := t.TempDir()
	manifests := filepath.Join(work, "k8s")
	if err := os.MkdirAll(manifests, 0o750); err != nil {
		t.Fatal(err)
	}

	runner := commandtest.NewRunner()
	env := Env{
		Runner:    runner,
		Cluster:   cluster.NewClient(runner, api.CLIOpenShift, work),
		BuildTool: "docker",
	}
	rc := api.RunContext{
		Identity:    "alice",
		Registry:    "docker.io",
		ImageName:   "fastapi-mongo-crud",
		Tag:         "a1b2c3d",
		Image:       "docker.io/alice/fastapi-mongo-crud:a1b2c3d",
		Platform:    "linux/amd64",
		WorkDir:     work,
		ManifestDir: manifests,
		Namespace:   "shop",
		Placeholder: testPlaceholder,
	}
	return env, runner, rc
}
