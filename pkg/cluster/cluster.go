package cluster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/systemstart/deploy-sequencer/pkg/api"
	"github.com/systemstart/deploy-sequencer/pkg/command"
	"github.com/tidwall/gjson"
)

const defaultNamespace = "default"

// ErrNoContext is returned when the CLI has no usable current context or
// project, typically because the session is missing or expired.
var ErrNoContext = errors.New("no current cluster context")

// Client drives the cluster CLI (oc or kubectl).
type Client struct {
	runner command.Runner
	cli    string
	dir    string
}

// NewClient creates a Client that runs cli in dir.
func NewClient(runner command.Runner, cli, dir string) *Client {
	if cli == "" {
		cli = api.DefaultClusterCLI
	}
	return &Client{runner: runner, cli: cli, dir: dir}
}

// CLI returns the binary name the client invokes.
func (c *Client) CLI() string { return c.cli }

func (c *Client) run(ctx context.Context, args ...string) (*command.Result, error) {
	return c.runner.Run(ctx, c.dir, c.cli, args...)
}

// CurrentProject returns the project (namespace) of the active session.
func (c *Client) CurrentProject(ctx context.Context) (string, error) {
	if c.cli == api.CLIKubernetes {
		return c.currentNamespace(ctx)
	}

	res, err := c.run(ctx, "project", "-q")
	if err != nil {
		return "", err
	}
	project := strings.TrimSpace(res.Stdout)
	if !res.Success() || project == "" {
		return "", fmt.Errorf("%w: %s project -q: %s", ErrNoContext, c.cli, describe(res))
	}
	return project, nil
}

func (c *Client) currentNamespace(ctx context.Context) (string, error) {
	res, err := c.run(ctx, "config", "current-context")
	if err != nil {
		return "", err
	}
	if !res.Success() || strings.TrimSpace(res.Stdout) == "" {
		return "", fmt.Errorf("%w: %s config current-context: %s", ErrNoContext, c.cli, describe(res))
	}

	res, err = c.run(ctx, "config", "view", "--minify", "--output", "jsonpath={..namespace}")
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", fmt.Errorf("%w: %s config view: %s", ErrNoContext, c.cli, describe(res))
	}
	ns := strings.TrimSpace(res.Stdout)
	if ns == "" {
		ns = defaultNamespace
	}
	return ns, nil
}

// Apply applies a manifest file.
func (c *Client) Apply(ctx context.Context, namespace, file string) (*command.Result, error) {
	args := append([]string{"apply"}, namespaceArgs(namespace)...)
	args = append(args, "-f", file)
	slog.Debug("applying manifest", "file", file, "namespace", namespace)
	return c.run(ctx, args...)
}

// Wait blocks until all resources of kind matching selector report condition
// or timeout elapses on the CLI side.
func (c *Client) Wait(ctx context.Context, namespace, kind, condition, selector string, timeout time.Duration) (*command.Result, error) {
	args := []string{
		"wait",
		"--for=condition=" + condition,
		kind,
		"-l", selector,
	}
	args = append(args, namespaceArgs(namespace)...)
	args = append(args, fmt.Sprintf("--timeout=%ds", int(timeout.Round(time.Second)/time.Second)))
	return c.run(ctx, args...)
}

// Count returns the number of resources of kind matching selector.
func (c *Client) Count(ctx context.Context, namespace, kind, selector string) (int, error) {
	args := append([]string{"get", kind, "-l", selector}, namespaceArgs(namespace)...)
	args = append(args, "-o", "json")

	res, err := c.run(ctx, args...)
	if err != nil {
		return 0, err
	}
	if !res.Success() {
		return 0, fmt.Errorf("%s get %s -l %s: %s", c.cli, kind, selector, describe(res))
	}
	if !gjson.Valid(res.Stdout) {
		return 0, fmt.Errorf("%s get %s: output is not JSON", c.cli, kind)
	}
	return int(gjson.Get(res.Stdout, "items.#").Int()), nil
}

// GetField returns the value at path (gjson syntax, e.g. "spec.host") of a
// named resource. A missing field yields an empty string.
func (c *Client) GetField(ctx context.Context, namespace, kind, name, path string) (string, error) {
	args := append([]string{"get", kind, name}, namespaceArgs(namespace)...)
	args = append(args, "-o", "json")

	res, err := c.run(ctx, args...)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", fmt.Errorf("%s get %s %s: %s", c.cli, kind, name, describe(res))
	}
	if !gjson.Valid(res.Stdout) {
		return "", fmt.Errorf("%s get %s %s: output is not JSON", c.cli, kind, name)
	}

	value := gjson.Get(res.Stdout, path)
	if !value.Exists() {
		slog.Debug("field not present", "kind", kind, "name", name, "path", path)
		return "", nil
	}
	return strings.TrimSpace(value.String()), nil
}

func namespaceArgs(namespace string) []string {
	if namespace == "" {
		return nil
	}
	return []string{"--namespace", namespace}
}

func describe(res *command.Result) string {
	out := res.Output()
	if out == "" {
		out = "no output"
	}
	return fmt.Sprintf("exit code %d: %s", res.ExitCode, out)
}
