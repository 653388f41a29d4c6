package processing

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/distribution/reference"
	"github.com/systemstart/deploy-sequencer/pkg/api"
	"github.com/systemstart/deploy-sequencer/pkg/cluster"
	"github.com/systemstart/deploy-sequencer/pkg/command"
	"github.com/systemstart/deploy-sequencer/pkg/sequencer"
)

// TagTimeFormat is used for image tags outside a git checkout.
const TagTimeFormat = "20060102150405"

// ParseArgs returns the registry identity from the positional arguments.
// Exactly one non-empty argument is required.
func ParseArgs(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: registry identity argument is required", sequencer.ErrConfiguration)
	}
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected exactly one argument, got %d", sequencer.ErrConfiguration, len(args))
	}
	identity := strings.TrimSpace(args[0])
	if identity == "" {
		return "", fmt.Errorf("%w: registry identity must not be empty", sequencer.ErrConfiguration)
	}
	return identity, nil
}

// DeriveTag returns the short hash of HEAD in dir, or now formatted with
// TagTimeFormat when dir is not a git checkout.
func DeriveTag(ctx context.Context, runner command.Runner, dir string, now time.Time) string {
	res, err := runner.Run(ctx, dir, "git", "rev-parse", "--short", "HEAD")
	if err == nil && res.Success() {
		if tag := strings.TrimSpace(res.Stdout); tag != "" {
			return tag
		}
	}

	tag := now.UTC().Format(TagTimeFormat)
	slog.Info("no git revision available, using timestamp tag", "tag", tag, "dir", dir, "error", err)
	return tag
}

// RepositoryName builds <registry>/<identity>/<name> and validates it as an
// OCI repository name. The registry is kept as given.
func RepositoryName(registry, identity, name string) (string, error) {
	raw, _, err := parseRepository(registry, identity, name)
	return raw, err
}

// ImageReference builds <registry>/<identity>/<name>:<tag> and validates it
// as an OCI reference.
func ImageReference(registry, identity, name, tag string) (string, error) {
	raw, named, err := parseRepository(registry, identity, name)
	if err != nil {
		return "", err
	}
	if _, err := reference.WithTag(named, tag); err != nil {
		return "", fmt.Errorf("%w: invalid image tag %q: %v", sequencer.ErrConfiguration, tag, err)
	}
	return raw + ":" + tag, nil
}

func parseRepository(registry, identity, name string) (string, reference.Named, error) {
	raw := fmt.Sprintf("%s/%s/%s", registry, identity, name)
	named, err := reference.ParseNormalizedNamed(raw)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid image name %q: %v", sequencer.ErrConfiguration, raw, err)
	}
	return raw, named, nil
}

// NewRunContext resolves everything the steps need: image reference, target
// project and manifest location. It consults git and the cluster CLI but
// changes nothing. An invalid repository name fails before any command runs.
func NewRunContext(ctx context.Context, identity string, p *api.Plan, runner command.Runner, cl *cluster.Client, now time.Time) (api.RunContext, error) {
	if _, err := RepositoryName(p.Registry, identity, p.ImageName); err != nil {
		return api.RunContext{}, err
	}

	tag := DeriveTag(ctx, runner, p.Dir, now)

	image, err := ImageReference(p.Registry, identity, p.ImageName, tag)
	if err != nil {
		return api.RunContext{}, err
	}

	project, err := cl.CurrentProject(ctx)
	if err != nil {
		return api.RunContext{}, fmt.Errorf("%w: %v", sequencer.ErrAuthContext, err)
	}

	namespace := p.Namespace
	if namespace == "" {
		namespace = project
	} else if namespace != project {
		slog.Info("deploying outside the current project", "namespace", namespace, "currentProject", project)
	}

	manifestDir := p.ManifestDir
	if !filepath.IsAbs(manifestDir) {
		manifestDir = filepath.Join(p.Dir, manifestDir)
	}

	return api.RunContext{
		Identity:    identity,
		Registry:    p.Registry,
		ImageName:   p.ImageName,
		Tag:         tag,
		Image:       image,
		Platform:    p.Platform,
		WorkDir:     p.Dir,
		ManifestDir: manifestDir,
		Namespace:   namespace,
		Placeholder: p.Placeholder,
	}, nil
}
