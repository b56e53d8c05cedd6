// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runner

import (
	"context"
	"fmt"
	"io"
)

// containerRunner runs 6S from an image through a container binary. Docker
// and Podman share the same logic; they differ only in binary name and the
// subcommand used to check image existence.
type containerRunner struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	image         string
	exec          executor
}

func (r *containerRunner) Name() string { return r.bin + " " + r.image }

func (r *containerRunner) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(context.Background(), r.bin, "info") == nil
}

// ImageExists returns nil when the runner's image is present locally.
func (r *containerRunner) ImageExists(ctx context.Context) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, r.image)

	if err := r.exec.RunSilent(ctx, r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", r.image, r.bin, err)
	}
	return nil
}

func (r *containerRunner) Run(ctx context.Context, deck io.Reader) (Streams, error) {
	args := []string{"run", "--rm", "-i", r.image}
	return capture(ctx, r.exec, r.Name(), r.bin, args, deck)
}

func newDockerRunner(image string, exec executor) *containerRunner {
	return &containerRunner{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		image:         image,
		exec:          exec,
	}
}

func newPodmanRunner(image string, exec executor) *containerRunner {
	return &containerRunner{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		image:         image,
		exec:          exec,
	}
}

// detectContainer tries docker first, falls back to podman, and checks that
// the chosen runtime has the image.
func detectContainer(ctx context.Context, image string, exec executor) (*containerRunner, error) {
	for _, rt := range []*containerRunner{newDockerRunner(image, exec), newPodmanRunner(image, exec)} {
		if !rt.Available() {
			continue
		}
		if err := rt.ImageExists(ctx); err != nil {
			return nil, err
		}
		return rt, nil
	}
	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
