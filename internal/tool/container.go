// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tool

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// containerRuntime wraps a container binary. Docker and Podman share the
// same logic; they differ only in binary name and the subcommand used to
// check image existence.
type containerRuntime struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	exec          executor
}

func (r *containerRuntime) available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *containerRuntime) imageExists(image string) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, image)

	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func newDockerRuntime(exec executor) *containerRuntime {
	return &containerRuntime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec executor) *containerRuntime {
	return &containerRuntime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

// detectRuntime tries docker first and falls back to podman.
func detectRuntime(exec executor) (*containerRuntime, error) {
	docker := newDockerRuntime(exec)
	if docker.available() {
		return docker, nil
	}

	podman := newPodmanRuntime(exec)
	if podman.available() {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"%w: no container runtime available: neither %s nor %s found or operational",
		ErrNotFound, binDocker, binPodman,
	)
}

// containerRunner runs the tool inside a container image. Every directory
// the tool needs is bind-mounted at the same absolute path, so paths in the
// arguments and in the generated config resolve identically inside.
type containerRunner struct {
	rt    *containerRuntime
	image string
	bin   string
}

func newContainerRunner(image, bin string, exec executor) (*containerRunner, error) {
	if image == "" {
		return nil, fmt.Errorf("container runner requires an image")
	}
	rt, err := detectRuntime(exec)
	if err != nil {
		return nil, err
	}
	if err := rt.imageExists(image); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return &containerRunner{rt: rt, image: image, bin: bin}, nil
}

func (c *containerRunner) Name() string { return c.rt.bin + " " + c.image }

func (c *containerRunner) Run(args, paths []string, stdout, stderr io.Writer) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	mounts, err := mountDirs(wd, paths)
	if err != nil {
		return err
	}

	argv := []string{"run", "--rm"}
	if uid, gid := os.Getuid(), os.Getgid(); uid >= 0 {
		argv = append(argv, "--user", strconv.Itoa(uid)+":"+strconv.Itoa(gid))
	}
	for _, dir := range mounts {
		argv = append(argv, "-v", dir+":"+dir)
	}
	argv = append(argv, "-w", wd, c.image, c.bin)
	argv = append(argv, args...)

	return c.rt.exec.RunAttached(c.rt.bin, argv, stdout, stderr)
}

// mountDirs returns the sorted, deduplicated absolute directories that
// contain wd and each of paths.
func mountDirs(wd string, paths []string) ([]string, error) {
	seen := map[string]bool{wd: true}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		seen[filepath.Dir(abs)] = true
	}
	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs, nil
}
