package pod

import (
	"context"
	"io"
	"os/exec"
)

// Install finds `pod` on the PATH and runs Install against it.
// See Command.Install.
func Install(ctx context.Context, dir string, opts *InstallOpts) error {
	return Command("pod").Install(ctx, dir, opts)
}

// Command represents the path to a `pod` executable.
type Command string

func (c Command) String() string {
	return string(c)
}

// InstallOpts represent flags and stdio that can be passed to `pod install`.
type InstallOpts struct {
	RepoUpdate bool
	Verbose    bool
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// Install executes a command against `pod` found at Command.
// It runs `pod install` in dir with flags derived from the
// given InstallOpts.
func (c Command) Install(ctx context.Context, dir string, opts *InstallOpts) error {
	args := []string{"install"}

	if opts == nil {
		opts = &InstallOpts{}
	}

	if opts.RepoUpdate {
		args = append(args, "--repo-update")
	}

	if opts.Verbose {
		args = append(args, "--verbose")
	}

	//nolint:gosec
	cmd := exec.CommandContext(ctx, c.String(), args...)
	cmd.Dir = dir
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	return cmd.Run()
}
