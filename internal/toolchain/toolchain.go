package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"
)

// Minimum versions checked by doctor.
const (
	NodeConstraint = ">= 18.0.0"
	NpmConstraint  = ">= 8.0.0"
)

// Tool is an executable found on PATH.
type Tool struct {
	Name    string
	Path    string
	Version *semver.Version
}

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, path string, args ...string) ([]byte, error)

// Detector finds tools and reads their versions.
type Detector struct {
	// LookPath defaults to exec.LookPath.
	LookPath func(name string) (string, error)
	// Run defaults to running the command with exec.CommandContext.
	Run Runner
}

func execRun(ctx context.Context, path string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s %s: %w: %s", path, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// Detect locates name and runs "name --version".
func (d *Detector) Detect(ctx context.Context, name string) (*Tool, error) {
	lookPath := d.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	run := d.Run
	if run == nil {
		run = execRun
	}

	path, err := lookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", name, err)
	}
	out, err := run(ctx, path, "--version")
	if err != nil {
		return nil, err
	}
	v, err := ParseVersion(string(out))
	if err != nil {
		return nil, fmt.Errorf("reading %s version: %w", name, err)
	}
	return &Tool{Name: name, Path: path, Version: v}, nil
}

// ParseVersion parses the first line of a --version output, tolerating a
// leading "v" and surrounding whitespace.
func ParseVersion(s string) (*semver.Version, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	line = strings.TrimPrefix(strings.TrimSpace(line), "v")
	return semver.NewVersion(line)
}

// Satisfies reports whether the tool version meets constraint.
func (t *Tool) Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	return c.Check(t.Version), nil
}

// Detection is the outcome of detecting one tool.
type Detection struct {
	Name string
	Tool *Tool
	Err  error
}

// DetectAll detects every tool concurrently. Results keep the order of
// names; a missing tool is reported in its Detection, not as an error.
func (d *Detector) DetectAll(ctx context.Context, names ...string) []Detection {
	results := make([]Detection, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			tool, err := d.Detect(ctx, name)
			results[i] = Detection{Name: name, Tool: tool, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
