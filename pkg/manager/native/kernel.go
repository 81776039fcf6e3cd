package native

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"fpm/internal/executor"
)

// ErrNoKernels is returned when a removal matches no installed kernel package.
var ErrNoKernels = errors.New("no kernel packages matched the requested versions")

// Kernels manages installed kernels through rpm and dnf.
type Kernels struct {
	*BaseManager
}

// NewKernels creates a kernel manager.
func NewKernels(exec *executor.Executor) *Kernels {
	return &Kernels{
		BaseManager: NewBaseManager("kernel", "Kernels", "dnf", true, exec),
	}
}

// Current returns the running kernel release as reported by "uname -r".
func (k *Kernels) Current(ctx context.Context) (string, error) {
	out, err := k.Executor().Output(ctx, "uname", "-r")
	if err != nil {
		return "", fmt.Errorf("failed to detect running kernel: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// ListInstalled returns the installed kernel* packages, sorted.
func (k *Kernels) ListInstalled(ctx context.Context) ([]string, error) {
	out, err := k.Executor().Output(ctx, "rpm", "-qa", "kernel*")
	if err != nil {
		return nil, err
	}
	return sortedLines(out, func(line string) bool {
		return strings.HasPrefix(line, "kernel")
	}), nil
}

// ListAvailable returns kernel packages offered by the enabled repositories.
func (k *Kernels) ListAvailable(ctx context.Context) ([]string, error) {
	out, err := k.Executor().Output(ctx, k.Binary(), "list", "available", "kernel*")
	if err != nil {
		return nil, err
	}
	return parseAvailableKernels(out), nil
}

// parseAvailableKernels keeps the kernel flavours from "dnf list" output,
// dropping the split-out core and module subpackages.
func parseAvailableKernels(output string) []string {
	var kernels []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		name := stripArch(fields[0])
		if !strings.HasPrefix(name, "kernel-") || strings.Contains(name, "core") || seen[name] {
			continue
		}
		seen[name] = true
		kernels = append(kernels, name)
	}

	return kernels
}

// Versions returns the installed versions of the kernel package as
// "version-release.arch", the same form "uname -r" prints.
func (k *Kernels) Versions(ctx context.Context) ([]string, error) {
	out, err := k.Executor().Output(ctx, "rpm", "-q", "kernel", "--queryformat", "%{VERSION}-%{RELEASE}.%{ARCH}\n")
	if err != nil {
		var exitErr *executor.ExitError
		if errors.As(err, &exitErr) && strings.Contains(out+exitErr.Stderr, "not installed") {
			return nil, nil
		}
		return nil, err
	}
	return sortedLines(out, func(line string) bool { return !strings.Contains(line, " ") }), nil
}

// KernelPackage returns the dnf package name for a kernel version; an empty
// version means the latest kernel.
func KernelPackage(version string) string {
	if version == "" {
		return "kernel"
	}
	return "kernel-" + version
}

// Install installs a kernel and returns the package it asked dnf for.
func (k *Kernels) Install(ctx context.Context, version string, autoConfirm bool) (string, error) {
	pkg := KernelPackage(version)

	args := []string{"install"}
	if autoConfirm {
		args = append(args, "-y")
	}
	args = append(args, pkg)

	return pkg, k.Executor().RunSudo(ctx, k.Binary(), args...)
}

// Resolve expands kernel versions into the installed packages carrying
// them. With keepCurrent, versions that match the running kernel are
// skipped and returned separately.
func (k *Kernels) Resolve(ctx context.Context, versions []string, keepCurrent bool) (packages, skipped []string, err error) {
	var current string
	if keepCurrent {
		if current, err = k.Current(ctx); err != nil {
			return nil, nil, err
		}
	}

	seen := make(map[string]bool)
	for _, v := range versions {
		if current != "" && strings.Contains(current, v) {
			skipped = append(skipped, v)
			continue
		}

		out, err := k.Executor().Output(ctx, "rpm", "-qa", "kernel*"+v+"*")
		if err != nil {
			return nil, nil, err
		}
		for _, pkg := range sortedLines(out, nil) {
			if !seen[pkg] {
				seen[pkg] = true
				packages = append(packages, pkg)
			}
		}
	}

	sort.Strings(packages)
	return packages, skipped, nil
}

// OldVersions returns the installed kernel versions beyond the newest
// keep, never including the running kernel.
func (k *Kernels) OldVersions(ctx context.Context, keep int) ([]string, error) {
	versions, err := k.Versions(ctx)
	if err != nil {
		return nil, err
	}
	current, err := k.Current(ctx)
	if err != nil {
		return nil, err
	}
	return selectOld(versions, keep, current), nil
}

// selectOld expects versions sorted oldest first.
func selectOld(versions []string, keep int, current string) []string {
	if keep < 0 {
		keep = 0
	}
	if len(versions) <= keep {
		return nil
	}

	var old []string
	for _, v := range versions[:len(versions)-keep] {
		if v != current {
			old = append(old, v)
		}
	}
	return old
}

// Remove removes the given kernel packages.
func (k *Kernels) Remove(ctx context.Context, packages []string, autoConfirm bool) error {
	if len(packages) == 0 {
		return ErrNoKernels
	}

	args := []string{"remove"}
	if autoConfirm {
		args = append(args, "-y")
	}
	args = append(args, packages...)

	return k.Executor().RunSudo(ctx, k.Binary(), args...)
}

// Info returns the packages belonging to version, or to the running kernel
// when version is empty.
func (k *Kernels) Info(ctx context.Context, version string) (string, []string, error) {
	if version == "" {
		current, err := k.Current(ctx)
		if err != nil {
			return "", nil, err
		}
		version = current
	}

	out, err := k.Executor().Output(ctx, "rpm", "-qa", "kernel*"+version+"*")
	if err != nil {
		return version, nil, err
	}
	return version, sortedLines(out, nil), nil
}

// sortedLines returns the trimmed, non-empty, deduplicated lines of out
// accepted by keep (nil keeps all), sorted.
func sortedLines(out string, keep func(string) bool) []string {
	var lines []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] || (keep != nil && !keep(line)) {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}

	sort.Strings(lines)
	return lines
}
