// Package universal implements the Flatpak application manager.
package universal

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"fpm/internal/executor"
	"fpm/pkg/manager"
)

const (
	// FlathubRemote is the remote name SetupFlathub registers.
	FlathubRemote = "flathub"
	// FlathubURL is the Flathub repository descriptor.
	FlathubURL = "https://flathub.org/repo/flathub.flatpakrepo"

	listColumns = "--columns=name,application,version"
)

// Flatpak implements the Manager interface for Flatpak.
type Flatpak struct {
	name          string
	displayName   string
	binary        string
	defaultRemote string
	exec          *executor.Executor
}

// NewFlatpak creates a new Flatpak manager. Installs without an explicit
// remote use defaultRemote. A nil exec gets a default executor.
func NewFlatpak(defaultRemote string, exec *executor.Executor) *Flatpak {
	if defaultRemote == "" {
		defaultRemote = FlathubRemote
	}
	if exec == nil {
		exec = executor.New(false, false)
	}
	return &Flatpak{
		name:          "flatpak",
		displayName:   "Flatpak",
		binary:        "flatpak",
		defaultRemote: defaultRemote,
		exec:          exec,
	}
}

// Name returns the short identifier.
func (f *Flatpak) Name() string {
	return f.name
}

// DisplayName returns the human-readable name.
func (f *Flatpak) DisplayName() string {
	return f.displayName
}

// Type returns the manager type.
func (f *Flatpak) Type() manager.ManagerType {
	return manager.TypeUniversal
}

// IsAvailable returns true if Flatpak is installed.
func (f *Flatpak) IsAvailable() bool {
	_, err := exec.LookPath(f.binary)
	return err == nil
}

// NeedsSudo returns false: flatpak asks polkit itself for system installs.
func (f *Flatpak) NeedsSudo() bool {
	return false
}

// DefaultRemote returns the remote used for bare application ids.
func (f *Flatpak) DefaultRemote() string {
	return f.defaultRemote
}

// Install installs one or more Flatpak applications. Bare ids are taken
// from the default remote; full refs are passed through unchanged.
func (f *Flatpak) Install(ctx context.Context, packages []string, opts manager.InstallOpts) error {
	if len(packages) == 0 {
		return manager.ErrNoPackages
	}

	defer f.dryRunFor(opts.DryRun)()

	for _, pkg := range packages {
		args := []string{"install"}

		if opts.AutoConfirm {
			args = append(args, "-y")
		}
		if opts.Reinstall {
			args = append(args, "--reinstall")
		}

		if !strings.Contains(pkg, "/") {
			args = append(args, f.defaultRemote)
		}

		args = append(args, pkg)

		if err := f.exec.Run(ctx, f.binary, args...); err != nil {
			return err
		}
	}

	return nil
}

// Uninstall removes one or more Flatpak applications.
func (f *Flatpak) Uninstall(ctx context.Context, packages []string, opts manager.UninstallOpts) error {
	if len(packages) == 0 {
		return manager.ErrNoPackages
	}

	args := []string{"uninstall"}

	if opts.AutoConfirm {
		args = append(args, "-y")
	}

	args = append(args, packages...)

	defer f.dryRunFor(opts.DryRun)()
	return f.exec.Run(ctx, f.binary, args...)
}

// Upgrade updates all installed applications, or only opts.Packages.
func (f *Flatpak) Upgrade(ctx context.Context, opts manager.UpgradeOpts) error {
	args := []string{"update"}

	if opts.AutoConfirm {
		args = append(args, "-y")
	}

	args = append(args, opts.Packages...)

	defer f.dryRunFor(opts.DryRun)()
	return f.exec.Run(ctx, f.binary, args...)
}

// SetupFlathub registers the Flathub remote if it is not present yet.
func (f *Flatpak) SetupFlathub(ctx context.Context) error {
	return f.exec.Run(ctx, f.binary, "remote-add", "--if-not-exists", FlathubRemote, FlathubURL)
}

// Search finds Flatpak applications matching the query.
func (f *Flatpak) Search(ctx context.Context, query string, opts manager.SearchOpts) ([]manager.Package, error) {
	if opts.InstalledOnly {
		return f.ListInstalled(ctx, manager.ListOpts{Limit: opts.Limit, Pattern: query})
	}

	output, err := f.exec.Output(ctx, f.binary, "search", query)
	if err != nil {
		return []manager.Package{}, nil
	}

	return parseSearchOutput(output, opts.Limit), nil
}

// parseSearchOutput parses flatpak search output:
// Name\tDescription\tApplication ID\tVersion\tBranch\tRemotes.
func parseSearchOutput(output string, limit int) []manager.Package {
	var packages []manager.Package
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 3 || fields[2] == "" {
			continue
		}

		pkg := manager.Package{
			Name:        fields[2],
			Description: fields[0] + ": " + fields[1],
			Source:      "flatpak",
		}
		if len(fields) > 3 {
			pkg.Version = fields[3]
		}
		packages = append(packages, pkg)

		if limit > 0 && len(packages) >= limit {
			break
		}
	}

	return packages
}

// Info returns detailed information about an installed application.
func (f *Flatpak) Info(ctx context.Context, pkg string) (*manager.PackageInfo, error) {
	output, err := f.exec.Output(ctx, f.binary, "info", pkg)
	if err != nil {
		return nil, fmt.Errorf("application %s not installed: %w", pkg, err)
	}

	info := parsePackageInfo(output)
	info.Installed = true
	return info, nil
}

// parsePackageInfo parses "flatpak info" output. The first non-empty
// line is "Name - Summary".
func parsePackageInfo(output string) *manager.PackageInfo {
	info := &manager.PackageInfo{
		Package: manager.Package{
			Source: "flatpak",
		},
	}

	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			if info.Description == "" {
				if _, summary, found := strings.Cut(line, " - "); found {
					info.Description = strings.TrimSpace(summary)
				}
			}
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "ID":
			info.Name = value
		case "Version":
			info.Version = value
		case "License":
			info.License = value
		case "Origin":
			info.Repository = value
		case "Installed":
			info.Size = value
		}
	}

	return info
}

// ListInstalled returns installed Flatpak applications.
func (f *Flatpak) ListInstalled(ctx context.Context, opts manager.ListOpts) ([]manager.Package, error) {
	output, err := f.exec.Output(ctx, f.binary, "list", "--app", listColumns)
	if err != nil {
		return nil, err
	}

	return parseListOutput(output, opts), nil
}

// parseListOutput parses "flatpak list" output in the
// name\tapplication\tversion column layout.
func parseListOutput(output string, opts manager.ListOpts) []manager.Package {
	var packages []manager.Package
	scanner := bufio.NewScanner(strings.NewReader(output))
	patternLower := strings.ToLower(opts.Pattern)

	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 2 || fields[1] == "" {
			continue
		}

		name, appID := fields[0], fields[1]

		if opts.Pattern != "" && !strings.Contains(strings.ToLower(appID), patternLower) &&
			!strings.Contains(strings.ToLower(name), patternLower) {
			continue
		}

		pkg := manager.Package{
			Name:        appID,
			Description: name,
			Source:      "flatpak",
			Installed:   true,
		}
		if len(fields) > 2 {
			pkg.Version = fields[2]
		}
		packages = append(packages, pkg)

		if opts.Limit > 0 && len(packages) >= opts.Limit {
			break
		}
	}

	return packages
}

// dryRunFor switches the executor to dry-run for one call when requested.
func (f *Flatpak) dryRunFor(dryRun bool) func() {
	prev := f.exec.DryRun()
	if dryRun && !prev {
		f.exec.SetDryRun(true)
	}
	return func() { f.exec.SetDryRun(prev) }
}
