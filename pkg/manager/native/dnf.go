package native

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"fpm/internal/executor"
	"fpm/pkg/manager"

	"github.com/dustin/go-humanize"
)

// rpmQueryFormat is the "rpm -qa" format ListInstalled parses.
const rpmQueryFormat = "%{NAME}\t%{VERSION}-%{RELEASE}\t%{SUMMARY}\n"

// DNF implements the Manager interface for Fedora's DNF package manager.
type DNF struct {
	*BaseManager
}

// NewDNF creates a new DNF manager instance.
func NewDNF(exec *executor.Executor) *DNF {
	return &DNF{
		BaseManager: NewBaseManager("dnf", "DNF (Fedora)", "dnf", true, exec),
	}
}

// Install installs one or more packages.
func (d *DNF) Install(ctx context.Context, packages []string, opts manager.InstallOpts) error {
	if len(packages) == 0 {
		return manager.ErrNoPackages
	}

	args := []string{"install"}

	if opts.AutoConfirm {
		args = append(args, "-y")
	}

	if opts.Reinstall {
		args[0] = "reinstall"
	}

	args = append(args, packages...)

	defer d.dryRunFor(opts.DryRun)()
	return d.Executor().RunSudo(ctx, d.Binary(), args...)
}

// Uninstall removes one or more packages.
func (d *DNF) Uninstall(ctx context.Context, packages []string, opts manager.UninstallOpts) error {
	if len(packages) == 0 {
		return manager.ErrNoPackages
	}

	args := []string{"remove"}

	if opts.AutoConfirm {
		args = append(args, "-y")
	}

	args = append(args, packages...)

	defer d.dryRunFor(opts.DryRun)()
	return d.Executor().RunSudo(ctx, d.Binary(), args...)
}

// Upgrade upgrades installed packages.
func (d *DNF) Upgrade(ctx context.Context, opts manager.UpgradeOpts) error {
	args := []string{"upgrade"}

	if opts.AutoConfirm {
		args = append(args, "-y")
	}

	if opts.Security {
		args = append(args, "--security")
	}

	args = append(args, opts.Packages...)

	defer d.dryRunFor(opts.DryRun)()
	return d.Executor().RunSudo(ctx, d.Binary(), args...)
}

// Refresh drops cached metadata and downloads it again.
func (d *DNF) Refresh(ctx context.Context) error {
	if err := d.Executor().RunSudo(ctx, d.Binary(), "clean", "metadata"); err != nil {
		return err
	}
	return d.Executor().RunSudo(ctx, d.Binary(), "makecache")
}

// Clean removes cached package files and/or metadata.
func (d *DNF) Clean(ctx context.Context, opts manager.CleanOpts) error {
	defer d.dryRunFor(opts.DryRun)()

	switch {
	case opts.Packages && opts.Metadata:
		return d.Executor().RunSudo(ctx, d.Binary(), "clean", "all")
	case opts.Packages:
		return d.Executor().RunSudo(ctx, d.Binary(), "clean", "packages")
	case opts.Metadata:
		return d.Executor().RunSudo(ctx, d.Binary(), "clean", "metadata")
	}
	return nil
}

// Search finds packages matching the query.
func (d *DNF) Search(ctx context.Context, query string, opts manager.SearchOpts) ([]manager.Package, error) {
	if opts.InstalledOnly {
		return d.ListInstalled(ctx, manager.ListOpts{Limit: opts.Limit, Pattern: query})
	}

	output, err := d.Executor().Output(ctx, d.Binary(), "search", query)
	if err != nil {
		// dnf exits non-zero when nothing matches
		return []manager.Package{}, nil
	}

	return parseSearchOutput(output, opts.Limit), nil
}

// parseSearchOutput parses dnf search output.
func parseSearchOutput(output string, limit int) []manager.Package {
	var packages []manager.Package
	scanner := bufio.NewScanner(strings.NewReader(output))
	var currentPkg *manager.Package

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" || strings.HasPrefix(line, "=") || strings.HasPrefix(line, "Last metadata") ||
			strings.HasPrefix(line, "Matched fields") || strings.HasPrefix(line, "Updating and loading") {
			continue
		}

		// "name.arch : summary"; a blank name continues the summary
		if name, summary, ok := strings.Cut(line, " : "); ok && strings.TrimSpace(name) != "" {
			if currentPkg != nil {
				packages = append(packages, *currentPkg)
				if limit > 0 && len(packages) >= limit {
					return packages
				}
			}

			currentPkg = &manager.Package{
				Name:        stripArch(strings.TrimSpace(name)),
				Description: strings.TrimSpace(summary),
				Source:      "dnf",
			}
		} else if currentPkg != nil && strings.HasPrefix(line, " ") {
			rest := strings.TrimSpace(line)
			rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
			currentPkg.Description += " " + rest
		}
	}

	if currentPkg != nil && (limit <= 0 || len(packages) < limit) {
		packages = append(packages, *currentPkg)
	}

	return packages
}

// Info returns detailed information about a package, preferring the
// installed rpm database over repository metadata.
func (d *DNF) Info(ctx context.Context, pkg string) (*manager.PackageInfo, error) {
	if output, err := d.Executor().Output(ctx, "rpm", "-qi", pkg); err == nil {
		info := parsePackageInfo(output)
		info.Installed = true
		return info, nil
	}

	output, err := d.Executor().Output(ctx, d.Binary(), "info", pkg)
	if err != nil {
		return nil, fmt.Errorf("package %s not found", pkg)
	}

	return parsePackageInfo(output), nil
}

// parsePackageInfo parses "rpm -qi" and "dnf info" output, which share
// the "Key : value" layout.
func parsePackageInfo(output string) *manager.PackageInfo {
	info := &manager.PackageInfo{
		Package: manager.Package{
			Source: "dnf",
		},
	}

	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "Name":
			if info.Name == "" {
				info.Name = value
			}
		case "Version":
			info.Version = value
		case "Release":
			if info.Version != "" {
				info.Version = info.Version + "-" + value
			}
		case "Summary":
			info.Description = value
		case "License":
			info.License = value
		case "URL":
			info.URL = value
		case "Repository", "From repo", "From repository":
			info.Repository = value
		case "Size", "Installed size":
			info.Size = value
			// rpm -qi reports plain bytes
			if n, err := strconv.ParseUint(value, 10, 64); err == nil {
				info.Size = humanize.Bytes(n)
			}
		}
	}

	return info
}

// ListInstalled returns installed packages from the rpm database.
func (d *DNF) ListInstalled(ctx context.Context, opts manager.ListOpts) ([]manager.Package, error) {
	output, err := d.Executor().Output(ctx, "rpm", "-qa", "--queryformat", rpmQueryFormat)
	if err != nil {
		return nil, err
	}

	return parseInstalledOutput(output, opts), nil
}

func parseInstalledOutput(output string, opts manager.ListOpts) []manager.Package {
	var packages []manager.Package
	scanner := bufio.NewScanner(strings.NewReader(output))
	patternLower := strings.ToLower(opts.Pattern)

	for scanner.Scan() {
		fields := strings.SplitN(scanner.Text(), "\t", 3)
		if len(fields) < 2 || fields[0] == "" {
			continue
		}

		if opts.Pattern != "" && !strings.Contains(strings.ToLower(fields[0]), patternLower) {
			continue
		}

		pkg := manager.Package{
			Name:      fields[0],
			Version:   fields[1],
			Source:    "dnf",
			Installed: true,
		}
		if len(fields) == 3 {
			pkg.Description = fields[2]
		}
		packages = append(packages, pkg)

		if opts.Limit > 0 && len(packages) >= opts.Limit {
			break
		}
	}

	return packages
}

// ListUserInstalled returns the packages installed on request, leaving
// out those pulled in as dependencies.
func (d *DNF) ListUserInstalled(ctx context.Context) ([]manager.Package, error) {
	output, err := d.Executor().Output(ctx, d.Binary(), "repoquery", "--userinstalled", "--queryformat", "%{name}\n")
	if err != nil {
		return nil, err
	}

	return parseNameList(output), nil
}

// parseNameList parses one package name per line, skipping status lines
// and duplicates.
func parseNameList(output string) []manager.Package {
	var packages []manager.Package
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || strings.ContainsAny(name, " :") || seen[name] {
			continue
		}
		seen[name] = true

		packages = append(packages, manager.Package{
			Name:      name,
			Source:    "dnf",
			Installed: true,
		})
	}

	return packages
}

// ListAvailable returns packages available from enabled repositories.
func (d *DNF) ListAvailable(ctx context.Context, opts manager.ListOpts) ([]manager.Package, error) {
	args := []string{"list", "available"}
	if opts.Pattern != "" {
		args = append(args, opts.Pattern)
	}

	output, err := d.Executor().Output(ctx, d.Binary(), args...)
	if err != nil {
		return nil, err
	}

	return parseListOutput(output, opts.Limit), nil
}

// parseListOutput parses "dnf list" output: "name.arch version repo".
func parseListOutput(output string, limit int) []manager.Package {
	var packages []manager.Package
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 3 || !strings.Contains(fields[0], ".") {
			continue
		}

		packages = append(packages, manager.Package{
			Name:    stripArch(fields[0]),
			Version: fields[1],
			Source:  "dnf",
		})

		if limit > 0 && len(packages) >= limit {
			break
		}
	}

	return packages
}

// IsInstalled checks if a package is installed.
func (d *DNF) IsInstalled(ctx context.Context, pkg string) (bool, error) {
	_, err := d.Executor().Output(ctx, "rpm", "-q", pkg)
	return err == nil, nil
}

// stripArch turns "vim-enhanced.x86_64" into "vim-enhanced".
func stripArch(nameArch string) string {
	if i := strings.LastIndex(nameArch, "."); i > 0 {
		return nameArch[:i]
	}
	return nameArch
}
