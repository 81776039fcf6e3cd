package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"fpm/pkg/manager"
)

// RestoreOpts configures how an import is performed.
type RestoreOpts struct {
	DryRun      bool
	AutoConfirm bool

	// Sources limits the import to the named sources. Empty means all.
	Sources []string
}

// RestorePlan lists the packages of a target snapshot that are missing
// from the current system, by source. Import never removes packages.
type RestorePlan struct {
	Target  *Snapshot
	ToAdd   map[string][]string
	Present int // packages of the target already installed
}

// IsEmpty returns true if nothing needs installing.
func (p *RestorePlan) IsEmpty() bool {
	return p.Count() == 0
}

// Count returns the number of packages to install.
func (p *RestorePlan) Count() int {
	n := 0
	for _, pkgs := range p.ToAdd {
		n += len(pkgs)
	}
	return n
}

// Summary returns a brief summary of the plan.
func (p *RestorePlan) Summary() string {
	if p.IsEmpty() {
		return fmt.Sprintf("Nothing to install (%d already installed)", p.Present)
	}
	return fmt.Sprintf("%d to install, %d already installed", p.Count(), p.Present)
}

// PlanRestore compares target against current and plans the installs.
func PlanRestore(target, current *Snapshot, opts RestoreOpts) *RestorePlan {
	if len(opts.Sources) > 0 {
		target = filterSnapshot(target, opts.Sources)
	}

	plan := &RestorePlan{
		Target: target,
		ToAdd:  make(map[string][]string),
	}

	for _, change := range Compare(current, target).Added() {
		plan.ToAdd[change.Source] = append(plan.ToAdd[change.Source], change.Package)
	}
	plan.Present = target.PackageCount() - plan.Count()

	for source := range plan.ToAdd {
		sort.Strings(plan.ToAdd[source])
	}

	return plan
}

// filterSnapshot returns a snapshot with only packages from sources.
func filterSnapshot(snap *Snapshot, sources []string) *Snapshot {
	keep := make(map[string]bool, len(sources))
	for _, s := range sources {
		keep[s] = true
	}

	filtered := &Snapshot{Timestamp: snap.Timestamp}
	for _, pkg := range snap.Packages {
		if keep[pkg.Source] {
			filtered.Packages = append(filtered.Packages, pkg)
		}
	}
	return filtered
}

// Installed reports the packages one source installed during Execute.
type Installed struct {
	Source   string
	Packages []string
}

// Executor installs the packages of a plan.
type Executor struct {
	managers map[string]manager.Manager
	opts     RestoreOpts
}

// NewExecutor creates an executor that installs each source's packages
// through the manager of the same name.
func NewExecutor(managers []manager.Manager, opts RestoreOpts) *Executor {
	mgrMap := make(map[string]manager.Manager)
	for _, mgr := range managers {
		mgrMap[mgr.Name()] = mgr
	}

	return &Executor{
		managers: mgrMap,
		opts:     opts,
	}
}

// Execute installs the plan source by source in name order. It keeps
// going after a failed source and returns what succeeded together with
// the joined errors.
func (e *Executor) Execute(ctx context.Context, plan *RestorePlan) ([]Installed, error) {
	sources := make([]string, 0, len(plan.ToAdd))
	for source := range plan.ToAdd {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	var (
		done []Installed
		errs []error
	)

	for _, source := range sources {
		packages := plan.ToAdd[source]
		if len(packages) == 0 {
			continue
		}

		mgr, ok := e.managers[source]
		if !ok {
			errs = append(errs, fmt.Errorf("package manager not available: %s", source))
			continue
		}

		opts := manager.InstallOpts{
			AutoConfirm: e.opts.AutoConfirm,
			DryRun:      e.opts.DryRun,
		}

		if err := mgr.Install(ctx, packages, opts); err != nil {
			errs = append(errs, fmt.Errorf("failed to install packages from %s: %w", source, err))
			continue
		}
		done = append(done, Installed{Source: source, Packages: packages})
	}

	return done, errors.Join(errs...)
}
