package snapshot

import (
	"context"
	"errors"
	"testing"

	"fpm/internal/executor"
	"fpm/pkg/manager"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeManager records Install calls.
type fakeManager struct {
	manager.Manager
	name      string
	installed [][]string
	opts      []manager.InstallOpts
	err       error
}

func (f *fakeManager) Name() string { return f.name }

func (f *fakeManager) Install(_ context.Context, pkgs []string, opts manager.InstallOpts) error {
	f.installed = append(f.installed, pkgs)
	f.opts = append(f.opts, opts)
	return f.err
}

func TestPlanRestore(t *testing.T) {
	target := &Snapshot{Packages: []PackageState{
		{Name: "vim", Source: SourceDNF},
		{Name: "git", Source: SourceDNF},
		{Name: "org.gimp.GIMP", Source: SourceFlatpak},
	}}
	current := &Snapshot{Packages: []PackageState{
		{Name: "vim", Source: SourceDNF},
		{Name: "bash", Source: SourceDNF},
	}}

	plan := PlanRestore(target, current, RestoreOpts{})
	assert.Equal(t, []string{"git"}, plan.ToAdd[SourceDNF])
	assert.Equal(t, []string{"org.gimp.GIMP"}, plan.ToAdd[SourceFlatpak])
	assert.Equal(t, 2, plan.Count())
	assert.Equal(t, 1, plan.Present)
	assert.Equal(t, "2 to install, 1 already installed", plan.Summary())

	dnfOnly := PlanRestore(target, current, RestoreOpts{Sources: []string{SourceDNF}})
	assert.Equal(t, 1, dnfOnly.Count())
	assert.Empty(t, dnfOnly.ToAdd[SourceFlatpak])

	nothing := PlanRestore(current, current, RestoreOpts{})
	assert.True(t, nothing.IsEmpty())
	assert.Equal(t, "Nothing to install (2 already installed)", nothing.Summary())
}

func TestExecutorInstallsPerSource(t *testing.T) {
	dnf := &fakeManager{name: SourceDNF}
	flatpak := &fakeManager{name: SourceFlatpak}

	plan := &RestorePlan{ToAdd: map[string][]string{
		SourceFlatpak: {"org.gimp.GIMP"},
		SourceDNF:     {"git", "htop"},
	}}

	done, err := NewExecutor([]manager.Manager{dnf, flatpak}, RestoreOpts{AutoConfirm: true}).
		Execute(context.Background(), plan)
	require.NoError(t, err)

	require.Len(t, done, 2)
	assert.Equal(t, SourceDNF, done[0].Source, "sources run in name order")
	assert.Equal(t, [][]string{{"git", "htop"}}, dnf.installed)
	assert.True(t, dnf.opts[0].AutoConfirm)
	assert.Equal(t, [][]string{{"org.gimp.GIMP"}}, flatpak.installed)
}

func TestExecutorKeepsGoingAfterFailure(t *testing.T) {
	dnf := &fakeManager{name: SourceDNF, err: &executor.ExitError{Command: "dnf install -y git", Code: 1}}
	flatpak := &fakeManager{name: SourceFlatpak}

	plan := &RestorePlan{ToAdd: map[string][]string{
		SourceDNF:     {"git"},
		SourceFlatpak: {"org.gimp.GIMP"},
		"snap":        {"hello"},
	}}

	done, err := NewExecutor([]manager.Manager{dnf, flatpak}, RestoreOpts{}).
		Execute(context.Background(), plan)
	require.Error(t, err)

	require.Len(t, done, 1)
	assert.Equal(t, SourceFlatpak, done[0].Source)
	assert.Contains(t, err.Error(), "package manager not available: snap")

	var exitErr *executor.ExitError
	assert.True(t, errors.As(err, &exitErr))
}
