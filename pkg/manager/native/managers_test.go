package native

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"fpm/internal/executor"
	"fpm/pkg/manager"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dryRunExecutor returns an executor that prints commands into buf.
// Sudo is off so the output doesn't depend on who runs the tests.
func dryRunExecutor(buf *bytes.Buffer) *executor.Executor {
	e := executor.New(true, false)
	e.SetOutput(buf, buf)
	return e
}

func commands(buf *bytes.Buffer) []string {
	var cmds []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		cmds = append(cmds, strings.TrimPrefix(line, "[dry-run] Would execute: "))
	}
	return cmds
}

func TestManagerInterface(t *testing.T) {
	var _ manager.Manager = NewDNF(nil)

	d := NewDNF(nil)
	assert.Equal(t, "dnf", d.Name())
	assert.NotEmpty(t, d.DisplayName())
	assert.Equal(t, manager.TypeNative, d.Type())
	assert.True(t, d.NeedsSudo())
	_ = d.IsAvailable()
}

func TestDNFInstallArgs(t *testing.T) {
	var buf bytes.Buffer
	d := NewDNF(dryRunExecutor(&buf))
	ctx := context.Background()

	require.NoError(t, d.Install(ctx, []string{"vim", "git"}, manager.InstallOpts{AutoConfirm: true}))
	require.NoError(t, d.Install(ctx, []string{"vim"}, manager.InstallOpts{Reinstall: true}))

	assert.Equal(t, []string{
		"dnf install -y vim git",
		"dnf reinstall vim",
	}, commands(&buf))
}

func TestDNFUninstallArgs(t *testing.T) {
	var buf bytes.Buffer
	d := NewDNF(dryRunExecutor(&buf))

	require.NoError(t, d.Uninstall(context.Background(), []string{"foo"}, manager.UninstallOpts{}))
	assert.Equal(t, []string{"dnf remove foo"}, commands(&buf))
}

func TestDNFEmptyPackages(t *testing.T) {
	d := NewDNF(executor.New(true, false))
	ctx := context.Background()

	assert.ErrorIs(t, d.Install(ctx, nil, manager.InstallOpts{}), manager.ErrNoPackages)
	assert.ErrorIs(t, d.Uninstall(ctx, []string{}, manager.UninstallOpts{}), manager.ErrNoPackages)
}

func TestDNFUpgradeArgs(t *testing.T) {
	var buf bytes.Buffer
	d := NewDNF(dryRunExecutor(&buf))
	ctx := context.Background()

	require.NoError(t, d.Upgrade(ctx, manager.UpgradeOpts{AutoConfirm: true}))
	require.NoError(t, d.Upgrade(ctx, manager.UpgradeOpts{Packages: []string{"kernel"}}))
	require.NoError(t, d.Upgrade(ctx, manager.UpgradeOpts{AutoConfirm: true, Security: true}))

	assert.Equal(t, []string{
		"dnf upgrade -y",
		"dnf upgrade kernel",
		"dnf upgrade -y --security",
	}, commands(&buf))
}

func TestDNFCleanArgs(t *testing.T) {
	tests := []struct {
		name string
		opts manager.CleanOpts
		want []string
	}{
		{"all", manager.CleanOpts{Packages: true, Metadata: true}, []string{"dnf clean all"}},
		{"packages", manager.CleanOpts{Packages: true}, []string{"dnf clean packages"}},
		{"metadata", manager.CleanOpts{Metadata: true}, []string{"dnf clean metadata"}},
		{"nothing", manager.CleanOpts{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			d := NewDNF(dryRunExecutor(&buf))

			require.NoError(t, d.Clean(context.Background(), tt.opts))
			assert.Equal(t, tt.want, commands(&buf))
		})
	}
}

func TestDNFRefreshArgs(t *testing.T) {
	var buf bytes.Buffer
	d := NewDNF(dryRunExecutor(&buf))

	require.NoError(t, d.Refresh(context.Background()))
	assert.Equal(t, []string{"dnf clean metadata", "dnf makecache"}, commands(&buf))
}

func TestDryRunForRestoresMode(t *testing.T) {
	var buf bytes.Buffer
	e := executor.New(false, false)
	e.SetOutput(&buf, &buf)
	d := NewDNF(e)
	d.SetBinary("fpm-no-such-dnf")

	require.NoError(t, d.Install(context.Background(), []string{"vim"}, manager.InstallOpts{DryRun: true}))
	assert.False(t, e.DryRun(), "per-call dry-run must not leak")

	e.SetDryRun(true)
	require.NoError(t, d.Uninstall(context.Background(), []string{"vim"}, manager.UninstallOpts{}))
	assert.True(t, e.DryRun(), "global dry-run must survive a call")
}

func TestParseSearchOutput(t *testing.T) {
	output := `Last metadata expiration check: 0:42:17 ago on Mon 19 Oct 2026 09:12:03.
========================= Name Exactly Matched: vim =========================
vim-enhanced.x86_64 : A version of the VIM editor which includes recent
                    : enhancements
========================= Name & Summary Matched: vim =========================
neovim.x86_64 : Vim-fork focused on extensibility and agility
vim-minimal.x86_64 : A minimal version of the VIM editor
`

	pkgs := parseSearchOutput(output, 0)
	require.Len(t, pkgs, 3)
	assert.Equal(t, "vim-enhanced", pkgs[0].Name)
	assert.Equal(t, "A version of the VIM editor which includes recent enhancements", pkgs[0].Description)
	assert.Equal(t, "neovim", pkgs[1].Name)
	assert.Equal(t, "vim-minimal", pkgs[2].Name)
	assert.Equal(t, "dnf", pkgs[2].Source)

	limited := parseSearchOutput(output, 2)
	assert.Len(t, limited, 2)
}

func TestParseSearchOutputSkipsHeaders(t *testing.T) {
	output := `Updating and loading repositories:
Repositories loaded.
Matched fields: name, summary
 git-core.x86_64 : Core package of git with minimal functionality
`

	pkgs := parseSearchOutput(output, 0)
	require.Len(t, pkgs, 1)
	assert.Equal(t, "git-core", pkgs[0].Name)
	assert.Equal(t, "Core package of git with minimal functionality", pkgs[0].Description)
}

func TestParsePackageInfoRPM(t *testing.T) {
	output := `Name        : git
Version     : 2.47.0
Release     : 1.fc41
Architecture: x86_64
Install Date: Mon 19 Oct 2026 08:00:00 AM CEST
Size        : 87123
License     : GPL-2.0-only
Summary     : Fast Version Control System
URL         : https://git-scm.com/
`

	info := parsePackageInfo(output)
	assert.Equal(t, "git", info.Name)
	assert.Equal(t, "2.47.0-1.fc41", info.Version)
	assert.Equal(t, "GPL-2.0-only", info.License)
	assert.Equal(t, "https://git-scm.com/", info.URL)
	assert.Equal(t, "Fast Version Control System", info.Description)
	assert.Equal(t, "87 kB", info.Size)
}

func TestParseInstalledOutput(t *testing.T) {
	output := "vim-enhanced\t9.1.825-1.fc41\tA version of the VIM editor\n" +
		"git\t2.47.0-1.fc41\tFast Version Control System\n" +
		"garbage line\n" +
		"gitk\t2.47.0-1.fc41\tGit repository browser\n"

	all := parseInstalledOutput(output, manager.ListOpts{})
	require.Len(t, all, 3)
	assert.True(t, all[0].Installed)
	assert.Equal(t, "9.1.825-1.fc41", all[0].Version)

	gits := parseInstalledOutput(output, manager.ListOpts{Pattern: "GIT"})
	require.Len(t, gits, 2)
	assert.Equal(t, "git", gits[0].Name)
	assert.Equal(t, "gitk", gits[1].Name)

	limited := parseInstalledOutput(output, manager.ListOpts{Limit: 1})
	assert.Len(t, limited, 1)
}

func TestParseListOutput(t *testing.T) {
	output := `Last metadata expiration check: 1:02:03 ago on Mon 19 Oct 2026.
Available Packages
htop.x86_64                 3.3.0-4.fc41                 fedora
python3.12.x86_64           3.12.7-1.fc41                updates
`

	pkgs := parseListOutput(output, 0)
	require.Len(t, pkgs, 2)
	assert.Equal(t, "htop", pkgs[0].Name)
	assert.Equal(t, "3.3.0-4.fc41", pkgs[0].Version)
	assert.Equal(t, "python3.12", pkgs[1].Name)
}

func TestStripArch(t *testing.T) {
	assert.Equal(t, "vim-enhanced", stripArch("vim-enhanced.x86_64"))
	assert.Equal(t, "noarch", stripArch("noarch"))
	assert.Equal(t, ".hidden", stripArch(".hidden"))
}

func TestGroupArgs(t *testing.T) {
	var buf bytes.Buffer
	g := NewGroups(dryRunExecutor(&buf))
	ctx := context.Background()

	require.NoError(t, g.Install(ctx, "Development Tools", true))
	require.NoError(t, g.Remove(ctx, "games", false))

	assert.Equal(t, []string{
		"dnf group install -y Development Tools",
		"dnf group remove games",
	}, commands(&buf))
}

func TestRepoArgs(t *testing.T) {
	var buf bytes.Buffer
	r := NewRepos(dryRunExecutor(&buf))
	r.reposDir = "/tmp/repos"
	ctx := context.Background()

	require.NoError(t, r.Enable(ctx, "rpmfusion-free"))
	require.NoError(t, r.Disable(ctx, "updates-testing"))
	require.NoError(t, r.Add(ctx, "https://example.org/x.repo"))
	require.NoError(t, r.Remove(ctx, "copr:copr.fedorainfracloud.org:user:proj"))

	assert.Equal(t, []string{
		"dnf config-manager --set-enabled rpmfusion-free",
		"dnf config-manager --set-disabled updates-testing",
		"dnf config-manager --add-repo https://example.org/x.repo",
		"dnf config-manager --set-disabled copr:copr.fedorainfracloud.org:user:proj",
		"rm -f /tmp/repos/copr:copr.fedorainfracloud.org:user:proj.repo",
	}, commands(&buf))
}

func TestValidateRepoID(t *testing.T) {
	assert.NoError(t, ValidateRepoID("fedora"))
	assert.NoError(t, ValidateRepoID("updates-testing"))
	assert.Error(t, ValidateRepoID(""))
	assert.Error(t, ValidateRepoID("../../etc/passwd"))
	assert.Error(t, ValidateRepoID("a/b"))

	r := NewRepos(executor.New(true, false))
	assert.Error(t, r.Remove(context.Background(), "../evil"))
}

func TestParseNameList(t *testing.T) {
	output := "Updating and loading repositories:\n" +
		"Repositories loaded.\n" +
		"git\n\nvim-enhanced\ngit\nfirefox\n"

	pkgs := parseNameList(output)
	require.Len(t, pkgs, 3)
	assert.Equal(t, "git", pkgs[0].Name)
	assert.Equal(t, "vim-enhanced", pkgs[1].Name)
	assert.Equal(t, "firefox", pkgs[2].Name)
	assert.True(t, pkgs[2].Installed)
}
