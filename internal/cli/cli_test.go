package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fpm/internal/config"
	"fpm/internal/history"
	"fpm/internal/rollback"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default, since the command tree
// and its flag variables are package-level.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes fpm against configDir with sudo and color off.
func runCLI(t *testing.T, configDir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config-dir", configDir, "--sudo=false", "--no-color"}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

// seedHistory writes entries to the default history file in dir.
func seedHistory(t *testing.T, dir string, entries ...history.Entry) *history.Log {
	t.Helper()
	hl := history.New(config.DefaultHistoryPath(dir))
	for _, e := range entries {
		require.NoError(t, hl.Append(e.Action, e.Items))
	}
	return hl
}

// stubCommands puts fake binaries for names on PATH. Each one appends its
// name and arguments to the returned log file and exits 0.
func stubCommands(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")

	for _, name := range names {
		script := "#!/bin/sh\necho \"$(basename \"$0\") $*\" >> " + logPath + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return logPath
}

func loggedCalls(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func dryRunLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if cmd, ok := strings.CutPrefix(line, "[dry-run] Would execute: "); ok {
			lines = append(lines, cmd)
		}
	}
	return lines
}

func TestHistoryEmpty(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No history found")
}

func TestHistoryLimit(t *testing.T) {
	dir := t.TempDir()
	seedHistory(t, dir,
		history.Entry{Action: history.ActionInstall, Items: []string{"vim"}},
		history.Entry{Action: history.ActionRemove, Items: []string{"nano"}},
	)

	out, err := runCLI(t, dir, "history", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "(last 1 entries)")
	assert.Contains(t, out, "remove: nano")
	assert.NotContains(t, out, "install: vim")

	out, err = runCLI(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "(last 2 entries)")
	assert.Less(t, strings.Index(out, "remove: nano"), strings.Index(out, "install: vim"), "newest first")
}

func TestHistoryLimitFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[history]\nlimit = 1\n"), 0o644))
	seedHistory(t, dir,
		history.Entry{Action: history.ActionInstall, Items: []string{"a"}},
		history.Entry{Action: history.ActionInstall, Items: []string{"b"}},
	)

	out, err := runCLI(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "(last 1 entries)")
}

func TestHistoryAll(t *testing.T) {
	dir := t.TempDir()
	seedHistory(t, dir,
		history.Entry{Action: history.ActionInstall, Items: []string{"vim"}},
		history.Entry{Action: history.ActionRepoAdd, Items: []string{"myrepo", "https://example.org/myrepo.repo"}},
	)

	out, err := runCLI(t, dir, "history", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "[1]")
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, "repo-add myrepo, https://example.org/myrepo.repo")
}

func TestRollbackNothingToRollback(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "rollback")
	require.NoError(t, err)
	assert.Contains(t, out, "No history to rollback")
}

func TestRollbackInvalidID(t *testing.T) {
	dir := t.TempDir()
	seedHistory(t, dir, history.Entry{Action: history.ActionInstall, Items: []string{"vim"}})

	for _, id := range []string{"0", "2"} {
		_, err := runCLI(t, dir, "rollback", "--id", id)
		assert.ErrorIs(t, err, rollback.ErrInvalidID, "id %s", id)
	}
}

func TestRollbackLastDryRun(t *testing.T) {
	dir := t.TempDir()
	hl := seedHistory(t, dir,
		history.Entry{Action: history.ActionRemove, Items: []string{"foo"}},
		history.Entry{Action: history.ActionInstall, Items: []string{"vim", "git"}},
	)

	out, err := runCLI(t, dir, "--dry-run", "rollback")
	require.NoError(t, err)
	assert.Equal(t, []string{"dnf remove vim git"}, dryRunLines(out))

	n, err := hl.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n, "rollback must not append to the history")
}

func TestRollbackByIDConfirmed(t *testing.T) {
	dir := t.TempDir()
	seedHistory(t, dir,
		history.Entry{Action: history.ActionRemove, Items: []string{"foo"}},
		history.Entry{Action: history.ActionInstall, Items: []string{"vim"}},
	)

	out, err := runCLI(t, dir, "--dry-run", "rollback", "--id", "1", "-y")
	require.NoError(t, err)
	assert.Equal(t, []string{"dnf install -y foo"}, dryRunLines(out))
}

func TestRollbackUpdateIsNotInverted(t *testing.T) {
	dir := t.TempDir()
	seedHistory(t, dir, history.Entry{Action: history.ActionUpdate, Items: []string{"system"}})

	out, err := runCLI(t, dir, "--dry-run", "undo")
	require.NoError(t, err)
	assert.Empty(t, dryRunLines(out))
	assert.Contains(t, out, "Cannot automatically rollback updates")
}

func TestRollbackCorruptHistory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(config.DefaultHistoryPath(dir), []byte("not json"), 0o644))

	_, err := runCLI(t, dir, "rollback")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse history file")
}

func TestDryRunDoesNotRecordHistory(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "--dry-run", "install", "vim", "git")
	require.NoError(t, err)
	assert.Equal(t, []string{"dnf install vim git"}, dryRunLines(out))

	out, err = runCLI(t, dir, "--dry-run", "-y", "update")
	require.NoError(t, err)
	assert.Equal(t, []string{"dnf upgrade -y"}, dryRunLines(out))

	_, err = os.Stat(config.DefaultHistoryPath(dir))
	assert.True(t, os.IsNotExist(err))
}

func TestInstallResolvesAliases(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[aliases]\ncode = \"code-oss\"\n"), 0o644))

	out, err := runCLI(t, dir, "--dry-run", "install", "code")
	require.NoError(t, err)
	assert.Equal(t, []string{"dnf install code-oss"}, dryRunLines(out))
}

func TestRepoRemoveDryRun(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "--dry-run", "repo", "remove", "updates-testing")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"dnf config-manager --set-disabled updates-testing",
		"rm -f /etc/yum.repos.d/updates-testing.repo",
	}, dryRunLines(out))
}

func TestFlatpakInstallDryRun(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "--dry-run", "flatpak", "install", "-y", "org.gimp.GIMP")
	require.NoError(t, err)
	assert.Equal(t, []string{"flatpak install -y flathub org.gimp.GIMP"}, dryRunLines(out))
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[general\n"), 0o644))

	_, err := runCLI(t, dir, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config file")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	cfg, err := config.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.History.Limit)
	assert.True(t, cfg.General.UseSudo, "the --sudo=false override is not persisted")

	_, err = runCLI(t, dir, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = runCLI(t, dir, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "config.toml"))
	assert.Contains(t, out, filepath.Join(dir, "history.json"))
}

func TestReinstallIsNotUndoneByRemove(t *testing.T) {
	dir := t.TempDir()
	calls := stubCommands(t, "dnf")

	_, err := runCLI(t, dir, "-y", "install", "--reinstall", "vim")
	require.NoError(t, err)

	entries, err := history.New(config.DefaultHistoryPath(dir)).ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, history.ActionReinstall, entries[0].Action)

	out, err := runCLI(t, dir, "rollback", "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "Cannot rollback action: reinstall")
	assert.Equal(t, []string{"dnf reinstall -y vim"}, loggedCalls(t, calls), "rollback must not remove the package")
}

func TestInstallRecordsInstall(t *testing.T) {
	dir := t.TempDir()
	calls := stubCommands(t, "dnf")

	_, err := runCLI(t, dir, "-y", "install", "vim")
	require.NoError(t, err)
	_, err = runCLI(t, dir, "rollback", "-y")
	require.NoError(t, err)

	assert.Equal(t, []string{"dnf install -y vim", "dnf remove -y vim"}, loggedCalls(t, calls))
}

func TestDownloadRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	calls := stubCommands(t, "dnf")

	_, err := runCLI(t, dir, "download", "--resolve", "--destdir", "/tmp/rpms", "vim")
	require.NoError(t, err)
	_, err = runCLI(t, dir, "install-offline", "-y", "/tmp/rpms/vim.rpm")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"dnf download --resolve --destdir /tmp/rpms vim",
		"dnf install -y /tmp/rpms/vim.rpm",
	}, loggedCalls(t, calls))

	entries, err := history.New(config.DefaultHistoryPath(dir)).ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, history.ActionDownloadDeps, entries[0].Action)
	assert.Equal(t, history.ActionInstallOffline, entries[1].Action)

	out, err := runCLI(t, dir, "rollback", "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "Cannot rollback action: install-offline")
	assert.Len(t, loggedCalls(t, calls), 2)
}

func TestDownloadDryRun(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "--dry-run", "download", "vim")
	require.NoError(t, err)
	assert.Equal(t, []string{"dnf download vim"}, dryRunLines(out))
}

func TestKernelInstallRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	calls := stubCommands(t, "dnf")

	_, err := runCLI(t, dir, "-y", "kernel", "install", "6.9.7-200.fc40")
	require.NoError(t, err)
	assert.Equal(t, []string{"dnf install -y kernel-6.9.7-200.fc40"}, loggedCalls(t, calls))

	entries, err := history.New(config.DefaultHistoryPath(dir)).ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, history.ActionKernelInstall, entries[0].Action)
	assert.Equal(t, []string{"kernel-6.9.7-200.fc40"}, entries[0].Items)
}

func TestGamingInstallDryRun(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "--dry-run", "gaming", "install")
	require.NoError(t, err)
	assert.Equal(t, []string{"dnf install fedora-gaming-meta"}, dryRunLines(out))
}

func TestSecurityUpdate(t *testing.T) {
	dir := t.TempDir()
	calls := stubCommands(t, "dnf")

	_, err := runCLI(t, dir, "-y", "update", "--security")
	require.NoError(t, err)
	assert.Equal(t, []string{"dnf upgrade -y --security"}, loggedCalls(t, calls))

	entries, err := history.New(config.DefaultHistoryPath(dir)).ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, history.ActionSecurityUpdate, entries[0].Action)
	assert.Equal(t, []string{"all"}, entries[0].Items)
}
