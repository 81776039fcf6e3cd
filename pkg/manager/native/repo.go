package native

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"fpm/internal/executor"
)

// DefaultReposDir is where dnf reads .repo files from.
const DefaultReposDir = "/etc/yum.repos.d"

// repoIDPattern matches ids dnf accepts; it also keeps Remove from
// escaping the repos directory.
var repoIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// Repos wraps "dnf repolist" and "dnf config-manager".
type Repos struct {
	*BaseManager
	reposDir string
}

// NewRepos creates a repository wrapper.
func NewRepos(exec *executor.Executor) *Repos {
	return &Repos{
		BaseManager: NewBaseManager("dnf-repo", "DNF repositories", "dnf", true, exec),
		reposDir:    DefaultReposDir,
	}
}

// ValidateRepoID rejects ids that are empty or contain path separators.
func ValidateRepoID(id string) error {
	if !repoIDPattern.MatchString(id) {
		return fmt.Errorf("invalid repository id %q", id)
	}
	return nil
}

// List returns the raw "dnf repolist" output.
func (r *Repos) List(ctx context.Context, enabledOnly bool) (string, error) {
	which := "--all"
	if enabledOnly {
		which = "--enabled"
	}
	return r.Executor().Output(ctx, r.Binary(), "repolist", which)
}

// Info returns the raw "dnf repoinfo" output.
func (r *Repos) Info(ctx context.Context, id string) (string, error) {
	if err := ValidateRepoID(id); err != nil {
		return "", err
	}
	return r.Executor().Output(ctx, r.Binary(), "repoinfo", id)
}

// Enable enables a repository.
func (r *Repos) Enable(ctx context.Context, id string) error {
	if err := ValidateRepoID(id); err != nil {
		return err
	}
	return r.Executor().RunSudo(ctx, r.Binary(), "config-manager", "--set-enabled", id)
}

// Disable disables a repository.
func (r *Repos) Disable(ctx context.Context, id string) error {
	if err := ValidateRepoID(id); err != nil {
		return err
	}
	return r.Executor().RunSudo(ctx, r.Binary(), "config-manager", "--set-disabled", id)
}

// Add adds a repository from a .repo URL.
func (r *Repos) Add(ctx context.Context, url string) error {
	return r.Executor().RunSudo(ctx, r.Binary(), "config-manager", "--add-repo", url)
}

// Remove disables a repository and deletes its .repo file.
func (r *Repos) Remove(ctx context.Context, id string) error {
	if err := r.Disable(ctx, id); err != nil {
		return err
	}
	return r.Executor().RunSudo(ctx, "rm", "-f", r.repoFile(id))
}

func (r *Repos) repoFile(id string) string {
	return filepath.Join(r.reposDir, id+".repo")
}
