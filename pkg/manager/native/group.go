package native

import (
	"context"
	"fmt"

	"fpm/internal/executor"
)

// Groups wraps "dnf group".
type Groups struct {
	*BaseManager
}

// NewGroups creates a dnf group wrapper.
func NewGroups(exec *executor.Executor) *Groups {
	return &Groups{
		BaseManager: NewBaseManager("dnf-group", "DNF package groups", "dnf", true, exec),
	}
}

// List returns the raw "dnf group list" output.
func (g *Groups) List(ctx context.Context) (string, error) {
	return g.Executor().Output(ctx, g.Binary(), "group", "list")
}

// Info returns the raw "dnf group info" output for group.
func (g *Groups) Info(ctx context.Context, group string) (string, error) {
	out, err := g.Executor().Output(ctx, g.Binary(), "group", "info", group)
	if err != nil {
		return "", fmt.Errorf("group %s not found: %w", group, err)
	}
	return out, nil
}

// Install installs a package group.
func (g *Groups) Install(ctx context.Context, group string, autoConfirm bool) error {
	return g.Executor().RunSudo(ctx, g.Binary(), groupArgs("install", group, autoConfirm)...)
}

// Remove removes a package group.
func (g *Groups) Remove(ctx context.Context, group string, autoConfirm bool) error {
	return g.Executor().RunSudo(ctx, g.Binary(), groupArgs("remove", group, autoConfirm)...)
}

func groupArgs(verb, group string, autoConfirm bool) []string {
	args := []string{"group", verb}
	if autoConfirm {
		args = append(args, "-y")
	}
	return append(args, group)
}
