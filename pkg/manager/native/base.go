// Package native implements the dnf/rpm based system package manager.
package native

import (
	"os/exec"

	"fpm/internal/executor"
	"fpm/pkg/manager"
)

// BaseManager provides common functionality for the native managers.
type BaseManager struct {
	name        string
	displayName string
	binary      string
	managerType manager.ManagerType
	needsSudo   bool
	exec        *executor.Executor
}

// NewBaseManager creates a new BaseManager. A nil exec gets a default
// executor that elevates with sudo.
func NewBaseManager(name, displayName, binary string, needsSudo bool, exec *executor.Executor) *BaseManager {
	if exec == nil {
		exec = executor.New(false, needsSudo)
	}
	return &BaseManager{
		name:        name,
		displayName: displayName,
		binary:      binary,
		managerType: manager.TypeNative,
		needsSudo:   needsSudo,
		exec:        exec,
	}
}

// Name returns the short identifier for this manager.
func (b *BaseManager) Name() string {
	return b.name
}

// DisplayName returns the human-readable name.
func (b *BaseManager) DisplayName() string {
	return b.displayName
}

// Type returns the manager type.
func (b *BaseManager) Type() manager.ManagerType {
	return b.managerType
}

// IsAvailable returns true if this package manager is installed.
func (b *BaseManager) IsAvailable() bool {
	_, err := exec.LookPath(b.binary)
	return err == nil
}

// NeedsSudo returns true if this manager requires root privileges.
func (b *BaseManager) NeedsSudo() bool {
	return b.needsSudo
}

// Binary returns the primary binary name for this manager.
func (b *BaseManager) Binary() string {
	return b.binary
}

// SetBinary changes the binary to use (tests point it at a stub).
func (b *BaseManager) SetBinary(binary string) {
	b.binary = binary
}

// Executor returns the executor instance.
func (b *BaseManager) Executor() *executor.Executor {
	return b.exec
}

// dryRunFor switches the executor to dry-run for one call when requested
// and returns the function restoring the previous mode.
func (b *BaseManager) dryRunFor(dryRun bool) func() {
	prev := b.exec.DryRun()
	if dryRun && !prev {
		b.exec.SetDryRun(true)
	}
	return func() { b.exec.SetDryRun(prev) }
}
