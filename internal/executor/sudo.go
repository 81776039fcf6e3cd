package executor

import "errors"

// IsRoot returns true if the current process is running as root.
func IsRoot() bool {
	return isRoot()
}

// CanElevate returns true if the process can elevate privileges.
func CanElevate() bool {
	return isRoot() || hasSudo()
}

// CheckPrivileges returns an error if privileges cannot be elevated when needed.
func CheckPrivileges(needsSudo bool) error {
	if !needsSudo {
		return nil
	}
	if !CanElevate() {
		return ErrNoPrivileges
	}
	return nil
}

// ErrNoPrivileges is returned when an operation requires root but cannot elevate.
var ErrNoPrivileges = errors.New("this operation requires root privileges, but neither running as root nor sudo is available")
