package executor

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRoot(t *testing.T) {
	assert.Equal(t, os.Geteuid() == 0, IsRoot())
}

func TestCanElevate(t *testing.T) {
	if IsRoot() || hasSudo() {
		assert.True(t, CanElevate())
	} else {
		assert.False(t, CanElevate())
	}
}

func TestCheckPrivileges(t *testing.T) {
	assert.NoError(t, CheckPrivileges(false))

	if CanElevate() {
		assert.NoError(t, CheckPrivileges(true))
	} else {
		assert.ErrorIs(t, CheckPrivileges(true), ErrNoPrivileges)
	}
}

func TestErrNoPrivileges(t *testing.T) {
	assert.Contains(t, ErrNoPrivileges.Error(), "root")
}
