package ui

import (
	"bytes"
	"testing"

	"fpm/pkg/manager"

	"github.com/stretchr/testify/assert"
)

func init() {
	Init(false, false)
}

func TestMessageWriters(t *testing.T) {
	var buf bytes.Buffer

	FWarning(&buf, "cannot roll back %s", "update")
	FInfo(&buf, "removing %d packages", 2)
	FMuted(&buf, "  - %s", "vim")

	assert.Equal(t, "[WARN] cannot roll back update\n-> removing 2 packages\n  - vim\n", buf.String())
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		answer     string
		defaultYes bool
		want       bool
	}{
		{"y", false, true},
		{"YES", false, true},
		{" n ", true, false},
		{"", true, true},
		{"", false, false},
		{"maybe", true, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseAnswer(tt.answer, tt.defaultYes), "answer %q", tt.answer)
	}
}

func TestPrintPackages(t *testing.T) {
	var buf bytes.Buffer

	PrintPackages(&buf, []manager.Package{
		{Name: "vim-enhanced", Version: "9.1.0", Source: "dnf", Installed: true},
		{Name: "neovim", Description: "Vim-fork focused on extensibility and agility and lots more words", Source: "dnf"},
	})

	out := buf.String()
	assert.Contains(t, out, "[dnf]")
	assert.Contains(t, out, "vim-enhanced [installed]")
	assert.Contains(t, out, "...")
}

func TestPrintPackagesEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintPackages(&buf, nil)
	assert.Equal(t, "No packages found\n", buf.String())
}

func TestPrintPackageInfo(t *testing.T) {
	var buf bytes.Buffer

	PrintPackageInfo(&buf, &manager.PackageInfo{
		Package:    manager.Package{Name: "git", Version: "2.47.0-1.fc41", Source: "dnf"},
		Repository: "updates",
		License:    "GPL-2.0-only",
	})

	out := buf.String()
	assert.Contains(t, out, "Package Information")
	assert.Contains(t, out, "Name: git")
	assert.Contains(t, out, "Repository: updates")
	assert.NotContains(t, out, "URL")
}
