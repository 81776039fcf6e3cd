package snapshot

import (
	"fmt"
	"sort"
	"strings"
)

// ChangeType represents the type of change between snapshots.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"   // only in the newer snapshot
	ChangeRemoved ChangeType = "removed" // only in the older snapshot
)

// Change represents a single package change between snapshots.
type Change struct {
	Type    ChangeType
	Package string
	Source  string
}

// String returns a human-readable description of the change.
func (c Change) String() string {
	switch c.Type {
	case ChangeAdded:
		return fmt.Sprintf("+ %s [%s]", c.Package, c.Source)
	case ChangeRemoved:
		return fmt.Sprintf("- %s [%s]", c.Package, c.Source)
	default:
		return fmt.Sprintf("? %s [%s]", c.Package, c.Source)
	}
}

// Diff represents the difference between two snapshots.
type Diff struct {
	Changes []Change
}

// IsEmpty returns true if there are no changes.
func (d *Diff) IsEmpty() bool {
	return len(d.Changes) == 0
}

// Added returns the changes of type ChangeAdded.
func (d *Diff) Added() []Change {
	return d.filter(ChangeAdded)
}

// Removed returns the changes of type ChangeRemoved.
func (d *Diff) Removed() []Change {
	return d.filter(ChangeRemoved)
}

func (d *Diff) filter(t ChangeType) []Change {
	var result []Change
	for _, c := range d.Changes {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}

// Summary returns a brief summary of the diff.
func (d *Diff) Summary() string {
	if d.IsEmpty() {
		return "No changes"
	}

	var parts []string
	if n := len(d.Added()); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d added", n))
	}
	if n := len(d.Removed()); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d removed", n))
	}
	return strings.Join(parts, ", ")
}

// Compare computes what changed going from the older snapshot to the
// newer one. Packages are matched by source and name.
func Compare(from, to *Snapshot) *Diff {
	diff := &Diff{Changes: []Change{}}

	fromSet := make(map[string]bool)
	for _, pkg := range from.Packages {
		fromSet[pkg.Source+"/"+pkg.Name] = true
	}
	toSet := make(map[string]bool)
	for _, pkg := range to.Packages {
		toSet[pkg.Source+"/"+pkg.Name] = true
	}

	for _, pkg := range to.Packages {
		if !fromSet[pkg.Source+"/"+pkg.Name] {
			diff.Changes = append(diff.Changes, Change{Type: ChangeAdded, Package: pkg.Name, Source: pkg.Source})
		}
	}
	for _, pkg := range from.Packages {
		if !toSet[pkg.Source+"/"+pkg.Name] {
			diff.Changes = append(diff.Changes, Change{Type: ChangeRemoved, Package: pkg.Name, Source: pkg.Source})
		}
	}

	sort.Slice(diff.Changes, func(i, j int) bool {
		a, b := diff.Changes[i], diff.Changes[j]
		if a.Type != b.Type {
			return a.Type == ChangeAdded
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Package < b.Package
	})

	return diff
}
