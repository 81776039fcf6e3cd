// Package snapshot captures the set of user-installed packages so it can
// be exported to a file and installed again on another system.
package snapshot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fpm/pkg/manager"
)

// Well-known source names.
const (
	SourceDNF     = "dnf"
	SourceFlatpak = "flatpak"
)

// PackageState represents a single installed package.
type PackageState struct {
	Name    string
	Version string
	Source  string // manager that installed it
}

// Snapshot is a set of installed packages at a point in time.
type Snapshot struct {
	Timestamp time.Time
	Packages  []PackageState
}

// Source lists the packages one manager contributes to a snapshot.
// Failures of an Optional source are skipped.
type Source struct {
	Name     string
	List     func(ctx context.Context) ([]manager.Package, error)
	Optional bool
}

// Capture lists every source and returns the combined, sorted snapshot.
func Capture(ctx context.Context, sources ...Source) (*Snapshot, error) {
	snap := &Snapshot{Timestamp: time.Now()}

	for _, src := range sources {
		packages, err := src.List(ctx)
		if err != nil {
			if src.Optional {
				continue
			}
			return nil, fmt.Errorf("failed to list %s packages: %w", src.Name, err)
		}

		for _, pkg := range packages {
			snap.Packages = append(snap.Packages, PackageState{
				Name:    pkg.Name,
				Version: pkg.Version,
				Source:  src.Name,
			})
		}
	}

	snap.sort()
	return snap, nil
}

func (s *Snapshot) sort() {
	sort.Slice(s.Packages, func(i, j int) bool {
		if s.Packages[i].Source != s.Packages[j].Source {
			return s.Packages[i].Source < s.Packages[j].Source
		}
		return s.Packages[i].Name < s.Packages[j].Name
	})
}

// PackageCount returns the total number of packages in the snapshot.
func (s *Snapshot) PackageCount() int {
	return len(s.Packages)
}

// Names returns the package names from source, in snapshot order.
func (s *Snapshot) Names(source string) []string {
	var names []string
	for _, pkg := range s.Packages {
		if pkg.Source == source {
			names = append(names, pkg.Name)
		}
	}
	return names
}

// HasPackage checks if a package is in this snapshot.
func (s *Snapshot) HasPackage(name, source string) bool {
	for _, pkg := range s.Packages {
		if pkg.Name == name && pkg.Source == source {
			return true
		}
	}
	return false
}
