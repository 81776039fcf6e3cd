package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// The list format is one dnf package name per line. Flatpak applications
// are written as "# flatpak:<app-id>" comments, so tools that skip comment
// lines still read the file as a plain dnf list.
const (
	dnfHeader     = "# DNF Packages"
	flatpakHeader = "# Flatpak Applications"
	flatpakPrefix = "# flatpak:"
)

// Write writes snap to w in the package list format.
func Write(w io.Writer, snap *Snapshot) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# fpm package list, exported %s\n", snap.Timestamp.Format(time.RFC3339))
	fmt.Fprintln(bw, dnfHeader)
	for _, name := range snap.Names(SourceDNF) {
		fmt.Fprintln(bw, name)
	}

	if apps := snap.Names(SourceFlatpak); len(apps) > 0 {
		fmt.Fprintln(bw, flatpakHeader)
		for _, app := range apps {
			fmt.Fprintln(bw, flatpakPrefix+app)
		}
	}

	return bw.Flush()
}

// Read parses a package list. Blank lines and comments other than flatpak
// entries are ignored; duplicates are dropped.
func Read(r io.Reader) (*Snapshot, error) {
	snap := &Snapshot{Timestamp: time.Now()}
	seen := make(map[string]bool)

	add := func(name, source string) {
		key := source + "/" + name
		if name == "" || seen[key] {
			return
		}
		seen[key] = true
		snap.Packages = append(snap.Packages, PackageState{Name: name, Source: source})
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
		case strings.HasPrefix(line, flatpakPrefix):
			add(strings.TrimSpace(strings.TrimPrefix(line, flatpakPrefix)), SourceFlatpak)
		case strings.HasPrefix(line, "#"):
		default:
			// tolerate "name version" lines from other tools
			add(strings.Fields(line)[0], SourceDNF)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return snap, nil
}

// Export writes snap to the file at path.
func Export(path string, snap *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Write(f, snap); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Load reads a package list from the file at path.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, err
	}
	defer f.Close()

	snap, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return snap, nil
}
