package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fpm/pkg/manager"
)

// PrintPackages writes a list of packages to w as an aligned table.
func PrintPackages(w io.Writer, packages []manager.Package) {
	if len(packages) == 0 {
		FMuted(w, "No packages found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, columnTitle.Sprint("SOURCE\tNAME\tVERSION\tDESCRIPTION"))

	for _, pkg := range packages {
		source := PackageSource.Sprint("[" + pkg.Source + "]")
		name := PackageName.Sprint(pkg.Name)
		version := PackageVersion.Sprint(pkg.Version)

		desc := pkg.Description
		if len(desc) > 50 {
			desc = desc[:47] + "..."
		}

		if pkg.Installed {
			name = name + " " + Installed.Sprint("[installed]")
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", source, name, version, desc)
	}

	tw.Flush()
}

// PrintPackageInfo writes detailed package information to w.
func PrintPackageInfo(w io.Writer, info *manager.PackageInfo) {
	if info == nil {
		FError(w, "No package information available")
		return
	}

	FHeader(w, "Package Information")

	printField(w, "Name", info.Name)
	printField(w, "Version", info.Version)
	printField(w, "Source", info.Source)

	if info.Description != "" {
		printField(w, "Description", info.Description)
	}
	if info.Repository != "" {
		printField(w, "Repository", info.Repository)
	}
	if info.License != "" {
		printField(w, "License", info.License)
	}
	if info.URL != "" {
		printField(w, "URL", info.URL)
	}
	if info.Size != "" {
		printField(w, "Size", info.Size)
	}
	if len(info.Dependencies) > 0 {
		printField(w, "Dependencies", strings.Join(info.Dependencies, ", "))
	}
	if !info.InstallDate.IsZero() {
		printField(w, "Installed", info.InstallDate.Format("2006-01-02 15:04:05"))
	}
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s: %s\n", fieldLabel.Sprint(label), value)
}
