package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// Version information for the zigscope CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	Major = "0"
	Minor = "3"
	Patch = "0"
	Tag   = "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Version is the semantic version, colored when color output is enabled.
func Version() string {
	return versionMajorColor.Sprint(Major) + "." + versionMinorColor.Sprint(Minor) + "." + versionPatchColor.Sprint(Patch) + Tag
}

// Plain is Version without colors.
func Plain() string {
	return Major + "." + Minor + "." + Patch + Tag
}

// Long adds commit, build date and the Go runtime.
func Long() string {
	var sb strings.Builder
	sb.WriteString("zigscope " + Version())
	if GitCommit != "" {
		fmt.Fprintf(&sb, " (%s)", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&sb, " built %s", BuildDate)
	}
	fmt.Fprintf(&sb, " %s/%s %s", runtime.GOOS, runtime.GOARCH, runtime.Version())
	return sb.String()
}
