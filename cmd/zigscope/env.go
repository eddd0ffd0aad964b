package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zigscope/internal/driver"
	"zigscope/internal/project"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the configuration in effect",
	Long:  `Env prints the manifest that was found, the merged configuration as TOML and where the zig executable and the analysis cache live`,
	Args:  cobra.NoArgs,
	RunE:  runEnv,
}

func runEnv(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if s.found {
		fmt.Fprintf(out, "# manifest: %s\n", s.manifest.Path)
		fmt.Fprintf(out, "# root:     %s\n", s.manifest.Root)
	} else {
		fmt.Fprintln(out, "# manifest: none (defaults)")
	}
	if s.manifest.BuildRoot != "" {
		fmt.Fprintf(out, "# build:    %s\n", filepath.Join(s.manifest.BuildRoot, project.BuildFileName))
	}

	if exe, err := s.manifest.ZigExe(); err != nil {
		fmt.Fprintf(out, "# zig:      not found (%v)\n", err)
	} else {
		fmt.Fprintf(out, "# zig:      %s\n", exe)
	}

	if cache, err := driver.OpenDiskCache("zigscope"); err != nil {
		fmt.Fprintf(out, "# cache:    unavailable (%v)\n", err)
	} else {
		fmt.Fprintf(out, "# cache:    %s\n", cache.Dir())
		if st, err := cache.Stats(); err == nil {
			fmt.Fprintf(out, "#           %d entries, %d bytes\n", st.Entries, st.Bytes)
		}
	}

	cfg := s.manifest.Config
	cfg.Analysis.MaxDiagnostics = s.maxDiagnostics
	if err := cfg.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode config: %v\n", err)
		return err
	}
	return nil
}
