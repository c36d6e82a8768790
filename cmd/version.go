package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the triviaz version and VCS revision",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString(readRevision()))
	},
}

func versionString(revision string) string {
	if revision == "" {
		return "triviaz " + version
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	return fmt.Sprintf("triviaz %s (%s)", version, revision)
}

// readRevision returns the VCS revision stamped by the Go toolchain, if any.
func readRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
