package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/GitDDAN/padel-palms-proposal/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Info()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "pandp\n")
			fmt.Fprintf(w, "  Version:    %s\n", info.Version)
			fmt.Fprintf(w, "  Commit:     %s\n", info.GitCommit)
			fmt.Fprintf(w, "  Built:      %s\n", info.BuildTime)
			fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
