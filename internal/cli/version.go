package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gitscribe/gitscribe/internal/build"
)

// SourceURL is the project homepage shown by the version command.
const SourceURL = "https://github.com/gitscribe/gitscribe"

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information",
	Long:    "Display the gitscribe version, commit, build date and Go runtime.",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		printVersion(cmd.OutOrStdout(), plain)
	},
}

func init() {
	versionCmd.GroupID = GroupGettingStarted
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("plain", false, "Print only the version number")
}

func printVersion(out io.Writer, plain bool) {
	if plain {
		fmt.Fprintln(out, build.Version)
		return
	}

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	version := build.Version
	if build.IsDevBuild() {
		version += " " + dim("(development build)")
	}
	fmt.Fprintf(out, "%s %s\n", bold("gitscribe"), version)
	fmt.Fprintf(out, "  %-8s %s\n", "commit", build.Commit)
	fmt.Fprintf(out, "  %-8s %s\n", "built", build.BuildDate)
	fmt.Fprintf(out, "  %-8s %s %s/%s\n", "go", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "  %-8s %s\n", "source", SourceURL)
}
