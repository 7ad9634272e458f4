package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/growthcast/growthcast/internal/model"
	"github.com/growthcast/growthcast/internal/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build-time variables (set by goreleaser or build scripts)
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	BuiltBy   = "unknown"
	GoVersion = runtime.Version()
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version information for growthcast, including build details and the supported artifact format.`,
	Example: `
  growthcast version               # Show basic version info
  growthcast version --output json # Show version info as JSON`,
	Run: func(cmd *cobra.Command, args []string) {
		showVersion(cmd)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// VersionInfo represents version information
type VersionInfo struct {
	Version        string `json:"version" yaml:"version"`
	Commit         string `json:"commit" yaml:"commit"`
	Date           string `json:"date" yaml:"date"`
	BuiltBy        string `json:"built_by" yaml:"built_by"`
	GoVersion      string `json:"go_version" yaml:"go_version"`
	Platform       string `json:"platform" yaml:"platform"`
	ArtifactFormat string `json:"artifact_format" yaml:"artifact_format"`
}

func newVersionInfo() VersionInfo {
	return VersionInfo{
		Version:        Version,
		Commit:         Commit,
		Date:           Date,
		BuiltBy:        BuiltBy,
		GoVersion:      GoVersion,
		Platform:       fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		ArtifactFormat: model.SupportedFormat,
	}
}

func showVersion(cmd *cobra.Command) {
	versionInfo := newVersionInfo()

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(cmd.OutOrStdout(), versionInfo)
	case "yaml":
		style.PrintYAML(cmd.OutOrStdout(), versionInfo)
	default:
		printText(cmd.OutOrStdout(), versionInfo)
	}
}

func printText(w io.Writer, info VersionInfo) {
	if viper.GetBool("verbose") {
		fmt.Fprintf(w, "growthcast %s\n  commit:   %s\n  built:    %s by %s\n  go:       %s\n  platform: %s\n  artifact format: %s\n",
			info.Version, info.Commit, info.Date, info.BuiltBy, info.GoVersion, info.Platform, info.ArtifactFormat)
		return
	}
	fmt.Fprintf(w, "%s\n", info.Version)
}
