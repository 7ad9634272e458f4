package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/growthcast/growthcast/internal/execcontext"
	"github.com/growthcast/growthcast/internal/model"
	"github.com/growthcast/growthcast/internal/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [models-dir]",
	Short: "Validate the model artifacts",
	Long: `Check the four model artifacts the predictor needs before deploying them.

This command checks, for every artifact:
- the file exists and parses as JSON or YAML
- the estimator kind matches its role
- the format version is supported
- the feature names and dimensions match the predictor's input

Examples:
  growthcast validate                    # Validate the configured models
  growthcast validate ./exported-models  # Validate another directory
  growthcast validate --output json      # JSON output for CI/CD`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		paths := modelPaths()
		if len(args) == 1 {
			paths = model.DefaultPaths(args[0])
		}

		summary := validateArtifacts(newRunContext(cmd), paths)
		if summary.Invalid > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// ValidationResult represents the result of checking one artifact
type ValidationResult struct {
	Role     model.Role          `json:"role" yaml:"role"`
	File     string              `json:"file" yaml:"file"`
	Valid    bool                `json:"valid" yaml:"valid"`
	Artifact *model.ArtifactInfo `json:"artifact,omitempty" yaml:"artifact,omitempty"`
	Duration time.Duration       `json:"duration_ms" yaml:"duration_ms"`
	Error    string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// ValidationSummary represents the summary of all validation results
type ValidationSummary struct {
	Total    int                `json:"total" yaml:"total"`
	Valid    int                `json:"valid" yaml:"valid"`
	Invalid  int                `json:"invalid" yaml:"invalid"`
	Duration time.Duration      `json:"total_duration_ms" yaml:"total_duration_ms"`
	Results  []ValidationResult `json:"results" yaml:"results"`
}

func validateArtifacts(rc execcontext.RunContext, paths model.Paths) ValidationSummary {
	start := time.Now()
	summary := ValidationSummary{Results: make([]ValidationResult, 0, len(model.Roles))}

	for _, role := range model.Roles {
		result := validateArtifact(role, paths.For(role))
		summary.Results = append(summary.Results, result)
		summary.Total++
		if result.Valid {
			summary.Valid++
		} else {
			summary.Invalid++
		}

		rc.Logger().Debug().
			Str("role", string(role)).
			Str("file", result.File).
			Bool("valid", result.Valid).
			Msg("Artifact checked")
	}
	summary.Duration = time.Since(start)

	switch viper.GetString("output") {
	case "json":
		style.PrintJSON(rc, summary)
	case "yaml":
		style.PrintYAML(rc, summary)
	default:
		printValidationSummary(rc, summary)
	}

	return summary
}

func validateArtifact(role model.Role, path string) ValidationResult {
	start := time.Now()
	result := ValidationResult{Role: role, File: path}

	info, err := model.Inspect(role, path)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Valid = true
	result.Artifact = &info
	return result
}

func printValidationSummary(rc execcontext.RunContext, summary ValidationSummary) {
	quiet := viper.GetBool("quiet")

	for _, result := range summary.Results {
		if result.Valid {
			if quiet {
				continue
			}
			style.Success(rc, fmt.Sprintf("%s %s (%s %s)",
				result.Role, style.FormatFilePath(result.File), result.Artifact.Kind, result.Artifact.FormatVersion))
			continue
		}
		style.Error(rc, fmt.Sprintf("%s %s", result.Role, style.FormatFilePath(result.File)))
		rc.Printf("  %s\n", result.Error)
	}

	if summary.Invalid == 0 {
		if !quiet {
			rc.Printf("\n%s All %d artifacts are valid (%s)\n", style.SuccessIcon(), summary.Total, summary.Duration.Round(time.Millisecond))
		}
		return
	}
	rc.Printf("\n%s %d of %d artifacts are invalid\n", style.ErrorIcon(), summary.Invalid, summary.Total)
}
