package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/growthcast/growthcast/internal/engagement"
	"github.com/growthcast/growthcast/internal/execcontext"
	"github.com/growthcast/growthcast/internal/forecast"
	"github.com/growthcast/growthcast/internal/model"
	"github.com/growthcast/growthcast/internal/predictor"
	"github.com/growthcast/growthcast/internal/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var predictInput = predictor.DefaultInput()

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict followers, likes and influencer category",
	Long: `Run one prediction from the command line.

The six account statistics go through the same pipeline as the web form:
the 60-day engagement rate is derived from the window counts, the follower
and likes regressors are scaled to the chosen horizon and capped, and the
account is assigned an influencer tier with matching recommendations.

Examples:
  growthcast predict --avg-likes 50 --recent-likes 40 --posts 20 \
    --engagements 500 --followers 1000 --recent-posts 10
  growthcast predict --years 5 --output json ...   # JSON output for automation`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		rc := newRunContext(cmd)
		if err := runPredict(rc, modelPaths(), predictInput, viper.GetString("output")); err != nil {
			printPredictError(rc, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().Int64Var(&predictInput.AvgLikes, "avg-likes", predictInput.AvgLikes, "average likes per post")
	predictCmd.Flags().Int64Var(&predictInput.NewPostAvgLikes, "recent-likes", predictInput.NewPostAvgLikes, "average likes on recent posts")
	predictCmd.Flags().Int64Var(&predictInput.Posts, "posts", predictInput.Posts, "total number of posts")
	predictCmd.Flags().Int64Var(&predictInput.TotalEngagements, "engagements", predictInput.TotalEngagements, "total likes + comments in the last 60 days")
	predictCmd.Flags().Int64Var(&predictInput.Followers, "followers", predictInput.Followers, "current number of followers")
	predictCmd.Flags().Int64Var(&predictInput.PostsInWindow, "recent-posts", predictInput.PostsInWindow, "number of posts in the last 60 days")
	predictCmd.Flags().IntVarP(&predictInput.Years, "years", "y", predictInput.Years,
		fmt.Sprintf("prediction horizon in years (%d-%d)", forecast.MinHorizon, forecast.MaxHorizon))
}

// runPredict validates the input before touching the model files, so bad
// flags fail fast.
func runPredict(rc execcontext.RunContext, paths model.Paths, in predictor.Input, format string) error {
	if err := in.Validate(); err != nil {
		return err
	}

	showSpinner := format == "text" && !viper.GetBool("quiet")
	svc, err := loadService(rc, paths, showSpinner)
	if err != nil {
		return err
	}

	result, err := svc.Predict(rc.Context, in)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		style.PrintJSON(rc, result)
	case "yaml":
		style.PrintYAML(rc, result)
	default:
		printPrediction(rc, result)
	}
	return nil
}

func printPrediction(rc execcontext.RunContext, result *predictor.Result) {
	est := result.Estimate

	rc.Printf("Estimated 60-Day Engagement Rate: %s\n\n", style.AccentStyle.Render(engagement.Format(result.EngagementRate)))

	rc.Printf("%s\n", style.TitleStyle.Render("Prediction Result"))
	style.Success(rc, fmt.Sprintf("Estimated Followers After %d Year(s): %s", est.Horizon, style.FormatCount(est.Followers)))
	style.Success(rc, fmt.Sprintf("Estimated Likes After %d Year(s): %s", est.Horizon, style.FormatCount(est.Likes)))
	style.Info(rc, fmt.Sprintf("Influencer Category: %s", result.Category))
	if viper.GetBool("verbose") {
		rc.Printf("%s\n", style.MutedStyle.Render(fmt.Sprintf(
			"  raw followers %.1f (cap %s), raw likes %.1f (cap %s)",
			est.RawFollowers, style.FormatCount(est.FollowerCeiling),
			est.RawLikes, style.FormatCount(est.LikesCeiling))))
	}

	rc.Printf("\n%s\n", style.TitleStyle.Render("Personalized Recommendations"))
	rc.Printf("%s\n", result.Recommendation.Text)
	rc.Printf("%s\n", style.InfoBoxStyle.Width(76).Render(result.Note))

	bars := make([]style.Bar, len(result.Summary))
	for i, item := range result.Summary {
		bars[i] = style.Bar{Label: item.Label, Value: item.Value}
	}
	rc.Printf("%s\n", style.TitleStyle.Render("Your Input Summary"))
	rc.Printf("%s", style.BarChart(bars, 40))
}

// printPredictError lists every rejected field for validation failures.
func printPredictError(rc execcontext.RunContext, err error) {
	var ve *predictor.ValidationError
	if errors.As(err, &ve) {
		style.Error(rc.StdErr, "Invalid input")
		lines := make([]string, len(ve.Issues))
		for i, issue := range ve.Issues {
			lines[i] = "  " + issue.Message
		}
		fmt.Fprintln(rc.StdErr, strings.Join(lines, "\n"))
		return
	}
	style.Error(rc.StdErr, err.Error())
}
