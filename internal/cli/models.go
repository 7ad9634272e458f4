package cli

import (
	"fmt"

	"github.com/growthcast/growthcast/internal/execcontext"
	"github.com/growthcast/growthcast/internal/forecast"
	"github.com/growthcast/growthcast/internal/model"
	"github.com/growthcast/growthcast/internal/predictor"
	"github.com/growthcast/growthcast/internal/style"
	"github.com/spf13/viper"
)

// modelPaths resolves the artifact files from models.dir, letting the
// per-artifact keys override individual files.
func modelPaths() model.Paths {
	paths := model.DefaultPaths(viper.GetString("models.dir"))

	overrides := map[string]*string{
		"models.follower_regressor": &paths.FollowerRegressor,
		"models.likes_regressor":    &paths.LikesRegressor,
		"models.scaler":             &paths.Scaler,
		"models.cluster":            &paths.Cluster,
	}
	for key, dst := range overrides {
		if p := viper.GetString(key); p != "" {
			*dst = p
		}
	}

	return paths
}

// loadService loads the artifacts behind a spinner and wires the predictor.
func loadService(rc execcontext.RunContext, paths model.Paths, showSpinner bool) (*predictor.Service, error) {
	var spin style.Spinner
	if showSpinner {
		spin = style.NewSpinner(rc.StdErr)
		spin.SetSuffix(" Loading models...")
		spin.Start()
	}

	store, err := model.Load(paths)

	if spin != nil {
		if err == nil {
			spin.SetFinalMSG(fmt.Sprintf("%s Loaded %d model artifacts\n", style.SuccessIcon(), len(store.Artifacts())))
		}
		spin.Stop()
	}

	if err != nil {
		return nil, err
	}
	return predictor.New(store, forecast.DefaultParams()), nil
}
