package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/Masterminds/semver/v3"
	"github.com/growthcast/growthcast/internal/features"
)

// Kind identifies the estimator an artifact file was exported from.
type Kind string

const (
	KindLinearRegression Kind = "linear_regression"
	KindStandardScaler   Kind = "standard_scaler"
	KindKMeans           Kind = "kmeans"
)

// SupportedFormat is the semver constraint artifact format_version must satisfy.
const SupportedFormat = "^1.0"

var (
	// ErrUnsupportedFormat is returned when format_version falls outside SupportedFormat.
	ErrUnsupportedFormat = errors.New("unsupported artifact format version")
	// ErrKindMismatch is returned when a file holds a different estimator than its role needs.
	ErrKindMismatch = errors.New("artifact kind mismatch")
)

// Header is shared by every artifact document.
type Header struct {
	// Kind of estimator serialized in this file
	Kind Kind `json:"kind" yaml:"kind" jsonschema:"enum=linear_regression,enum=standard_scaler,enum=kmeans"`
	// Semantic version of the export format
	FormatVersion string `json:"format_version" yaml:"format_version" jsonschema:"example=1.0.0"`
	// Column order the estimator was fitted on
	FeatureNames []string `json:"feature_names,omitempty" yaml:"feature_names,omitempty"`
	// Free-form note written by the exporter
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func (h Header) check(want Kind) error {
	if h.Kind != want {
		return fmt.Errorf("%w: expected %s, got %q", ErrKindMismatch, want, h.Kind)
	}

	version, err := semver.NewVersion(h.FormatVersion)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedFormat, h.FormatVersion, err)
	}
	constraint, err := semver.NewConstraint(SupportedFormat)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedFormat, version, SupportedFormat)
	}

	if err := features.CheckNames(h.FeatureNames); err != nil {
		return fmt.Errorf("feature_names: %w", err)
	}
	return nil
}

// LinearRegressionArtifact holds an ordinary least squares fit.
type LinearRegressionArtifact struct {
	Header `yaml:",inline"`
	// One weight per feature, in feature_names order
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
	// Bias term
	Intercept float64 `json:"intercept" yaml:"intercept"`
}

func (a *LinearRegressionArtifact) validate() error {
	if err := a.Header.check(KindLinearRegression); err != nil {
		return err
	}
	if err := checkVector("coefficients", a.Coefficients); err != nil {
		return err
	}
	if !isFinite(a.Intercept) {
		return fmt.Errorf("intercept is not finite")
	}
	return nil
}

// StandardScalerArtifact holds the per-feature mean and standard deviation.
type StandardScalerArtifact struct {
	Header `yaml:",inline"`
	// Training mean per feature
	Mean []float64 `json:"mean" yaml:"mean"`
	// Training standard deviation per feature
	Scale []float64 `json:"scale" yaml:"scale"`
}

func (a *StandardScalerArtifact) validate() error {
	if err := a.Header.check(KindStandardScaler); err != nil {
		return err
	}
	if err := checkVector("mean", a.Mean); err != nil {
		return err
	}
	return checkVector("scale", a.Scale)
}

// KMeansArtifact holds fitted cluster centers in standardized space.
type KMeansArtifact struct {
	Header `yaml:",inline"`
	// Cluster centers; the index of each center is its cluster id
	Centroids [][]float64 `json:"centroids" yaml:"centroids" jsonschema:"minItems=1"`
}

func (a *KMeansArtifact) validate() error {
	if err := a.Header.check(KindKMeans); err != nil {
		return err
	}
	if len(a.Centroids) == 0 {
		return fmt.Errorf("centroids: at least one cluster center is required")
	}
	for i, c := range a.Centroids {
		if err := checkVector(fmt.Sprintf("centroids[%d]", i), c); err != nil {
			return err
		}
	}
	return nil
}

func checkVector(field string, values []float64) error {
	if len(values) != features.Dimensions {
		return fmt.Errorf("%s: expected %d values, got %d", field, features.Dimensions, len(values))
	}
	for i, v := range values {
		if !isFinite(v) {
			return fmt.Errorf("%s[%d] is not finite", field, i)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
