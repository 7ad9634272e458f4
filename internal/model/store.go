// Package model loads the four pre-trained artifacts the predictor depends on
// and exposes them as immutable estimators.
package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Role names the slot an artifact fills in the store.
type Role string

const (
	RoleFollowerRegressor Role = "follower_regressor"
	RoleLikesRegressor    Role = "likes_regressor"
	RoleScaler            Role = "scaler"
	RoleCluster           Role = "cluster"
)

// Roles lists every artifact slot in load order.
var Roles = []Role{RoleFollowerRegressor, RoleLikesRegressor, RoleScaler, RoleCluster}

// Paths locates the four artifact files.
type Paths struct {
	FollowerRegressor string `mapstructure:"follower_regressor"`
	LikesRegressor    string `mapstructure:"likes_regressor"`
	Scaler            string `mapstructure:"scaler"`
	Cluster           string `mapstructure:"cluster"`
}

// DefaultPaths returns the conventional file names inside dir.
func DefaultPaths(dir string) Paths {
	return Paths{
		FollowerRegressor: filepath.Join(dir, "follower_regressor.json"),
		LikesRegressor:    filepath.Join(dir, "likes_regressor.json"),
		Scaler:            filepath.Join(dir, "scaler.json"),
		Cluster:           filepath.Join(dir, "kmeans.json"),
	}
}

// For returns the path configured for role.
func (p Paths) For(role Role) string {
	switch role {
	case RoleFollowerRegressor:
		return p.FollowerRegressor
	case RoleLikesRegressor:
		return p.LikesRegressor
	case RoleScaler:
		return p.Scaler
	case RoleCluster:
		return p.Cluster
	}
	return ""
}

// ArtifactError reports which file failed to load.
type ArtifactError struct {
	Role Role
	Path string
	Err  error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("load %s artifact %s: %v", e.Role, e.Path, e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// ArtifactInfo describes a loaded artifact.
type ArtifactInfo struct {
	Role          Role   `json:"role" yaml:"role"`
	Path          string `json:"path" yaml:"path"`
	Kind          Kind   `json:"kind" yaml:"kind"`
	FormatVersion string `json:"format_version" yaml:"format_version"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Store is the read-only handle on the loaded estimators. It is safe for
// concurrent use because nothing mutates it after construction.
type Store struct {
	followers Regressor
	likes     Regressor
	scaler    Scaler
	cluster   Clusterer
	artifacts []ArtifactInfo
}

// NewStore wraps already-built estimators.
func NewStore(followers, likes Regressor, scaler Scaler, cluster Clusterer) *Store {
	return &Store{
		followers: followers,
		likes:     likes,
		scaler:    scaler,
		cluster:   cluster,
	}
}

// Load reads and validates all four artifacts. Any failure aborts the load;
// a partially initialized store is never returned.
func Load(paths Paths) (*Store, error) {
	start := time.Now()
	store := &Store{}

	for _, role := range Roles {
		path := paths.For(role)
		if path == "" {
			return nil, &ArtifactError{Role: role, Err: fmt.Errorf("no path configured")}
		}

		info, err := store.load(role, path)
		if err != nil {
			return nil, &ArtifactError{Role: role, Path: path, Err: err}
		}
		store.artifacts = append(store.artifacts, info)

		log.Debug().
			Str("role", string(role)).
			Str("path", path).
			Str("kind", string(info.Kind)).
			Str("format_version", info.FormatVersion).
			Msg("Artifact loaded")
	}

	log.Info().
		Int("artifacts", len(store.artifacts)).
		Dur("duration", time.Since(start)).
		Msg("Models loaded")

	return store, nil
}

// Inspect loads and checks a single artifact without building a store.
func Inspect(role Role, path string) (ArtifactInfo, error) {
	if path == "" {
		return ArtifactInfo{}, &ArtifactError{Role: role, Err: fmt.Errorf("no path configured")}
	}
	info, err := (&Store{}).load(role, path)
	if err != nil {
		return ArtifactInfo{}, &ArtifactError{Role: role, Path: path, Err: err}
	}
	return info, nil
}

func (s *Store) load(role Role, path string) (ArtifactInfo, error) {
	var header Header

	switch role {
	case RoleFollowerRegressor, RoleLikesRegressor:
		var a LinearRegressionArtifact
		if err := decodeFile(path, &a); err != nil {
			return ArtifactInfo{}, err
		}
		if err := a.validate(); err != nil {
			return ArtifactInfo{}, err
		}
		r := NewLinearRegressor(a.Coefficients, a.Intercept)
		if role == RoleFollowerRegressor {
			s.followers = r
		} else {
			s.likes = r
		}
		header = a.Header

	case RoleScaler:
		var a StandardScalerArtifact
		if err := decodeFile(path, &a); err != nil {
			return ArtifactInfo{}, err
		}
		if err := a.validate(); err != nil {
			return ArtifactInfo{}, err
		}
		s.scaler = NewStandardScaler(a.Mean, a.Scale)
		header = a.Header

	case RoleCluster:
		var a KMeansArtifact
		if err := decodeFile(path, &a); err != nil {
			return ArtifactInfo{}, err
		}
		if err := a.validate(); err != nil {
			return ArtifactInfo{}, err
		}
		s.cluster = NewKMeans(a.Centroids)
		header = a.Header

	default:
		return ArtifactInfo{}, fmt.Errorf("unknown role %q", role)
	}

	return ArtifactInfo{
		Role:          role,
		Path:          path,
		Kind:          header.Kind,
		FormatVersion: header.FormatVersion,
		Description:   header.Description,
	}, nil
}

// decodeFile picks the decoder from the file extension.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := gojson.Unmarshal(data, v); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported artifact extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
	return nil
}

// Followers returns the follower-count regressor.
func (s *Store) Followers() Regressor { return s.followers }

// Likes returns the likes regressor.
func (s *Store) Likes() Regressor { return s.likes }

// Scaler returns the feature scaler fitted alongside the cluster model.
func (s *Store) Scaler() Scaler { return s.scaler }

// Cluster returns the cluster assignment model.
func (s *Store) Cluster() Clusterer { return s.cluster }

// Artifacts describes the files the store was loaded from. It is empty for
// stores built with NewStore.
func (s *Store) Artifacts() []ArtifactInfo {
	return append([]ArtifactInfo(nil), s.artifacts...)
}
