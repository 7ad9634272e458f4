package model

import (
	"reflect"

	gojson "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/stoewer/go-strcase"
)

func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		KeyNamer: strcase.SnakeCase,
		Namer: func(t reflect.Type) string {
			return strcase.SnakeCase(t.Name())
		},
		ExpandedStruct: true,
	}
}

// Schemas returns the JSON Schema of each artifact kind.
func Schemas() map[Kind]*jsonschema.Schema {
	r := newReflector()
	return map[Kind]*jsonschema.Schema{
		KindLinearRegression: r.Reflect(&LinearRegressionArtifact{}),
		KindStandardScaler:   r.Reflect(&StandardScalerArtifact{}),
		KindKMeans:           r.Reflect(&KMeansArtifact{}),
	}
}

// SchemaJSON renders Schemas as indented JSON.
func SchemaJSON() ([]byte, error) {
	return gojson.MarshalIndent(Schemas(), "", "  ")
}
