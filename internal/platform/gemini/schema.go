package gemini

import (
	"github.com/sagelearning/sage-api/internal/generation"
	"google.golang.org/genai"
)

// toResponseSchema converts a generation.Shape constraint into the genai
// response schema attached to a structured request. A nil shape yields a
// nil schema (plain-text generation).
func toResponseSchema(shape *generation.Shape) *genai.Schema {
	if shape == nil {
		return nil
	}

	schema := &genai.Schema{}

	switch shape.Kind {
	case generation.KindObject:
		schema.Type = genai.TypeObject
		if len(shape.Properties) > 0 {
			schema.Properties = make(map[string]*genai.Schema, len(shape.Properties))
			for name, prop := range shape.Properties {
				schema.Properties[name] = toResponseSchema(prop)
			}
		}
		schema.Required = shape.Required

	case generation.KindArray:
		schema.Type = genai.TypeArray
		schema.Items = toResponseSchema(shape.Items)

	case generation.KindInteger:
		schema.Type = genai.TypeInteger

	default: // generation.KindString
		schema.Type = genai.TypeString
	}

	return schema
}
