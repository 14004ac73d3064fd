package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/sagelearning/sage-api/internal/domain"
	"github.com/sagelearning/sage-api/internal/generation"
)

func TestToGenaiRole(t *testing.T) {
	t.Parallel()

	// The backend API takes a typed role, not a bare string.
	var userRole genai.Role = toGenaiRole(domain.ChatRoleUser)
	var modelRole genai.Role = toGenaiRole(domain.ChatRoleModel)

	assert.Equal(t, genai.Role(genai.RoleUser), userRole)
	assert.Equal(t, genai.Role(genai.RoleModel), modelRole)
}

func TestToResponseSchema(t *testing.T) {
	t.Parallel()

	t.Run("nil shape yields nil schema", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, toResponseSchema(nil))
	})

	t.Run("converts a nested list-of-objects shape", func(t *testing.T) {
		t.Parallel()

		shape := generation.Array(generation.Object(map[string]*generation.Shape{
			"question": generation.String(),
			"answer":   generation.String(),
			"weight":   generation.Integer(),
		}))

		schema := toResponseSchema(shape)
		require.NotNil(t, schema)
		assert.Equal(t, genai.TypeArray, schema.Type)

		item := schema.Items
		require.NotNil(t, item)
		assert.Equal(t, genai.TypeObject, item.Type)
		assert.ElementsMatch(t, []string{"question", "answer", "weight"}, item.Required)

		require.Contains(t, item.Properties, "question")
		assert.Equal(t, genai.TypeString, item.Properties["question"].Type)
		require.Contains(t, item.Properties, "weight")
		assert.Equal(t, genai.TypeInteger, item.Properties["weight"].Type)
	})
}
