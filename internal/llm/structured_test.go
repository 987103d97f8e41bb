package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testTask struct {
	Title string `json:"title"`
	Hours int    `json:"hours"`
}

func TestExtractJSON_CleanObject(t *testing.T) {
	raw := `{"title":"Run 2 miles","hours":1}`
	result, err := ExtractJSON[testTask](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Run 2 miles", result.Title)
	assert.Equal(t, 1, result.Hours)
}

func TestExtractJSON_CleanArray(t *testing.T) {
	raw := `[{"title":"Outline the post","hours":2},{"title":"Write the draft","hours":4}]`
	result, err := ExtractJSON[[]testTask](raw, nil)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Write the draft", result[1].Title)
}

func TestExtractJSON_FencedArray(t *testing.T) {
	raw := "```json\n[{\"title\":\"Read chapters 1-4\",\"hours\":3}]\n```"
	result, err := ExtractJSON[[]testTask](raw, nil)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Read chapters 1-4", result[0].Title)
}

func TestExtractJSON_SurroundingText(t *testing.T) {
	raw := "Here is your plan:\n[{\"title\":\"Set up VS Code\",\"hours\":1}]\nGood luck!"
	result, err := ExtractJSON[[]testTask](raw, nil)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Set up VS Code", result[0].Title)
}

func TestExtractJSON_NestedBrackets(t *testing.T) {
	type wrapped struct {
		Tasks []testTask `json:"tasks"`
	}
	raw := `{"tasks":[{"title":"Research competitors","hours":2}]}`
	result, err := ExtractJSON[wrapped](raw, nil)
	require.NoError(t, err)
	require.Len(t, result.Tasks, 1)
	assert.Equal(t, "Research competitors", result.Tasks[0].Title)
}

func TestExtractJSON_BracketsInsideStrings(t *testing.T) {
	raw := `[{"title":"Review [draft] notes {v2}","hours":1}]`
	result, err := ExtractJSON[[]testTask](raw, nil)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Review [draft] notes {v2}", result[0].Title)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	raw := "I cannot help with that."
	_, err := ExtractJSON[[]testTask](raw, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	raw := `[{"title":"ok", broken}]`
	_, err := ExtractJSON[[]testTask](raw, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_StripsComments(t *testing.T) {
	raw := "[\n  {\"title\":\"Write 5 exercises\",\"hours\":2} // week one\n]"
	result, err := ExtractJSON[[]testTask](raw, nil)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 2, result[0].Hours)
}

func TestExtractJSON_ValidationFailure(t *testing.T) {
	raw := `{"title":"x","hours":900}`
	validator := func(p testTask) error {
		if p.Hours > 8 {
			return fmt.Errorf("hours out of range: %d", p.Hours)
		}
		return nil
	}
	_, err := ExtractJSON(raw, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestExtractJSON_ValidationSuccess(t *testing.T) {
	raw := `{"title":"Plan the route","hours":2}`
	validator := func(p testTask) error {
		if p.Hours > 8 {
			return fmt.Errorf("hours out of range")
		}
		return nil
	}
	result, err := ExtractJSON(raw, validator)
	require.NoError(t, err)
	assert.Equal(t, "Plan the route", result.Title)
}
