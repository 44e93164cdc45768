package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleArgs struct {
	A string `json:"a" description:"Field A"`
	B *int   `json:"b" description:"Optional pointer field"`
	C int    `json:"c,omitempty" description:"Omit empty field"`
}

func TestFromStruct(t *testing.T) {
	s := FromStruct(sampleArgs{})

	props, ok := s["properties"].(map[string]any)
	assert.True(t, ok)
	assert.Contains(t, props, "a")
	assert.Contains(t, props, "b")
	assert.Contains(t, props, "c")

	aSchema := props["a"].(map[string]any)
	assert.Equal(t, "string", aSchema["type"])
	assert.Equal(t, "Field A", aSchema["description"])

	// Required only includes non-pointer, non-omitempty exported fields
	req, _ := s["required"].([]string)
	assert.ElementsMatch(t, []string{"a"}, req)
}

func TestValidate(t *testing.T) {
	s := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
		},
		// []any mirrors the JSON decoded schema shape
		"required": []any{"x"},
	}

	assert.NoError(t, Validate(map[string]any{"x": 5}, s))

	err := Validate(map[string]any{}, s)
	assert.Error(t, err)
	if vErr, ok := err.(*ValidationError); ok {
		assert.Equal(t, "x", vErr.Field)
	} else {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	err = Validate(map[string]any{"x": "not-int"}, s)
	assert.Error(t, err)
	if vErr, ok := err.(*ValidationError); ok {
		assert.Contains(t, vErr.Message, "expected type integer")
	} else {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestValidateJSONNumbersAsIntegers(t *testing.T) {
	s := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"n": map[string]any{"type": "integer"},
		},
	}

	// JSON decoding produces float64; whole values pass, fractional fail.
	assert.NoError(t, Validate(map[string]any{"n": float64(7)}, s))
	assert.Error(t, Validate(map[string]any{"n": 7.5}, s))
}

func TestValidateAllowsExtraFields(t *testing.T) {
	s := map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}

	assert.NoError(t, Validate(map[string]any{"surprise": true}, s))
}
