package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name: "test-question-list",
		Definition: map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question_text": map[string]any{"type": "string"},
					"difficulty_level": map[string]any{
						"type": "string",
						"enum": []any{"Easy", "Medium", "Hard"},
					},
				},
				"required": []any{"question_text", "difficulty_level"},
			},
		},
	}
}

func TestValidateResponse_NilSchemaAlwaysPasses(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_ValidArray(t *testing.T) {
	raw := json.RawMessage(`[{"question_text":"What is F=ma?","difficulty_level":"Easy"}]`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`{"oops"`))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestValidateResponse_MissingRequiredKey(t *testing.T) {
	raw := json.RawMessage(`[{"question_text":"incomplete"}]`)
	err := validateResponse(testSchema(), raw)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestValidateResponse_InvalidEnumValue(t *testing.T) {
	raw := json.RawMessage(`[{"question_text":"q","difficulty_level":"Impossible"}]`)
	err := validateResponse(testSchema(), raw)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T", err)
	}
}

func TestValidateResponse_SchemaCompiledOnce(t *testing.T) {
	raw := json.RawMessage(`[{"question_text":"q","difficulty_level":"Hard"}]`)
	s := testSchema()
	for range 3 {
		if err := validateResponse(s, raw); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, ok := compiledSchemas.Load(s.Name); !ok {
		t.Fatal("expected schema to be cached")
	}
}
