package llm

import "testing"

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash-lite", "gemini-2.5-flash-lite"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiContents_AttachesImageToUserMessage(t *testing.T) {
	req := Request{
		Messages: []Message{
			{Role: RoleUser, Content: "generate a question"},
		},
		Images: []ImageAttachment{
			{MIMEType: "image/jpeg", Data: []byte{0xFF, 0xD8}},
		},
	}

	contents := buildGeminiContents(req)
	if len(contents) != 1 {
		t.Fatalf("expected 1 content, got %d", len(contents))
	}
	if contents[0].Role != "user" {
		t.Fatalf("expected user role, got %s", contents[0].Role)
	}
	if len(contents[0].Parts) != 2 {
		t.Fatalf("expected text + image parts, got %d", len(contents[0].Parts))
	}
	blob := contents[0].Parts[1].InlineData
	if blob == nil || blob.MIMEType != "image/jpeg" {
		t.Fatalf("expected inline jpeg blob, got %+v", contents[0].Parts[1])
	}
}

func TestBuildGeminiContents_ImageAttachedOnlyOnce(t *testing.T) {
	req := Request{
		Messages: []Message{
			{Role: RoleUser, Content: "first"},
			{Role: RoleAssistant, Content: "ok"},
			{Role: RoleUser, Content: "second"},
		},
		Images: []ImageAttachment{{MIMEType: "image/png", Data: []byte{1}}},
	}

	contents := buildGeminiContents(req)
	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}
	if len(contents[0].Parts) != 2 {
		t.Fatalf("expected image on first user message, got %d parts", len(contents[0].Parts))
	}
	if len(contents[2].Parts) != 1 {
		t.Fatalf("expected no image on later messages, got %d parts", len(contents[2].Parts))
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question_text": map[string]any{"type": "string"},
				"correct_answer_index": map[string]any{
					"type": "integer",
				},
				"difficulty_level": map[string]any{
					"type": "string",
					"enum": []any{"Easy", "Medium", "Hard"},
				},
				"option_text": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"question_text", "option_text"},
		},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "ARRAY" {
		t.Fatalf("expected ARRAY type, got %s", schema.Type)
	}
	item := schema.Items
	if item == nil || item.Type != "OBJECT" {
		t.Fatalf("expected OBJECT items, got %+v", item)
	}
	if item.Properties["question_text"].Type != "STRING" {
		t.Fatalf("expected STRING for question_text, got %s", item.Properties["question_text"].Type)
	}
	if item.Properties["correct_answer_index"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for correct_answer_index, got %s", item.Properties["correct_answer_index"].Type)
	}
	if len(item.Properties["difficulty_level"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(item.Properties["difficulty_level"].Enum))
	}
	if item.Properties["option_text"].Items.Type != "STRING" {
		t.Fatalf("expected STRING option items, got %s", item.Properties["option_text"].Items.Type)
	}
	if len(item.Required) != 2 {
		t.Fatalf("expected 2 required keys, got %d", len(item.Required))
	}
}
