package llm

import (
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestBuildOpenAIMessages_SystemPromptFirst(t *testing.T) {
	req := Request{
		System: "You are a physics examiner.",
		Messages: []Message{
			{Role: RoleUser, Content: "hello"},
		},
	}

	msgs := buildOpenAIMessages(req)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("expected system message first, got %s", msgs[0].Role)
	}
}

func TestBuildOpenAIMessages_ImageBecomesVisionPart(t *testing.T) {
	req := Request{
		Messages: []Message{
			{Role: RoleUser, Content: "analyze this diagram"},
		},
		Images: []ImageAttachment{
			{MIMEType: "image/png", Data: []byte("pngbytes")},
		},
	}

	msgs := buildOpenAIMessages(req)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	parts := msgs[0].MultiContent
	if len(parts) != 2 {
		t.Fatalf("expected text + image parts, got %d", len(parts))
	}
	if parts[0].Type != openai.ChatMessagePartTypeText {
		t.Fatalf("expected text part first, got %s", parts[0].Type)
	}
	if parts[1].Type != openai.ChatMessagePartTypeImageURL {
		t.Fatalf("expected image part, got %s", parts[1].Type)
	}
	if !strings.HasPrefix(parts[1].ImageURL.URL, "data:image/png;base64,") {
		t.Fatalf("expected base64 data URL, got %s", parts[1].ImageURL.URL)
	}
}

func TestOpenAIModelMapping(t *testing.T) {
	if got := resolveModel("gpt-4o-mini", openaiModels); got != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %s", got)
	}
	if got := resolveModel("o4-mini", openaiModels); got != "o4-mini" {
		t.Fatalf("expected pass-through, got %s", got)
	}
}
