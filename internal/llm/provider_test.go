package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`[{"a":1}]`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`[{"b":2}]`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `[{"a":1}]` {
		t.Fatalf("unexpected first content: %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `[{"b":2}]` {
		t.Fatalf("unexpected second content: %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
}

func TestMockProvider_RecordsImageAttachments(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`[]`)})

	req := Request{
		Messages: []Message{{Role: RoleUser, Content: "describe"}},
		Images: []ImageAttachment{
			{MIMEType: "image/png", Data: []byte{0x89, 0x50}},
		},
	}
	if _, err := mock.Generate(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("expected 1 recorded call, got %d", len(mock.Calls))
	}
	if len(mock.Calls[0].Images) != 1 || mock.Calls[0].Images[0].MIMEType != "image/png" {
		t.Fatalf("image attachment not recorded: %+v", mock.Calls[0].Images)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := WithPurpose(context.Background(), "question-gen")
	if got := PurposeFrom(ctx); got != "question-gen" {
		t.Fatalf("expected question-gen, got %q", got)
	}
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
}
