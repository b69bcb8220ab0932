package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"physiq/internal/store"
)

// LoggingProvider records every generation call as a row in the LLM
// request log. Failures to log never fail the request itself.
type LoggingProvider struct {
	inner    Provider
	provider string
	eventLog store.EventRepo
}

// WithLogging wraps a Provider with request logging. provider is the
// backend name recorded on each row ("gemini", "openai", ...).
func WithLogging(p Provider, provider string, log store.EventRepo) Provider {
	return &LoggingProvider{inner: p, provider: provider, eventLog: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	rec := store.LLMRequestRecord{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
		rec.ResponseBody = string(resp.Content)
	}

	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	if logErr := l.eventLog.AppendLLMRequest(ctx, rec); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log model request: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable transcript of the request for the
// log. Image bytes are summarized, not embedded.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	for _, img := range req.Images {
		fmt.Fprintf(&b, "[image: %s, %d bytes]\n", img.MIMEType, len(img.Data))
	}

	if req.Schema != nil {
		if schemaDef, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return b.String()
}
