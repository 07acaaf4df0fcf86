// Package openai implements the fallback text extractor and the vision
// extractor over the chat/completions endpoint, requesting a JSON-only reply
// via the response_format contract.
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/llm"
)

// ExtractFromText implements llm.TextFieldExtractor. Unlike the primary
// model this path demands a JSON-only reply, so the content decodes directly.
func (c *Client) ExtractFromText(ctx context.Context, text string) (contract.ExtractionResult, error) {
	rid := uuid.New().String()
	start := time.Now()
	text = llm.Truncate(text, llm.FallbackTextLimit)

	c.log.Info("openai.extract.start",
		"req_id", rid, "model", c.cfg.Model, "text_len", len(text))

	body := map[string]any{
		"model":           c.cfg.Model,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": "You are a legal assistant."},
			{"role": "user", "content": llm.DocumentPrompt + "\n\nText:\n" + text},
		},
	}

	raw, _, err := llm.SendJSON(ctx, c.http, c.endpoint(), body, c.headers(), c.log)
	if err != nil {
		c.log.Error("openai.extract.http_error",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}

	content, err := llm.FirstChoice(raw)
	if err != nil {
		c.log.Error("openai.extract.decode_error", "req_id", rid, "error", err)
		return nil, err
	}

	res, err := llm.DecodeResult([]byte(strings.TrimSpace(content)))
	if err != nil {
		c.log.Error("openai.extract.bad_json", "req_id", rid, "error", err)
		return nil, fmt.Errorf("openai reply: %w", err)
	}

	c.log.Info("openai.extract.ok",
		"req_id", rid, "fields", len(res), "elapsed_ms", time.Since(start).Milliseconds())
	return res, nil
}

// ExtractFromImage implements llm.VisionExtractor. The payload must already be
// a data URL; the normalizer bounds its size before it gets here.
func (c *Client) ExtractFromImage(ctx context.Context, req llm.VisionRequest) (contract.ExtractionResult, error) {
	rid := uuid.New().String()
	start := time.Now()

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = llm.IdentityMaxTokens
	}

	c.log.Info("openai.vision.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"kind", string(req.Kind),
		"mime", req.MIMEType,
		"payload_len", len(req.DataURL),
	)

	body := map[string]any{
		"model":           c.cfg.Model,
		"response_format": map[string]any{"type": "json_object"},
		"max_tokens":      maxTokens,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "text", "text": llm.PromptFor(req.Kind)},
					{
						"type": "image_url",
						"image_url": map[string]any{
							"url":    req.DataURL,
							"detail": "high",
						},
					},
				},
			},
		},
	}

	raw, _, err := llm.SendJSON(ctx, c.http, c.endpoint(), body, c.headers(), c.log)
	if err != nil {
		c.log.Error("openai.vision.http_error",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}

	content, err := llm.FirstChoice(raw)
	if err != nil {
		c.log.Error("openai.vision.decode_error", "req_id", rid, "error", err)
		return nil, err
	}

	res, err := llm.DecodeResult([]byte(strings.TrimSpace(content)))
	if err != nil {
		c.log.Error("openai.vision.bad_json", "req_id", rid, "error", err)
		return nil, fmt.Errorf("openai vision reply: %w", err)
	}

	c.log.Info("openai.vision.ok",
		"req_id", rid, "fields", len(res), "elapsed_ms", time.Since(start).Milliseconds())
	return res, nil
}
