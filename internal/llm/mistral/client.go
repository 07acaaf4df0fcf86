// Package mistral implements the primary text-field extractor. Mistral replies
// are free-form prose that usually wraps one JSON object, so the client scans
// for the first balanced object instead of decoding the whole reply.
package mistral

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/llm"
)

// Config for the Mistral client.
type Config struct {
	APIKey  string        // if empty, falls back to env MISTRAL_API_KEY
	BaseURL string        // default https://api.mistral.ai/v1
	Model   string        // e.g. "mistral-small-latest"
	Timeout time.Duration // http client timeout
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("MISTRAL_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "mistral-small-latest"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

// ExtractFromText implements llm.TextFieldExtractor.
func (c *Client) ExtractFromText(ctx context.Context, text string) (contract.ExtractionResult, error) {
	rid := uuid.New().String()
	start := time.Now()
	text = llm.Truncate(text, llm.PrimaryTextLimit)

	c.log.Info("mistral.extract.start",
		"req_id", rid, "model", c.cfg.Model, "text_len", len(text))

	body := map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]any{
			{"role": "user", "content": llm.PrimaryTextPrompt + "\n\n" + text},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.log)
	if err != nil {
		c.log.Error("mistral.extract.http_error",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}

	content, err := llm.FirstChoice(raw)
	if err != nil {
		c.log.Error("mistral.extract.decode_error", "req_id", rid, "error", err)
		return nil, err
	}

	obj, ok := llm.ExtractJSONObject(content)
	if !ok {
		c.log.Warn("mistral.extract.no_json_object", "req_id", rid, "reply_len", len(content))
		return contract.ExtractionResult{}, nil
	}

	res, err := llm.DecodeResult([]byte(obj))
	if err != nil {
		c.log.Error("mistral.extract.bad_json", "req_id", rid, "error", err)
		return nil, fmt.Errorf("mistral reply: %w", err)
	}

	c.log.Info("mistral.extract.ok",
		"req_id", rid, "fields", len(res), "elapsed_ms", time.Since(start).Milliseconds())
	return res, nil
}
