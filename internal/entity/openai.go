package entity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/Dedsec0098/Termsheet-Validation/internal/cache"
	"github.com/Dedsec0098/Termsheet-Validation/internal/model"
	"github.com/Dedsec0098/Termsheet-Validation/internal/util"
)

// OpenAIRecognizer recognizes entities with OpenAI's Chat Completions API.
// Requests are rate-limited and responses memoized, so re-checking the
// same document never pays twice.
type OpenAIRecognizer struct {
	client  *openai.Client
	config  model.EntityConfig
	limiter *rate.Limiter
	cache   cache.Cache
}

// NewOpenAIRecognizer creates a new OpenAI-backed recognizer
func NewOpenAIRecognizer(cfg model.EntityConfig, c cache.Cache) (*OpenAIRecognizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required for the openai entity provider")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
		},
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	return &OpenAIRecognizer{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  cfg,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		cache:   c,
	}, nil
}

// Name returns the recognizer name
func (r *OpenAIRecognizer) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured and reachable
func (r *OpenAIRecognizer) IsAvailable(ctx context.Context) bool {
	_, err := r.client.ListModels(ctx)
	return err == nil
}

const recognizePrompt = `Identify every date, percentage, monetary amount, and organization name in the document below.

Respond with ONLY a JSON array. Each element must be an object with:
- "label": one of "DATE", "PERCENT", "MONEY", "ORG"
- "text": the exact span as it appears in the document

Do not invent spans that are not present verbatim in the document.

Document:
`

// Recognize extracts entities via the API, consulting the cache first
func (r *OpenAIRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	key := cache.Key(r.config.Model + ":" + text)
	if r.cache != nil {
		if data, found := r.cache.Get(key); found {
			var ents []Entity
			if err := json.Unmarshal(data, &ents); err == nil {
				return ents, nil
			}
		}
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	timeout := time.Duration(r.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatModel := r.config.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	resp, err := r.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a named-entity recognizer for financial documents. You only output JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: recognizePrompt + text,
			},
		},
		Temperature: 0, // deterministic spans
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	ents, err := parseEntityJSON(resp.Choices[0].Message.Content, text)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if data, err := json.Marshal(ents); err == nil {
			_ = r.cache.Set(key, data, 0)
		}
	}

	return ents, nil
}

// parseEntityJSON decodes the model's JSON array and anchors each span to
// its first occurrence in the source text. Spans not present verbatim are
// discarded rather than guessed at.
func parseEntityJSON(content, source string) ([]Entity, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var raw []Entity
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("decode entity response: %w", err)
	}

	var ents []Entity
	searchFrom := make(map[string]int)
	for _, e := range raw {
		switch e.Label {
		case LabelDate, LabelPercent, LabelMoney, LabelOrg:
		default:
			continue
		}
		from := searchFrom[e.Text]
		if from > len(source) {
			continue
		}
		idx := strings.Index(source[from:], e.Text)
		if idx < 0 {
			continue
		}
		start := from + idx
		searchFrom[e.Text] = start + len(e.Text)
		ents = append(ents, Entity{Label: e.Label, Text: e.Text, Start: start})
	}

	sortByStart(ents)
	return ents, nil
}
