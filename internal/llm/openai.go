package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	openai "github.com/sashabaranov/go-openai"
)

// openaiModels maps friendly names to OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// OpenAIProvider implements Provider using the OpenAI SDK.
// It also supports OpenRouter and other OpenAI-compatible APIs via BaseURL.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	// name selects the API key variable reported for rejected keys.
	name string
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	return newOpenAICompatible(ProviderOpenAI, cfg.APIKey, cfg.BaseURL, resolveModel(cfg.Model, openaiModels)), nil
}

// newOpenAICompatible builds a provider for any OpenAI-compatible endpoint.
// The model ID is used as given.
func newOpenAICompatible(name, apiKey, baseURL, model string) *OpenAIProvider {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
		name:   name,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq, err := openAIRequest(p.model, req)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, p.mapError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{
			Err: fmt.Errorf("no choices in OpenAI response"),
		}
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return nil, &ErrInvalidResponse{Err: errors.New("response blocked by content filter")}
	}

	content := cleanJSON(choice.Message.Content)
	stop := mapOpenAIStopReason(choice.FinishReason)
	if err := checkStructured(req, content, stop); err != nil {
		return nil, err
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: stop,
	}, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func openAIRequest(model string, req Request) (openai.ChatCompletionRequest, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}
	if req.System != "" {
		chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	if req.Schema != nil {
		raw, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return chatReq, fmt.Errorf("marshal schema: %w", err)
		}
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: json.RawMessage(raw),
				Strict: strictSchema(req.Schema.Definition),
			},
		}
	}
	return chatReq, nil
}

// strictSchema reports whether def meets the rules of strict structured
// output: every object closes additionalProperties and requires all of its
// properties. Other schemas are sent unenforced and rely on validation.
func strictSchema(def map[string]any) bool {
	if props, ok := def["properties"].(map[string]any); ok {
		if ap, ok := def["additionalProperties"].(bool); !ok || ap {
			return false
		}
		required := stringsOf(def["required"])
		if len(required) != len(props) {
			return false
		}
		for name, v := range props {
			sub, ok := v.(map[string]any)
			if !ok || !slices.Contains(required, name) || !strictSchema(sub) {
				return false
			}
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		return strictSchema(items)
	}
	return true
}

func mapOpenAIStopReason(reason openai.FinishReason) string {
	if reason == openai.FinishReasonLength {
		return "max_tokens"
	}
	return "end"
}

// mapError also serves OpenRouter and Grok, which share the client.
func (p *OpenAIProvider) mapError(err error) error {
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		return statusError(p.name, apiErr.HTTPStatusCode, nil, err)
	case errors.As(err, &reqErr):
		return statusError(p.name, reqErr.HTTPStatusCode, nil, err)
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}
