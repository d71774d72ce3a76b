package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

// GeminiProvider implements Provider using the Google Gemini SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: resolveModel(cfg.Model, geminiModels)}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	contents := make([]*genai.Content, len(req.Messages))
	for i, m := range req.Messages {
		role := genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents[i] = genai.NewContentFromText(m.Content, genai.Role(role))
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, geminiConfig(req))
	if err != nil {
		return nil, mapGeminiError(err)
	}
	if err := geminiBlocked(result); err != nil {
		return nil, err
	}

	content := cleanJSON(result.Text())
	stop := "end"
	if result.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		stop = "max_tokens"
	}
	if err := checkStructured(req, content, stop); err != nil {
		return nil, err
	}

	resp := &Response{Content: content, Model: p.model, StopReason: stop}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
			TotalTokens:  int(u.TotalTokenCount),
		}
	}
	return resp, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

func geminiConfig(req Request) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = buildGeminiSchema(req.Schema.Definition)
	}
	return config
}

// buildGeminiSchema converts a JSON Schema definition to a genai.Schema.
// Bounds such as the 1-5 difficulty range and non-empty key point lists
// carry over. Properties are ordered as listed in "required" so the model
// writes the question before its answer key.
func buildGeminiSchema(def map[string]any) *genai.Schema {
	schema := &genai.Schema{}

	if t, ok := def["type"].(string); ok {
		schema.Type = mapGeminiType(t)
	}
	schema.Description, _ = def["description"].(string)

	if props, ok := def["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema, len(props))
		for k, v := range props {
			if propDef, ok := v.(map[string]any); ok {
				schema.Properties[k] = buildGeminiSchema(propDef)
			}
		}
	}
	schema.Required = stringsOf(def["required"])
	if len(schema.Properties) > 0 && len(schema.Required) == len(schema.Properties) {
		schema.PropertyOrdering = schema.Required
	}
	schema.Enum = stringsOf(def["enum"])

	if items, ok := def["items"].(map[string]any); ok {
		schema.Items = buildGeminiSchema(items)
	}

	schema.Minimum = floatOf(def["minimum"])
	schema.Maximum = floatOf(def["maximum"])
	schema.MinItems = intOf(def["minItems"])
	schema.MaxItems = intOf(def["maxItems"])
	schema.MinLength = intOf(def["minLength"])
	return schema
}

func stringsOf(v any) []string {
	list, _ := v.([]any)
	var out []string
	for _, x := range list {
		if s, ok := x.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// floatOf and intOf accept the int literals used in Go schema maps as well
// as the float64 of decoded JSON.
func floatOf(v any) *float64 {
	switch n := v.(type) {
	case int:
		return genai.Ptr(float64(n))
	case float64:
		return genai.Ptr(n)
	}
	return nil
}

func intOf(v any) *int64 {
	if f := floatOf(v); f != nil {
		return genai.Ptr(int64(*f))
	}
	return nil
}

func mapGeminiType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// geminiBlocked reports responses that carry no usable answer: a prompt
// rejected by the safety filters, no candidates, or a candidate stopped for
// policy reasons.
func geminiBlocked(result *genai.GenerateContentResponse) error {
	if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return &ErrInvalidResponse{Err: fmt.Errorf("prompt blocked: %s", fb.BlockReason)}
	}
	if len(result.Candidates) == 0 {
		return &ErrInvalidResponse{Err: errors.New("no candidates in Gemini response")}
	}
	switch r := result.Candidates[0].FinishReason; r {
	case genai.FinishReasonSafety, genai.FinishReasonRecitation, genai.FinishReasonBlocklist,
		genai.FinishReasonProhibitedContent, genai.FinishReasonSPII:
		return &ErrInvalidResponse{Err: fmt.Errorf("response blocked: %s", r)}
	}
	return nil
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &apiErrPtr):
		apiErr = *apiErrPtr
	default:
		return &ErrProviderUnavailable{Err: err}
	}

	status := apiErr.Code
	// An invalid key comes back as 400 INVALID_ARGUMENT.
	if status == http.StatusBadRequest && strings.Contains(apiErr.Message, "API key") {
		status = http.StatusUnauthorized
	}
	mapped := statusError(ProviderGemini, status, nil, err)
	if rl, ok := mapped.(*ErrRateLimit); ok {
		rl.RetryAfter = geminiRetryDelay(apiErr.Details)
	}
	return mapped
}

// geminiRetryDelay reads the retryDelay of a google.rpc.RetryInfo detail,
// e.g. "32s".
func geminiRetryDelay(details []map[string]any) time.Duration {
	for _, d := range details {
		t, _ := d["@type"].(string)
		if !strings.HasSuffix(t, "RetryInfo") {
			continue
		}
		s, _ := d["retryDelay"].(string)
		if delay, err := time.ParseDuration(s); err == nil && delay > 0 {
			return delay
		}
	}
	return 0
}
