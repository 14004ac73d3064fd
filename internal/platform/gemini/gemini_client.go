package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sagelearning/sage-api/internal/config"
	"github.com/sagelearning/sage-api/internal/domain"
	"github.com/sagelearning/sage-api/internal/generation"
	"google.golang.org/genai"
)

// GeminiClient implements the generation.Client interface using Google's
// Gemini API. It holds no session object beyond the underlying HTTP
// client, so it is safe for concurrent and repeated use.
type GeminiClient struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the Gemini API client for making requests
	client *genai.Client

	// defaultModel is used when a call does not name a model
	defaultModel string
}

// Ensure GeminiClient implements the generation.Client interface
var _ generation.Client = (*GeminiClient)(nil)

// NewGeminiClient creates a new GeminiClient with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing the API key and default model name
//
// Returns a properly initialized GeminiClient or an error if
// initialization fails.
func NewGeminiClient(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (*GeminiClient, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiClient{
		logger:       logger.With(slog.String("component", "gemini_client")),
		client:       client,
		defaultModel: cfg.ModelName,
	}, nil
}

// GenerateText implements generation.Client.GenerateText.
func (c *GeminiClient) GenerateText(
	ctx context.Context,
	modelID, instruction string,
) (string, error) {
	return c.generate(ctx, modelID, genai.Text(instruction), nil)
}

// GenerateStructured implements generation.Client.GenerateStructured.
// The shape is attached as a generation-time response schema; the raw
// response text is returned for the caller to decode. The backend is
// expected to honor the constraint but is not guaranteed to, which is
// why decoding stays a separate, tolerant step.
func (c *GeminiClient) GenerateStructured(
	ctx context.Context,
	modelID, instruction string,
	shape *generation.Shape,
) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toResponseSchema(shape),
	}

	return c.generate(ctx, modelID, genai.Text(instruction), cfg)
}

// GenerateMultimodal implements generation.Client.GenerateMultimodal.
// The media type is passed through to the backend untouched.
func (c *GeminiClient) GenerateMultimodal(
	ctx context.Context,
	modelID, instruction string,
	attachment []byte,
	mediaType string,
) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(instruction),
		genai.NewPartFromBytes(attachment, mediaType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	return c.generate(ctx, modelID, contents, nil)
}

// GenerateChat implements generation.Client.GenerateChat. The full
// ordered history is sent on every call; no session is held client-side.
func (c *GeminiClient) GenerateChat(
	ctx context.Context,
	modelID string,
	history []domain.ChatMessage,
) (string, error) {
	if err := domain.ValidateChatHistory(history); err != nil {
		return "", err
	}

	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		contents = append(contents, genai.NewContentFromText(msg.Content, toGenaiRole(msg.Role)))
	}

	return c.generate(ctx, modelID, contents, nil)
}

// toGenaiRole maps a conversation role onto the backend's role type.
func toGenaiRole(role domain.ChatRole) genai.Role {
	if role == domain.ChatRoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// generate performs a single GenerateContent request. Exactly one attempt
// is made: whether to re-issue a failed call is the caller's decision.
func (c *GeminiClient) generate(
	ctx context.Context,
	modelID string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (string, error) {
	model := modelID
	if model == "" {
		model = c.defaultModel
	}

	c.logger.DebugContext(ctx, "making Gemini API call",
		slog.String("model", model),
		slog.Bool("structured", cfg != nil && cfg.ResponseSchema != nil))

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		c.logger.ErrorContext(ctx, "Gemini API call error",
			slog.String("model", model),
			slog.String("error", err.Error()))
		return "", err
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no content generated")
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", errors.New("content blocked by safety filters")
	}

	if candidate.Content == nil {
		return "", errors.New("empty content in response")
	}

	text := resp.Text()
	c.logger.DebugContext(ctx, "Gemini API call successful",
		slog.String("model", model),
		slog.Int("response_length", len(text)))

	return text, nil
}
