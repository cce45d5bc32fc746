package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

const (
	defaultModel         = "gemini-2.5-flash"
	defaultChatTimeout   = 30 * time.Second
	defaultScreenTimeout = 20 * time.Second

	chatTemperature     = 0.2
	chatMaxOutputTokens = 2000
	mockPreviewLimit    = 800

	apiKeyURL = "https://aistudio.google.com/app/apikey"
)

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config holds the Gemini settings. An empty APIKey puts the client in
// offline mode: chat answers are mocked and screening always falls back.
type Config struct {
	APIKey        string
	Model         string
	ChatTimeout   time.Duration
	ScreenTimeout time.Duration
}

// Client implements ports.ChatModel and ports.ScreeningModel on top of the
// Gemini API.
type Client struct {
	models        contentGenerator
	model         string
	chatTimeout   time.Duration
	screenTimeout time.Duration
	log           zerolog.Logger
}

var (
	_ ports.ChatModel      = (*Client)(nil)
	_ ports.ScreeningModel = (*Client)(nil)
)

// New creates a Client. No network call is made here.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (*Client, error) {
	c := newClient(nil, cfg, log)

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		c.log.Warn().Msg("GEMINI_API_KEY not set, chat replies are mocked and screening uses fallback scoring")
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	c.models = client.Models
	return c, nil
}

func newClient(models contentGenerator, cfg Config, log zerolog.Logger) *Client {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	chatTimeout := cfg.ChatTimeout
	if chatTimeout <= 0 {
		chatTimeout = defaultChatTimeout
	}
	screenTimeout := cfg.ScreenTimeout
	if screenTimeout <= 0 {
		screenTimeout = defaultScreenTimeout
	}
	return &Client{
		models:        models,
		model:         model,
		chatTimeout:   chatTimeout,
		screenTimeout: screenTimeout,
		log:           log.With().Str("model", model).Logger(),
	}
}

// Online reports whether an API key was configured.
func (c *Client) Online() bool { return c.models != nil }

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Answer sends the system prompt, the question and the JSON context to the
// model and returns its reply. Provider failures are *domain.LLMError whose
// message is fit for the end user.
func (c *Client) Answer(ctx context.Context, system string, data any, question string) (string, error) {
	if c.models == nil {
		return mockReply(data), nil
	}

	contextJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal chat context: %w", err)
	}
	prompt := fmt.Sprintf("%s\n\nUser Question: %s\n\nContext Data (JSON):\n%s", system, question, contextJSON)

	ctx, cancel := context.WithTimeout(ctx, c.chatTimeout)
	defer cancel()

	c.log.Debug().Msg("calling gemini for chat answer")
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](chatTemperature),
		MaxOutputTokens: chatMaxOutputTokens,
	})
	if err != nil {
		return "", c.chatError(err)
	}

	text := firstText(resp)
	if text == "" {
		return "", &domain.LLMError{
			Cause:   "Invalid response",
			Message: "The AI did not return a response. Please try again.",
		}
	}
	return text, nil
}

// Evaluate sends a screening prompt and decodes the JSON verdict embedded
// in the reply.
func (c *Client) Evaluate(ctx context.Context, prompt string) (*domain.ScreeningResult, error) {
	if c.models == nil {
		return nil, &domain.LLMError{Cause: "No API key"}
	}

	ctx, cancel := context.WithTimeout(ctx, c.screenTimeout)
	defer cancel()

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		if apiErr, ok := asAPIError(err); ok {
			c.log.Warn().Int("status", apiErr.Code).Str("error", apiErr.Message).Msg("gemini screening call rejected")
			return nil, &domain.LLMError{Cause: fmt.Sprintf("HTTP %d", apiErr.Code), Err: err}
		}
		c.log.Warn().Err(err).Msg("gemini screening request failed")
		return nil, &domain.LLMError{Cause: err.Error(), Err: err}
	}

	text := firstText(resp)
	if text == "" {
		return nil, &domain.LLMError{Cause: "Invalid response"}
	}

	result, err := decodeVerdict(text)
	if err != nil {
		c.log.Warn().Err(err).Msg("gemini returned invalid screening JSON")
		return nil, &domain.LLMError{Cause: "Invalid JSON", Err: err}
	}
	return result, nil
}

// chatError turns a provider failure into an explanatory answer.
func (c *Client) chatError(err error) error {
	apiErr, ok := asAPIError(err)
	if !ok {
		c.log.Error().Err(err).Msg("gemini request failed")
		return &domain.LLMError{
			Cause:   err.Error(),
			Message: fmt.Sprintf("AI service connection error: %s. Please check your internet connection and Gemini API endpoint.", err),
			Err:     err,
		}
	}

	c.log.Error().Int("status", apiErr.Code).Str("error", apiErr.Message).Msg("gemini api error")
	msg := apiErr.Message
	cause := fmt.Sprintf("HTTP %d", apiErr.Code)

	var text string
	switch {
	case apiErr.Code == http.StatusNotFound:
		text = fmt.Sprintf("AI service error: %s\n\nModel '%s' not found. Try these Gemini models: "+
			"gemini-2.5-flash (recommended, free), gemini-1.5-pro, or gemini-pro. "+
			"Update LLM_MODEL in your config.env file.", msg, c.model)
	case apiErr.Code == http.StatusBadRequest && isKeyError(msg):
		text = fmt.Sprintf("AI service error: Invalid or missing API key. Please check your GEMINI_API_KEY in config.env. "+
			"Error: %s. Get your key from %s", msg, apiKeyURL)
	case apiErr.Code == http.StatusBadRequest:
		text = fmt.Sprintf("AI service error: %s. Please check your request format.", msg)
	case apiErr.Code == http.StatusForbidden:
		text = fmt.Sprintf("AI service error: Access denied. Please check your GEMINI_API_KEY and ensure it's valid. "+
			"Error: %s. Get your key from %s", msg, apiKeyURL)
	default:
		text = fmt.Sprintf("AI service error: %s (Code: %d). Please check your API key and configuration.", msg, apiErr.Code)
	}
	return &domain.LLMError{Cause: cause, Message: text, Err: err}
}

func isKeyError(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(msg, "API key") || strings.Contains(lower, "invalid") || strings.Contains(lower, "key")
}

// asAPIError matches both value and pointer forms of genai.APIError.
func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

// firstText returns the text of the first part of the first candidate.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 || cand.Content.Parts[0] == nil {
		return ""
	}
	return strings.TrimSpace(cand.Content.Parts[0].Text)
}

func mockReply(data any) string {
	preview := "null"
	if b, err := json.Marshal(data); err == nil {
		preview = string(b)
	}
	if len(preview) > mockPreviewLimit {
		cut := mockPreviewLimit
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut] + "..."
	}
	return "[Mocked AI Reply] Based only on provided ATS context and your question, " +
		"here is a concise summary. If the requested data is missing, it may not " +
		"exist or you are not authorized. Context preview: " + preview
}
