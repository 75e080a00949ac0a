package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/cardbox/internal/inference"
	"github.com/avast/retry-go"
	"resty.dev/v3"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Retry on JSON parsing errors as they might be due to incomplete responses
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// GenerateCards implements the inference.Client interface
func (client *Client) GenerateCards(
	ctx context.Context,
	params inference.GenerateCardsRequest,
) (inference.GenerateCardsResponse, error) {
	var result inference.GenerateCardsResponse
	if err := retry.Do(
		func() error {
			response, err := client.generateCards(ctx, params)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return inference.GenerateCardsResponse{}, err
	}
	return result, nil
}

func (client *Client) getRequestBody(args inference.GenerateCardsRequest) ChatCompletionRequest {
	systemPrompt := `You are an expert flashcard author. Given a passage of study material, produce question/answer flashcards that test the key facts and concepts in the passage.

GOAL
Return ONLY a JSON array. Each element is one flashcard:
- "front": a clear, self-contained question answerable from the passage
- "back": the answer, concise but complete
- "tags": an array of 1-3 lowercase topic tags

STRICT OUTPUT: No text outside the JSON array.

RULES
1. Every card must be answerable from the passage alone. Never require outside knowledge.
2. One fact per card. Split compound facts into separate cards.
3. Questions must stand on their own: never write "according to the text" or "in this passage".
4. Prefer why/how questions over pure recall when the passage explains a mechanism.
5. Never exceed the requested maximum number of cards. Fewer well-formed cards beat padded ones.
6. Skip headings, citations and boilerplate. Only card-worthy content produces a card.`

	userContent := fmt.Sprintf("Maximum cards: %d\n", args.MaxCards)
	if args.DeckName != "" {
		userContent += fmt.Sprintf("Deck topic: %s\n", args.DeckName)
	}
	userContent += fmt.Sprintf("\nPassage:\n%s", args.Text)

	return ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.3,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: userContent},
		},
	}
}

func (client *Client) generateCards(
	ctx context.Context,
	args inference.GenerateCardsRequest,
) (inference.GenerateCardsResponse, error) {
	if strings.TrimSpace(args.Text) == "" {
		return inference.GenerateCardsResponse{}, nil
	}

	requestBody := client.getRequestBody(args)

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return inference.GenerateCardsResponse{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return inference.GenerateCardsResponse{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return inference.GenerateCardsResponse{}, fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return inference.GenerateCardsResponse{}, fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"request", requestBody,
		"response", responseBody,
	)

	var decoded []inference.GeneratedCard
	if err := json.NewDecoder(strings.NewReader(content)).Decode(&decoded); err != nil {
		slog.Default().Error("Failed to parse OpenAI response as JSON",
			"request", requestBody,
			"error", err)
		return inference.GenerateCardsResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	if args.MaxCards > 0 && len(decoded) > args.MaxCards {
		decoded = decoded[:args.MaxCards]
	}
	return inference.GenerateCardsResponse{Cards: decoded}, nil
}
