package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"resty.dev/v3"

	"github.com/at-ishikawa/cardbox/internal/inference"
)

func TestClient_GenerateCards(t *testing.T) {
	tests := []struct {
		name              string
		request           inference.GenerateCardsRequest
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		wantResponse    inference.GenerateCardsResponse
		wantError       bool
		wantErrorString string
	}{
		{
			name: "Success with deck topic",
			request: inference.GenerateCardsRequest{
				Text:     "The mitochondria is the powerhouse of the cell.",
				DeckName: "Biology",
				MaxCards: 10,
			},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				// Verify request
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/chat/completions", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var reqBody ChatCompletionRequest
				err := json.NewDecoder(r.Body).Decode(&reqBody)
				require.NoError(t, err)
				assert.Equal(t, "gpt-4o-mini", reqBody.Model)
				require.Len(t, reqBody.Messages, 2)
				assert.Contains(t, reqBody.Messages[1].Content, "Deck topic: Biology")
				assert.Contains(t, reqBody.Messages[1].Content, "mitochondria")

				// Return mock response
				mockResponse := ChatCompletionResponse{
					ID:      "chatcmpl-123",
					Object:  "chat.completion",
					Created: 1677652288,
					Model:   "gpt-4o-mini",
					Choices: []Choice{
						{
							Index: 0,
							Message: ChoiceMessage{
								Role: RoleAssistant,
								Content: `[{
									"front": "What organelle is known as the powerhouse of the cell?",
									"back": "The mitochondria",
									"tags": ["biology", "cells"]
								}]`,
							},
							FinishReason: "stop",
						},
					},
					Usage: Usage{
						PromptTokens:     100,
						CompletionTokens: 50,
						TotalTokens:      150,
					},
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(mockResponse)
			},
			wantResponse: inference.GenerateCardsResponse{
				Cards: []inference.GeneratedCard{
					{
						Front: "What organelle is known as the powerhouse of the cell?",
						Back:  "The mitochondria",
						Tags:  []string{"biology", "cells"},
					},
				},
			},
		},
		{
			name: "Model overshoot is truncated to MaxCards",
			request: inference.GenerateCardsRequest{
				Text:     "Fact one. Fact two. Fact three.",
				MaxCards: 2,
			},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				mockResponse := ChatCompletionResponse{
					ID:    "chatcmpl-456",
					Model: "gpt-4o-mini",
					Choices: []Choice{
						{
							Index: 0,
							Message: ChoiceMessage{
								Role:    RoleAssistant,
								Content: `[{"front": "q1", "back": "a1"}, {"front": "q2", "back": "a2"}, {"front": "q3", "back": "a3"}]`,
							},
							FinishReason: "stop",
						},
					},
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(mockResponse)
			},
			wantResponse: inference.GenerateCardsResponse{
				Cards: []inference.GeneratedCard{
					{Front: "q1", Back: "a1"},
					{Front: "q2", Back: "a2"},
				},
			},
		},
		{
			name: "Empty text - no HTTP request",
			request: inference.GenerateCardsRequest{
				Text:     "   ",
				MaxCards: 10,
			},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				t.Error("HTTP request should not be made for empty text")
			},
			wantResponse: inference.GenerateCardsResponse{},
		},
		{
			name: "HTTP 500 error",
			request: inference.GenerateCardsRequest{
				Text:     "Some study material.",
				MaxCards: 10,
			},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error": {"message": "Internal server error"}}`))
			},
			wantError: true,
		},
		{
			name: "Invalid JSON response",
			request: inference.GenerateCardsRequest{
				Text:     "Some study material.",
				MaxCards: 10,
			},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				mockResponse := ChatCompletionResponse{
					ID:    "chatcmpl-789",
					Model: "gpt-4o-mini",
					Choices: []Choice{
						{
							Index: 0,
							Message: ChoiceMessage{
								Role:    RoleAssistant,
								Content: `invalid json content`,
							},
							FinishReason: "stop",
						},
					},
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(mockResponse)
			},

			wantError:       true,
			wantErrorString: "json.Unmarshal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create mock HTTP server
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			// Create client with mock server
			client := &Client{
				httpClient:       resty.New().SetBaseURL(server.URL),
				model:            "gpt-4o-mini",
				maxRetryAttempts: 1,
			}

			// Execute test
			ctx := context.Background()
			gotResponse, gotErr := client.GenerateCards(ctx, tt.request)

			// Assert error expectations
			if tt.wantError {
				require.Error(t, gotErr)
				if tt.wantErrorString != "" {
					assert.Contains(t, gotErr.Error(), tt.wantErrorString)
				}
				return
			}

			require.NoError(t, gotErr)
			require.Equal(t, tt.wantResponse, gotResponse)
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "server error", err: fmt.Errorf("response error 503: unavailable"), want: true},
		{name: "rate limit", err: fmt.Errorf("response error 429: slow down"), want: true},
		{name: "network error", err: fmt.Errorf("httpClient.Post > connection refused"), want: true},
		{name: "json parse error", err: fmt.Errorf("json.Unmarshal(partial) > unexpected end of JSON input"), want: true},
		{name: "client error", err: fmt.Errorf("response error 400: bad request"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}
