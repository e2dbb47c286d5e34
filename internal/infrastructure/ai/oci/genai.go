package oci

import (
	"context"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
	"github.com/trinamix-ai/documantra-saas/internal/infrastructure/resilience"
)

// ChatClient sends single-turn Cohere-format chat requests to an on-demand model.
type ChatClient struct {
	client   *Client
	endpoint string
}

func NewChatClient(client *Client, endpoint string) *ChatClient {
	return &ChatClient{client: client, endpoint: trimEndpoint(endpoint)}
}

type chatDetails struct {
	CompartmentID string        `json:"compartmentId"`
	ServingMode   servingMode   `json:"servingMode"`
	ChatRequest   cohereRequest `json:"chatRequest"`
}

type servingMode struct {
	ServingType string `json:"servingType"`
	ModelID     string `json:"modelId"`
}

type cohereRequest struct {
	APIFormat   string  `json:"apiFormat"`
	Message     string  `json:"message"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
	IsStream    bool    `json:"isStream"`
}

type chatResult struct {
	ChatResponse struct {
		Text string `json:"text"`
	} `json:"chatResponse"`
}

func (c *ChatClient) Chat(ctx context.Context, req domain.ChatRequest) (string, error) {
	payload := chatDetails{
		CompartmentID: req.CompartmentID,
		ServingMode: servingMode{
			ServingType: "ON_DEMAND",
			ModelID:     req.ModelID,
		},
		ChatRequest: cohereRequest{
			APIFormat:   "COHERE",
			Message:     req.Message,
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
			IsStream:    false,
		},
	}

	url := c.endpoint + "/" + genAIAPIVersion + "/actions/chat"
	result, err := resilience.ExecuteValue(ctx, c.client.executor, "oci.chat", func(callCtx context.Context) (chatResult, error) {
		var out chatResult
		err := c.client.postJSON(callCtx, url, payload, &out, "chat")
		return out, err
	}, classifyServiceError)
	if err != nil {
		return "", wrapTemporaryIfNeeded("oci.chat", err)
	}
	return result.ChatResponse.Text, nil
}
