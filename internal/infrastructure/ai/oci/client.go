package oci

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/trinamix-ai/documantra-saas/internal/infrastructure/resilience"
)

const (
	documentAPIVersion = "20221109"
	genAIAPIVersion    = "20231130"
)

// Client is the shared HTTP plumbing behind the Document Understanding and
// Generative AI clients.
type Client struct {
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(httpClient *http.Client, executor *resilience.Executor) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	if executor == nil {
		executor = resilience.NewExecutor(resilience.DefaultConfig())
	}
	return &Client{httpClient: httpClient, executor: executor}
}

// NewHTTPClient returns an http.Client whose requests are signed with signer.
// A nil signer leaves requests unsigned, which only local stubs accept.
func NewHTTPClient(signer RequestSigner) *http.Client {
	client := &http.Client{Timeout: 120 * time.Second}
	if signer != nil {
		client.Transport = &SigningTransport{Signer: signer}
	}
	return client
}

func DocumentAIEndpoint(region string) string {
	return fmt.Sprintf("https://document.aiservice.%s.oci.oraclecloud.com", region)
}

func GenAIEndpoint(region string) string {
	return fmt.Sprintf("https://inference.generativeai.%s.oci.oraclecloud.com", region)
}

func trimEndpoint(endpoint string) string {
	return strings.TrimRight(strings.TrimSpace(endpoint), "/")
}
