package oci

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
	"github.com/trinamix-ai/documantra-saas/internal/infrastructure/resilience"
)

func testClient(server *httptest.Server) *Client {
	return New(server.Client(), resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    2,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     time.Millisecond,
		RetryMultiplier:     2,
		BreakerEnabled:      false,
	}))
}

func TestExtractTextSendsInlineDocument(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/20221109/actions/analyzeDocument" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Date") == "" {
			t.Errorf("expected Date header for signing")
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"pages":[
			{"pageNumber":1,"lines":[{"text":"Tax Invoice"},{"text":"Bill To: ACME"}]},
			{"pageNumber":2,"lines":[{"text":"Amount Due"}]}
		]}`))
	}))
	defer server.Close()

	client := NewDocumentClient(testClient(server), server.URL+"/")
	pages, err := client.ExtractText(context.Background(), []byte("%PDF-1.4"), "ocid1.compartment")
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if len(pages) != 2 || pages[0].Number != 1 || len(pages[0].Lines) != 2 || pages[1].Lines[0] != "Amount Due" {
		t.Fatalf("unexpected pages %+v", pages)
	}

	document, _ := payload["document"].(map[string]any)
	if document["source"] != "INLINE" || document["data"] != base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")) {
		t.Fatalf("unexpected document payload %+v", document)
	}
	features, _ := payload["features"].([]any)
	if len(features) != 1 || features[0].(map[string]any)["featureType"] != "TEXT_EXTRACTION" {
		t.Fatalf("expected text extraction feature only, got %+v", features)
	}
	if payload["compartmentId"] != "ocid1.compartment" {
		t.Fatalf("unexpected compartment %v", payload["compartmentId"])
	}
}

func TestExtractTextParsesServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("opc-request-id", "req-42")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"InvalidParameter","message":"document is not a pdf"}`))
	}))
	defer server.Close()

	client := NewDocumentClient(testClient(server), server.URL)
	_, err := client.ExtractText(context.Background(), []byte("x"), "c")

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if svcErr.StatusCode != http.StatusBadRequest || svcErr.Code != "InvalidParameter" || svcErr.RequestID != "req-42" {
		t.Fatalf("unexpected service error %+v", svcErr)
	}
	if !strings.Contains(err.Error(), "document is not a pdf") {
		t.Fatalf("expected message in error, got %v", err)
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("client errors must not be temporary")
	}
}

func TestChatRetriesServerErrors(t *testing.T) {
	var calls int32
	var payload chatDetails
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/20231130/actions/chat" {
			http.NotFound(w, r)
			return
		}
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"chatResponse":{"text":" PO "}}`))
	}))
	defer server.Close()

	client := NewChatClient(testClient(server), server.URL)
	answer, err := client.Chat(context.Background(), domain.ChatRequest{
		ModelID:       "cohere.command-r-plus",
		CompartmentID: "c",
		Message:       "classify",
		Temperature:   0.2,
		MaxTokens:     50,
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if answer != " PO " {
		t.Fatalf("expected raw answer, got %q", answer)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected one retry, got %d calls", calls)
	}
	if payload.ServingMode.ServingType != "ON_DEMAND" || payload.ServingMode.ModelID != "cohere.command-r-plus" {
		t.Fatalf("unexpected serving mode %+v", payload.ServingMode)
	}
	if payload.ChatRequest.APIFormat != "COHERE" || payload.ChatRequest.IsStream || payload.ChatRequest.MaxTokens != 50 {
		t.Fatalf("unexpected chat request %+v", payload.ChatRequest)
	}
}

func TestChatWrapsExhaustedRetriesAsTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"code":"TooManyRequests","message":"slow down"}`))
	}))
	defer server.Close()

	client := NewChatClient(testClient(server), server.URL)
	_, err := client.Chat(context.Background(), domain.ChatRequest{Message: "x", MaxTokens: 1})
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected ErrTemporary, got %v", err)
	}
}

type signerFake struct {
	calls int
}

func (s *signerFake) Sign(r *http.Request) error {
	s.calls++
	r.Header.Set("Authorization", `Signature keyId="test"`)
	return nil
}

func TestSigningTransportSignsRequests(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"chatResponse":{"text":"Invoice"}}`))
	}))
	defer server.Close()

	signer := &signerFake{}
	httpClient := NewHTTPClient(signer)
	client := NewChatClient(New(httpClient, nil), server.URL)
	if _, err := client.Chat(context.Background(), domain.ChatRequest{Message: "x", MaxTokens: 1}); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if signer.calls != 1 || !strings.HasPrefix(auth, "Signature") {
		t.Fatalf("expected signed request, got calls=%d auth=%q", signer.calls, auth)
	}
}

func TestRegionEndpoints(t *testing.T) {
	if got := DocumentAIEndpoint("us-ashburn-1"); got != "https://document.aiservice.us-ashburn-1.oci.oraclecloud.com" {
		t.Fatalf("unexpected document endpoint %s", got)
	}
	if got := GenAIEndpoint("eu-frankfurt-1"); got != "https://inference.generativeai.eu-frankfurt-1.oci.oraclecloud.com" {
		t.Fatalf("unexpected genai endpoint %s", got)
	}
}
