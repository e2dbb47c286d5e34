package bootstrap

import (
	"errors"
	"testing"

	"github.com/trinamix-ai/documantra-saas/internal/config"
	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
	"github.com/trinamix-ai/documantra-saas/internal/infrastructure/ai/oci"
)

func TestResolveEndpointPrefersExplicit(t *testing.T) {
	got, err := resolveEndpoint("https://genai.local", "eu-frankfurt-1", oci.GenAIEndpoint, "GENAI_ENDPOINT")
	if err != nil {
		t.Fatalf("resolveEndpoint() error = %v", err)
	}
	if got != "https://genai.local" {
		t.Fatalf("expected explicit endpoint, got %q", got)
	}
}

func TestResolveEndpointFromRegion(t *testing.T) {
	got, err := resolveEndpoint("", "eu-frankfurt-1", oci.GenAIEndpoint, "GENAI_ENDPOINT")
	if err != nil {
		t.Fatalf("resolveEndpoint() error = %v", err)
	}
	if got != oci.GenAIEndpoint("eu-frankfurt-1") {
		t.Fatalf("unexpected endpoint %q", got)
	}
}

func TestResolveEndpointRequiresRegionOrOverride(t *testing.T) {
	_, err := resolveEndpoint("", "", oci.DocumentAIEndpoint, "DOCUMENT_AI_ENDPOINT")
	if !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
	var cfgErr *config.Error
	if !errors.As(err, &cfgErr) || cfgErr.Key != "DOCUMENT_AI_ENDPOINT" {
		t.Fatalf("expected *config.Error for DOCUMENT_AI_ENDPOINT, got %v", err)
	}
}

func TestNewClassifierUnsignedWithEndpoints(t *testing.T) {
	cls := config.Classifier{
		CompartmentID:      "ocid1.compartment.oc1..test",
		ModelID:            "cohere.command-r",
		MaxTokens:          20,
		TextLimit:          3000,
		ExtractorBackend:   config.ExtractorBackendOCI,
		OCIAuth:            config.OCIAuthNone,
		DocumentAIEndpoint: "http://127.0.0.1:1",
		GenAIEndpoint:      "http://127.0.0.1:1",
	}
	uc, err := NewClassifier(config.Config{RetryMaxAttempts: 1}, cls, nil)
	if err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}
	if uc == nil {
		t.Fatalf("expected pipeline")
	}
}

func TestNewClassifierLocalBackendNeedsOnlyGenAIEndpoint(t *testing.T) {
	cls := config.Classifier{
		MaxTokens:        20,
		ExtractorBackend: config.ExtractorBackendLocal,
		OCIAuth:          config.OCIAuthNone,
		GenAIEndpoint:    "http://127.0.0.1:1",
	}
	if _, err := NewClassifier(config.Config{}, cls, nil); err != nil {
		t.Fatalf("NewClassifier() error = %v", err)
	}

	cls.GenAIEndpoint = ""
	if _, err := NewClassifier(config.Config{}, cls, nil); !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("expected config error without endpoint, got %v", err)
	}
}

func TestNewClassifierMissingOCIConfigIsConfigError(t *testing.T) {
	cls := config.Classifier{
		MaxTokens:        20,
		ExtractorBackend: config.ExtractorBackendOCI,
		OCIAuth:          config.OCIAuthAPIKey,
		OCIConfigFile:    t.TempDir() + "/missing-oci-config",
		OCIProfile:       "DEFAULT",
	}
	if _, err := NewClassifier(config.Config{}, cls, nil); !errors.Is(err, domain.ErrConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}
