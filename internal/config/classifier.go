package config

import (
	"strconv"
	"strings"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
)

const DefaultClassifierConfigPath = "config/oci.config"

const (
	ExtractorBackendOCI   = "oci"
	ExtractorBackendLocal = "local"

	OCIAuthAPIKey = "api_key"
	OCIAuthNone   = "none"
)

// Classifier is the pipeline configuration. It is loaded once by the entry
// point and never mutated afterwards.
type Classifier struct {
	CompartmentID string
	ModelID       string
	TargetFile    string
	Temperature   float64
	MaxTokens     int
	TextLimit     int

	ExtractorBackend   string
	DocumentAIEndpoint string
	GenAIEndpoint      string
	OCIConfigFile      string
	OCIProfile         string
	OCIAuth            string
}

// LoadClassifier reads the classifier properties file. The six required keys
// have no defaults: a missing key or a non-numeric value is a *Error.
func LoadClassifier(path string) (Classifier, error) {
	props, err := ReadProperties(path, false)
	if err != nil {
		return Classifier{}, err
	}

	p := classifierProps{path: path, props: props}
	cfg := Classifier{
		CompartmentID: p.required("COMPARTMENT_ID"),
		ModelID:       p.required("GENAI_MODEL_ID"),
		TargetFile:    p.required("TARGET_FILE"),
		Temperature:   p.float("TEMPERATURE"),
		MaxTokens:     p.int("MAX_TOKENS"),
		TextLimit:     p.int("TEXT_LIMIT"),

		ExtractorBackend:   strings.ToLower(p.optional("EXTRACTOR_BACKEND", ExtractorBackendOCI)),
		DocumentAIEndpoint: p.optional("DOCUMENT_AI_ENDPOINT", ""),
		GenAIEndpoint:      p.optional("GENAI_ENDPOINT", ""),
		OCIConfigFile:      p.optional("OCI_CONFIG_FILE", ""),
		OCIProfile:         p.optional("OCI_PROFILE", "DEFAULT"),
		OCIAuth:            strings.ToLower(p.optional("OCI_AUTH", OCIAuthAPIKey)),
	}
	if p.err != nil {
		return Classifier{}, p.err
	}

	if cfg.MaxTokens <= 0 {
		return Classifier{}, &Error{Path: path, Key: "MAX_TOKENS", Reason: reasonInvalidNumber, Value: props["MAX_TOKENS"]}
	}
	if cfg.TextLimit < 0 {
		return Classifier{}, &Error{Path: path, Key: "TEXT_LIMIT", Reason: reasonInvalidNumber, Value: props["TEXT_LIMIT"]}
	}
	switch cfg.ExtractorBackend {
	case ExtractorBackendOCI, ExtractorBackendLocal:
	default:
		return Classifier{}, &Error{Path: path, Key: "EXTRACTOR_BACKEND", Reason: "unsupported value", Value: cfg.ExtractorBackend}
	}
	switch cfg.OCIAuth {
	case OCIAuthAPIKey, OCIAuthNone:
	default:
		return Classifier{}, &Error{Path: path, Key: "OCI_AUTH", Reason: "unsupported value", Value: cfg.OCIAuth}
	}
	return cfg, nil
}

func (c Classifier) Settings() domain.ClassifierSettings {
	return domain.ClassifierSettings{
		CompartmentID: c.CompartmentID,
		ModelID:       c.ModelID,
		Temperature:   c.Temperature,
		MaxTokens:     c.MaxTokens,
		TextLimit:     c.TextLimit,
	}
}

// classifierProps keeps the first lookup failure so LoadClassifier reads as a flat list.
type classifierProps struct {
	path  string
	props map[string]string
	err   error
}

func (p *classifierProps) required(key string) string {
	v, ok := p.props[key]
	if (!ok || v == "") && p.err == nil {
		p.err = &Error{Path: p.path, Key: key, Reason: reasonMissingKey}
	}
	return v
}

func (p *classifierProps) optional(key, fallback string) string {
	if v := p.props[key]; v != "" {
		return v
	}
	return fallback
}

func (p *classifierProps) float(key string) float64 {
	raw := p.required(key)
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = &Error{Path: p.path, Key: key, Reason: reasonInvalidNumber, Value: raw}
		return 0
	}
	return v
}

func (p *classifierProps) int(key string) int {
	raw := p.required(key)
	if p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.err = &Error{Path: p.path, Key: key, Reason: reasonInvalidNumber, Value: raw}
		return 0
	}
	return v
}
