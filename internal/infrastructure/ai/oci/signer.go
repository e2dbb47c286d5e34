package oci

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/oracle/oci-go-sdk/v65/common"
)

// RequestSigner matches common.HTTPRequestSigner.
type RequestSigner interface {
	Sign(r *http.Request) error
}

// SigningTransport signs every outgoing request before handing it to Base.
type SigningTransport struct {
	Base   http.RoundTripper
	Signer RequestSigner
}

func (t *SigningTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	signed := req.Clone(req.Context())
	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("oci sign: copy body: %w", err)
		}
		signed.Body = body
	}
	if err := t.Signer.Sign(signed); err != nil {
		return nil, fmt.Errorf("oci sign: %w", err)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(signed)
}

// APIKeyAuth is the signer and home region of one profile of an OCI config file.
type APIKeyAuth struct {
	Signer RequestSigner
	Region string
}

// LoadAPIKeyAuth reads profile from configFile (default ~/.oci/config) and
// builds the SDK's default request signer for it.
func LoadAPIKeyAuth(configFile, profile string) (APIKeyAuth, error) {
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return APIKeyAuth{}, fmt.Errorf("resolve oci config path: %w", err)
		}
		configFile = filepath.Join(home, ".oci", "config")
	}
	if profile == "" {
		profile = "DEFAULT"
	}

	provider, err := common.ConfigurationProviderFromFileWithProfile(configFile, profile, "")
	if err != nil {
		return APIKeyAuth{}, fmt.Errorf("load oci profile %s: %w", profile, err)
	}
	region, err := provider.Region()
	if err != nil {
		return APIKeyAuth{}, fmt.Errorf("read oci region: %w", err)
	}
	return APIKeyAuth{
		Signer: common.DefaultRequestSigner(provider),
		Region: region,
	}, nil
}
