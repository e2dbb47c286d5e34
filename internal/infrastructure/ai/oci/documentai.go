package oci

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/trinamix-ai/documantra-saas/internal/core/domain"
	"github.com/trinamix-ai/documantra-saas/internal/infrastructure/resilience"
)

// DocumentClient calls the Document Understanding analyzeDocument action
// with the text extraction feature only.
type DocumentClient struct {
	client   *Client
	endpoint string
}

func NewDocumentClient(client *Client, endpoint string) *DocumentClient {
	return &DocumentClient{client: client, endpoint: trimEndpoint(endpoint)}
}

type analyzeDocumentRequest struct {
	Features      []documentFeature `json:"features"`
	Document      inlineDocument    `json:"document"`
	CompartmentID string            `json:"compartmentId,omitempty"`
}

type documentFeature struct {
	FeatureType string `json:"featureType"`
}

type inlineDocument struct {
	Source string `json:"source"`
	Data   string `json:"data"`
}

type analyzeDocumentResponse struct {
	Pages []struct {
		PageNumber int `json:"pageNumber"`
		Lines      []struct {
			Text string `json:"text"`
		} `json:"lines"`
	} `json:"pages"`
}

func (d *DocumentClient) ExtractText(ctx context.Context, content []byte, compartmentID string) ([]domain.Page, error) {
	if len(content) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "analyze document", errors.New("empty document"))
	}

	request := analyzeDocumentRequest{
		Features: []documentFeature{{FeatureType: "TEXT_EXTRACTION"}},
		Document: inlineDocument{
			Source: "INLINE",
			Data:   base64.StdEncoding.EncodeToString(content),
		},
		CompartmentID: compartmentID,
	}

	url := d.endpoint + "/" + documentAPIVersion + "/actions/analyzeDocument"
	response, err := resilience.ExecuteValue(ctx, d.client.executor, "oci.analyze_document", func(callCtx context.Context) (analyzeDocumentResponse, error) {
		var out analyzeDocumentResponse
		err := d.client.postJSON(callCtx, url, request, &out, "analyze_document")
		return out, err
	}, classifyServiceError)
	if err != nil {
		return nil, wrapTemporaryIfNeeded("oci.analyze_document", err)
	}

	pages := make([]domain.Page, 0, len(response.Pages))
	for _, page := range response.Pages {
		lines := make([]string, 0, len(page.Lines))
		for _, line := range page.Lines {
			lines = append(lines, line.Text)
		}
		pages = append(pages, domain.Page{Number: page.PageNumber, Lines: lines})
	}
	return pages, nil
}
