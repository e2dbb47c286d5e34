package oci

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ServiceError is a non-2xx answer from an OCI endpoint.
type ServiceError struct {
	Operation  string
	StatusCode int
	Code       string
	Message    string
	RequestID  string
}

func (e *ServiceError) Error() string {
	if e == nil {
		return "oci service error"
	}
	msg := fmt.Sprintf("oci %s status %d", e.Operation, e.StatusCode)
	if e.Code != "" {
		msg += ": " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.RequestID != "" {
		msg += " (opc-request-id " + e.RequestID + ")"
	}
	return msg
}

func (c *Client) postJSON(ctx context.Context, url string, payload any, out any, operation string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Length", strconv.Itoa(len(body)))
	req.Header.Set("Date", time.Now().UTC().Format(http.TimeFormat))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("oci %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return newServiceError(operation, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

func newServiceError(operation string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	svcErr := &ServiceError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get("opc-request-id"),
	}

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && (payload.Code != "" || payload.Message != "") {
		svcErr.Code = payload.Code
		svcErr.Message = payload.Message
	} else {
		svcErr.Message = strings.TrimSpace(string(raw))
	}
	if svcErr.Message == "" {
		svcErr.Message = http.StatusText(resp.StatusCode)
	}
	return svcErr
}
