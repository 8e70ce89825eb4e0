package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AbuAli85/Contract-Management-System-sub011/config"
	"github.com/AbuAli85/Contract-Management-System-sub011/model"
)

// ErrMsgNotConfigured is reported when no automation endpoint is set.
const ErrMsgNotConfigured = "automation webhook URL not configured"

const maxErrorBody = 512

// AutomationClient posts webhook payloads to the external document
// automation service. Each call is a single attempt.
type AutomationClient struct {
	config     *config.AutomationConfig
	httpClient *http.Client
	now        func() time.Time
}

func NewAutomationClient(cfg *config.AutomationConfig) *AutomationClient {
	return &AutomationClient{
		config:     cfg,
		httpClient: &http.Client{},
		now:        time.Now,
	}
}

// Configured reports whether an endpoint is set.
func (s *AutomationClient) Configured() bool {
	return s.config != nil && s.config.WebhookURL != ""
}

// Dispatch sends payload to the automation endpoint. Failures are captured
// in the result rather than returned.
func (s *AutomationClient) Dispatch(ctx context.Context, payload model.WebhookPayload) model.DispatchResult {
	result := model.DispatchResult{Timestamp: s.now().UTC()}

	if !s.Configured() {
		result.ErrorMessage = ErrMsgNotConfigured
		return result
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to marshal payload: %v", err)
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.WebhookURL, bytes.NewReader(jsonData))
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to create request: %v", err)
		return result
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	if s.config.APIKey != "" {
		req.Header.Set("X-Api-Key", s.config.APIKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to send request: %v", err)
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Success = resp.StatusCode >= 200 && resp.StatusCode <= 299
	if !result.Success {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		result.ErrorMessage = fmt.Sprintf("automation service responded with status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	return result
}
