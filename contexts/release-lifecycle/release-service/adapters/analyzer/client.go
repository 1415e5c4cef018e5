package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
	domainerrors "pressroom/contexts/release-lifecycle/release-service/domain/errors"
	"pressroom/contexts/release-lifecycle/release-service/ports"
)

// Client calls an external content analysis service over HTTP JSON.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.ContentAnalyzer = (*Client)(nil)

func NewClient(endpoint string, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type analyzeResponse struct {
	SimilarityScore      float64 `json:"similarityScore"`
	RiskScore            float64 `json:"riskScore"`
	EngagementPrediction float64 `json:"engagementPrediction"`
	FlaggedTerms         []struct {
		Term     string `json:"term"`
		Position int    `json:"position"`
		Severity string `json:"severity"`
	} `json:"flaggedTerms"`
}

func (c *Client) Analyze(ctx context.Context, title string, content string) (entities.Analysis, error) {
	body, err := json.Marshal(analyzeRequest{Title: title, Content: content})
	if err != nil {
		return entities.Analysis{}, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/analyze", bytes.NewReader(body))
	if err != nil {
		return entities.Analysis{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return entities.Analysis{}, fmt.Errorf("%w: %v", domainerrors.ErrAnalyzerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entities.Analysis{}, fmt.Errorf("%w: unexpected status %s", domainerrors.ErrAnalyzerUnavailable, resp.Status)
	}

	var decoded analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return entities.Analysis{}, fmt.Errorf("%w: decode response: %v", domainerrors.ErrAnalyzerUnavailable, err)
	}

	analysis := entities.Analysis{
		SimilarityScore:      clampScore(decoded.SimilarityScore),
		RiskScore:            clampScore(decoded.RiskScore),
		EngagementPrediction: clampScore(decoded.EngagementPrediction),
	}
	for _, term := range decoded.FlaggedTerms {
		analysis.FlaggedTerms = append(analysis.FlaggedTerms, entities.FlaggedTerm{
			Term:     term.Term,
			Position: term.Position,
			Severity: parseSeverity(term.Severity),
		})
	}
	return analysis, nil
}

func clampScore(value float64) float64 {
	switch {
	case value < 0:
		return 0
	case value > 100:
		return 100
	default:
		return value
	}
}

func parseSeverity(raw string) entities.Severity {
	switch entities.Severity(strings.ToLower(strings.TrimSpace(raw))) {
	case entities.SeverityHigh:
		return entities.SeverityHigh
	case entities.SeverityMedium:
		return entities.SeverityMedium
	default:
		return entities.SeverityLow
	}
}
