package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// MatcherClient relays free-text queries to the external find-tutor
// matching API. No parsing, ranking or caching happens here: the query
// goes out verbatim and the tutor list comes back untouched.
type MatcherClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewMatcherClient(baseURL string) *MatcherClient {
	return &MatcherClient{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type findTutorRequest struct {
	Query string `json:"query"`
}

type findTutorResponse struct {
	MatchingTutors json.RawMessage `json:"matchingTutors"`
}

// FindTutors posts {query} to {base}/api/find-tutor and returns the raw
// matchingTutors array. The records pass through unshaped.
func (m *MatcherClient) FindTutors(ctx context.Context, query string) (json.RawMessage, error) {
	if m.BaseURL == "" {
		return nil, fmt.Errorf("matching API URL not configured")
	}

	body, err := json.Marshal(findTutorRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/api/find-tutor", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := m.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call matching API: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("matching API returned %d", res.StatusCode)
	}

	var out findTutorResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode matching API response: %w", err)
	}
	// an absent field and an explicit null both mean "no tutors"
	tutors := bytes.TrimSpace(out.MatchingTutors)
	if len(tutors) == 0 || bytes.Equal(tutors, []byte("null")) {
		return json.RawMessage("[]"), nil
	}
	return json.RawMessage(tutors), nil
}
