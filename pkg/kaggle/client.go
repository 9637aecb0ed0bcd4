// Package kaggle is a thin client for the Kaggle public dataset API. The
// engine consumes it as a black-box keyword -> ranked-list function.
package kaggle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.kaggle.com/api/v1"

// Status distinguishes a provider miss (empty result, not an error) from a
// genuine transport failure, which surfaces as a Go error instead.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
)

// Dataset is one ranked search hit. Field names follow the provider payload.
type Dataset struct {
	Ref           string `json:"ref"`
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	Url           string `json:"url"`
	CreatorName   string `json:"creatorName"`
	DownloadCount int    `json:"downloadCount"`
}

type SearchResult struct {
	Status   Status
	Datasets []Dataset
	Message  string
}

type Client struct {
	baseURL    string
	username   string
	key        string
	maxResults int
	httpClient *http.Client
}

func NewClient(username, key string, maxResults int, timeout time.Duration) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		username:   username,
		key:        key,
		maxResults: maxResults,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithBaseURL overrides the API endpoint, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// Search returns up to maxResults datasets for the keyword, ranked by the
// provider (sorted by votes). The provider's order is preserved as-is.
func (c *Client) Search(ctx context.Context, keyword string) (*SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return &SearchResult{
			Status:   StatusNotFound,
			Datasets: []Dataset{},
			Message:  "empty search keyword",
		}, nil
	}

	endpoint := fmt.Sprintf("%s/datasets/list?search=%s&sortBy=votes",
		c.baseURL, url.QueryEscape(keyword))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.username, c.key)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var datasets []Dataset
	if err := json.Unmarshal(resBody, &datasets); err != nil {
		return nil, fmt.Errorf("malformed dataset list: %w", err)
	}

	if len(datasets) == 0 {
		return &SearchResult{
			Status:   StatusNotFound,
			Datasets: []Dataset{},
			Message:  fmt.Sprintf("no datasets found for %q", keyword),
		}, nil
	}

	if len(datasets) > c.maxResults {
		datasets = datasets[:c.maxResults]
	}

	return &SearchResult{
		Status:   StatusOK,
		Datasets: datasets,
		Message:  "datasets recommended successfully",
	}, nil
}
