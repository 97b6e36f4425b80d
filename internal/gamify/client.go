package gamify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the gamification service boundary. Levels, badges and XP
// rules live entirely on the other side of it; this service only
// reports events worth rewarding.
type Client interface {
	AwardReviewXP(ctx context.Context, readerID string, bookID string) error
	GetReaderLevel(ctx context.Context, readerID string) (*ReaderLevel, error)
}

type ReaderLevel struct {
	ReaderID string `json:"reader_id"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
}

type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) doReq(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("gamify %s %s: %d %s", method, path, resp.StatusCode, string(data))
	}
	return data, nil
}

func (c *HTTPClient) AwardReviewXP(ctx context.Context, readerID, bookID string) error {
	payload, err := json.Marshal(map[string]string{
		"reader_id": readerID,
		"book_id":   bookID,
		"event":     "review_submitted",
	})
	if err != nil {
		return err
	}
	_, err = c.doReq(ctx, "POST", "/api/v1/xp/events", payload)
	return err
}

func (c *HTTPClient) GetReaderLevel(ctx context.Context, readerID string) (*ReaderLevel, error) {
	data, err := c.doReq(ctx, "GET", "/api/v1/readers/"+readerID+"/level", nil)
	if err != nil {
		return nil, err
	}
	var level ReaderLevel
	if err := json.Unmarshal(data, &level); err != nil {
		return nil, err
	}
	return &level, nil
}
