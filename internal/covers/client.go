package covers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the image service boundary. Upload and variant generation
// happen elsewhere; this service only requests variants for a stored
// cover and reads back their URLs.
type Client interface {
	RequestVariants(ctx context.Context, bookID, coverURL string) error
	GetVariants(ctx context.Context, bookID string) ([]Variant, error)
}

type Variant struct {
	Name string `json:"name"` // thumb, card, hero
	URL  string `json:"url"`
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type variantsResponse struct {
	Data []Variant `json:"data"`
}

func (c *HTTPClient) RequestVariants(ctx context.Context, bookID, coverURL string) error {
	payload, err := json.Marshal(map[string]string{
		"book_id": bookID,
		"source":  coverURL,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/v1/variants", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("covers: %d %s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *HTTPClient) GetVariants(ctx context.Context, bookID string) ([]Variant, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/v1/variants/"+bookID, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("covers: %d %s", resp.StatusCode, string(body))
	}

	var raw variantsResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return raw.Data, nil
}
