package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPPoster delivers envelopes to a partner callback URL. It stands in
// for a window reference when the partner page is reachable over HTTP
// instead of a browser channel.
type HTTPPoster struct {
	url    string
	client *http.Client
}

func NewHTTPPoster(url string) *HTTPPoster {
	return &HTTPPoster{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPPoster) Post(envelope Envelope, targetOrigin string) error {
	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Target-Origin", targetOrigin)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("post envelope: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("partner responded %d", resp.StatusCode)
	}
	return nil
}
