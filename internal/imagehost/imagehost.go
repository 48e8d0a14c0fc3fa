// Package imagehost uploads listing photos to an external image host
// (imgbb-compatible API) and hands back the public URL that gets stored
// on the item. The API serves files; this service never does.
package imagehost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	UploadURL string
	APIKey    string
	HTTP      *http.Client
}

func New(uploadURL, apiKey string) *Client {
	return &Client{
		UploadURL: uploadURL,
		APIKey:    apiKey,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
}

// Upload sends the image bytes and returns the hosted URL.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	form := url.Values{}
	form.Set("key", c.APIKey)
	form.Set("name", filename)
	form.Set("image", base64.StdEncoding.EncodeToString(data))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UploadURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("imagehost: status %d: %s", resp.StatusCode, body)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("imagehost: decoding response: %w", err)
	}
	if parsed.Data.URL == "" {
		return "", fmt.Errorf("imagehost: response carried no url")
	}
	return parsed.Data.URL, nil
}
