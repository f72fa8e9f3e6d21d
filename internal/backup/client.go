package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aurelienperez/grease-the-groove/internal/models"
)

// Client talks to the training server's backup endpoints over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the training server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// FetchState downloads the full-state backup document.
func (c *Client) FetchState() (*models.Backup, error) {
	resp, err := c.httpClient.Get(c.serverURL + "/api/v1/export")
	if err != nil {
		return nil, fmt.Errorf("fetching export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("export returned %d: %s", resp.StatusCode, string(body))
	}

	var b models.Backup
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}
	return &b, nil
}

// Restore uploads a backup document, replacing server state.
func (c *Client) Restore(data []byte) error {
	req, err := http.NewRequest(http.MethodPost, c.serverURL+"/api/v1/import", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building import request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting import: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("import returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
