package dropbox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	apiURL     = "https://api.dropboxapi.com/2"
	contentURL = "https://content.dropboxapi.com/2"
)

// Client is a minimal Dropbox API client covering what the portal
// needs: uploading attached documents, minting short-lived download
// links for them, and searching the company folder.
type Client struct {
	AccessToken string
	RootFolder  string
	APIBase     string
	ContentBase string
	HttpClient  *http.Client
}

// NewClient creates a Dropbox client rooted at the company folder
func NewClient(accessToken, rootFolder string) *Client {
	return &Client{
		AccessToken: accessToken,
		RootFolder:  rootFolder,
		APIBase:     apiURL,
		ContentBase: contentURL,
		HttpClient:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Enabled reports whether a token is configured
func (c *Client) Enabled() bool {
	return c.AccessToken != ""
}

// apiError is Dropbox's error envelope
type apiError struct {
	ErrorSummary string `json:"error_summary"`
}

// TemporaryLink requests a short-lived download link for a stored file
func (c *Client) TemporaryLink(path string) (string, error) {
	body, err := json.Marshal(map[string]string{"path": path})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, c.APIBase+"/files/get_temporary_link", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("dropbox request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var e apiError
		if json.Unmarshal(raw, &e) == nil && e.ErrorSummary != "" {
			return "", fmt.Errorf("dropbox: %s", e.ErrorSummary)
		}
		return "", fmt.Errorf("dropbox: unexpected status %d", resp.StatusCode)
	}

	var result struct {
		Link string `json:"link"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("failed to parse dropbox response: %w", err)
	}
	return result.Link, nil
}

// Upload stores content at the given path, overwriting an existing file
func (c *Client) Upload(path string, content []byte) error {
	args, err := json.Marshal(map[string]interface{}{
		"path": path,
		"mode": "overwrite",
		"mute": true,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.ContentBase+"/files/upload", bytes.NewReader(content))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Dropbox-API-Arg", string(args))

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dropbox upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var e apiError
		if json.Unmarshal(raw, &e) == nil && e.ErrorSummary != "" {
			return fmt.Errorf("dropbox: %s", e.ErrorSummary)
		}
		return fmt.Errorf("dropbox: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// FileMatch is one search hit under the company folder
type FileMatch struct {
	Name        string `json:"name"`
	PathDisplay string `json:"pathDisplay"`
	Size        int64  `json:"size"`
	IsFolder    bool   `json:"isFolder"`
}

// Search finds files under the root folder by name or content
func (c *Client) Search(query string, maxResults int) ([]FileMatch, error) {
	if maxResults <= 0 || maxResults > 100 {
		maxResults = 25
	}

	body, err := json.Marshal(map[string]interface{}{
		"query": query,
		"options": map[string]interface{}{
			"path":        c.RootFolder,
			"max_results": maxResults,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.APIBase+"/files/search_v2", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dropbox search failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var e apiError
		if json.Unmarshal(raw, &e) == nil && e.ErrorSummary != "" {
			return nil, fmt.Errorf("dropbox: %s", e.ErrorSummary)
		}
		return nil, fmt.Errorf("dropbox: unexpected status %d", resp.StatusCode)
	}

	var result struct {
		Matches []struct {
			Metadata struct {
				Metadata struct {
					Tag         string `json:".tag"`
					Name        string `json:"name"`
					PathDisplay string `json:"path_display"`
					Size        int64  `json:"size"`
				} `json:"metadata"`
			} `json:"metadata"`
		} `json:"matches"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to parse dropbox response: %w", err)
	}

	matches := make([]FileMatch, 0, len(result.Matches))
	for _, m := range result.Matches {
		md := m.Metadata.Metadata
		matches = append(matches, FileMatch{
			Name:        md.Name,
			PathDisplay: md.PathDisplay,
			Size:        md.Size,
			IsFolder:    md.Tag == "folder",
		})
	}
	return matches, nil
}

// Delete removes a stored file; missing files are not an error
func (c *Client) Delete(path string) error {
	body, err := json.Marshal(map[string]string{"path": path})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.APIBase+"/files/delete_v2", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dropbox delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusConflict {
		return fmt.Errorf("dropbox: unexpected status %d", resp.StatusCode)
	}
	return nil
}
