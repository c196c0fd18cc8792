// Package portal is the typed API client used by dashboard frontends
// and CLI tooling. It implements the client half of the fulfillment
// tracker: warehouse grouping, the CoA confirmation guard, and the
// refetch-after-write discipline. All authoritative state stays on the
// server; the client never mutates a status locally.
package portal

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mkglobal/bizportal/internal/models"
	"github.com/mkglobal/bizportal/internal/workflow"
)

// Client calls the portal API. The token is injected explicitly so
// call sites stay testable without global auth state.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a portal API client
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WarehouseView is the client-side partition of the task list for one
// selected warehouse tab.
type WarehouseView struct {
	Mine   []models.FulfillmentTask // tasks whose group matched the warehouse aliases
	Others []models.FulfillmentTask // tasks of every other group
	All    []models.FulfillmentTask // unfiltered
}

type warehouseOpsEnvelope struct {
	Data struct {
		Warehouses []workflow.WarehouseGroup `json:"warehouses"`
	} `json:"data"`
}

// ListTasks fetches all warehouse groups and partitions them for the
// selected warehouse by alias matching.
func (c *Client) ListTasks(warehouse *models.Warehouse) (*WarehouseView, error) {
	var envelope warehouseOpsEnvelope
	if err := c.get("/api/v1/warehouse-ops", &envelope); err != nil {
		return nil, err
	}
	return partition(envelope.Data.Warehouses, warehouse), nil
}

// ListCompleted fetches the history view: tasks in a completed status,
// preferring the selected warehouse's subset and falling back to the
// global completed set when the match is empty.
func (c *Client) ListCompleted(warehouse *models.Warehouse) ([]models.FulfillmentTask, error) {
	var envelope warehouseOpsEnvelope
	if err := c.get("/api/v1/warehouse-ops?include_completed=true", &envelope); err != nil {
		return nil, err
	}

	view := partition(envelope.Data.Warehouses, warehouse)

	completed := func(tasks []models.FulfillmentTask) []models.FulfillmentTask {
		var out []models.FulfillmentTask
		for _, t := range tasks {
			if workflow.CompletedStatuses[t.Status] {
				out = append(out, t)
			}
		}
		return out
	}

	if mine := completed(view.Mine); len(mine) > 0 {
		return mine, nil
	}
	return completed(view.All), nil
}

// RequestTransition posts a next/prev intent. On failure the server's
// message is returned verbatim; nothing was changed locally, so there
// is no rollback. On success the caller refetches the list.
func (c *Client) RequestTransition(taskID uint, action workflow.Action) error {
	body := map[string]string{"action": string(action)}
	return c.post(fmt.Sprintf("/api/v1/warehouse-ops/%d/process", taskID), body, nil)
}

// RequestNext requests a forward transition, asking for confirmation
// first when an outbound task still has no attached CoA. Declining
// sends nothing. The guard is advisory; the server never sees it.
func (c *Client) RequestNext(task *models.FulfillmentTask, confirm func(prompt string) bool) (bool, error) {
	if task.IsSales() && task.DocumentCount == 0 && confirm != nil {
		if !confirm("이 출고 건에는 첨부된 CoA가 없습니다. 계속 진행할까요?") {
			return false, nil
		}
	}
	if err := c.RequestTransition(task.ID, workflow.ActionNext); err != nil {
		return false, err
	}
	return true, nil
}

// UploadDocument base64-encodes the file and posts it. Files over the
// ceiling are rejected locally before any request is issued.
func (c *Client) UploadDocument(taskID uint, fileName, contentType string, data []byte, note *string) (*models.CoaDocument, error) {
	if int64(len(data)) > workflow.MaxDocumentSize {
		return nil, fmt.Errorf("file exceeds the %d MiB upload limit", workflow.MaxDocumentSize>>20)
	}

	body := map[string]interface{}{
		"fileName":      fileName,
		"contentBase64": base64.StdEncoding.EncodeToString(data),
		"contentType":   contentType,
	}
	if note != nil {
		body["note"] = *note
	}

	var envelope struct {
		Data models.CoaDocument `json:"data"`
	}
	if err := c.post(fmt.Sprintf("/api/v1/warehouse-ops/%d/documents", taskID), body, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// ListDocuments fetches the documents attached to a task
func (c *Client) ListDocuments(taskID uint) ([]models.CoaDocument, error) {
	var envelope struct {
		Data []models.CoaDocument `json:"data"`
	}
	if err := c.get(fmt.Sprintf("/api/v1/warehouse-ops/%d/documents", taskID), &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// DeleteDocument removes one attachment
func (c *Client) DeleteDocument(docID uint) error {
	req, err := c.newRequest(http.MethodDelete, fmt.Sprintf("/api/v1/warehouse-ops/documents/%d", docID), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// GetDownloadLink requests a short-lived link for a stored document
func (c *Client) GetDownloadLink(path string) (string, error) {
	var envelope struct {
		Data struct {
			Link string `json:"link"`
		} `json:"data"`
	}
	if err := c.post("/api/v1/dropbox/link", map[string]string{"path": path}, &envelope); err != nil {
		return "", err
	}
	return envelope.Data.Link, nil
}

// partition splits the fetched groups around the selected warehouse
func partition(groups []workflow.WarehouseGroup, warehouse *models.Warehouse) *WarehouseView {
	view := &WarehouseView{}
	var aliases []string
	if warehouse != nil {
		aliases = warehouse.AliasList()
	}
	for _, g := range groups {
		view.All = append(view.All, g.Tasks...)
		if warehouse != nil && workflow.MatchesWarehouse(g.WarehouseCd, aliases) {
			view.Mine = append(view.Mine, g.Tasks...)
		} else {
			view.Others = append(view.Others, g.Tasks...)
		}
	}
	return view
}

func (c *Client) get(path string, out interface{}) error {
	req, err := c.newRequest(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(path string, body interface{}, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := c.newRequest(http.MethodPost, path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) newRequest(method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}

// do executes the request and decodes the response. Non-2xx responses
// surface the server's message field verbatim when present.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		}
		if json.Unmarshal(raw, &e) == nil {
			if e.Message != "" {
				return fmt.Errorf("%s", e.Message)
			}
			if e.Detail != "" {
				return fmt.Errorf("%s", e.Detail)
			}
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
