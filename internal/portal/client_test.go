package portal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mkglobal/bizportal/internal/models"
	"github.com/mkglobal/bizportal/internal/workflow"
)

func mkWarehouse() *models.Warehouse {
	return &models.Warehouse{Code: "mk", Name: "MK 물류센터", Aliases: "WH-MK,MK창고"}
}

// groupsResponse builds the list endpoint envelope
func groupsResponse(groups []workflow.WarehouseGroup) map[string]interface{} {
	return map[string]interface{}{
		"data": map[string]interface{}{"warehouses": groups},
	}
}

func TestListTasksPartition(t *testing.T) {
	groups := []workflow.WarehouseGroup{
		{
			WarehouseCd: "WH-MK",
			TaskCount:   1,
			Tasks: []models.FulfillmentTask{
				{ID: 1, WorkflowType: models.WorkflowSales, Status: models.StatusPicking, WarehouseCd: "WH-MK"},
			},
		},
		{
			WarehouseCd: "알수없는창고",
			TaskCount:   1,
			Tasks: []models.FulfillmentTask{
				{ID: 2, WorkflowType: models.WorkflowPurchase, Status: models.StatusInspecting, WarehouseCd: "알수없는창고"},
			},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(groupsResponse(groups))
	}))
	defer server.Close()

	view, err := NewClient(server.URL, "test-token").ListTasks(mkWarehouse())
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}

	if len(view.Mine) != 1 || view.Mine[0].ID != 1 {
		t.Errorf("expected task 1 in the matched list, got %+v", view.Mine)
	}
	for _, task := range view.Mine {
		if task.WarehouseCd == "알수없는창고" {
			t.Error("unmatched group leaked into the warehouse's filtered list")
		}
	}
	if len(view.Others) != 1 || view.Others[0].ID != 2 {
		t.Errorf("expected task 2 in the others list, got %+v", view.Others)
	}
	if len(view.All) != 2 {
		t.Errorf("expected 2 tasks in the unfiltered list, got %d", len(view.All))
	}
}

func TestListCompletedPrefersWarehouseSubset(t *testing.T) {
	groups := []workflow.WarehouseGroup{
		{WarehouseCd: "WH-MK", Tasks: []models.FulfillmentTask{
			{ID: 1, WorkflowType: models.WorkflowSales, Status: models.StatusDelivered, WarehouseCd: "WH-MK"},
			{ID: 2, WorkflowType: models.WorkflowSales, Status: models.StatusPicking, WarehouseCd: "WH-MK"},
		}},
		{WarehouseCd: "WH-BS", Tasks: []models.FulfillmentTask{
			{ID: 3, WorkflowType: models.WorkflowPurchase, Status: models.StatusStocked, WarehouseCd: "WH-BS"},
		}},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("include_completed") != "true" {
			t.Error("completed view must request include_completed=true")
		}
		json.NewEncoder(w).Encode(groupsResponse(groups))
	}))
	defer server.Close()

	completed, err := NewClient(server.URL, "t").ListCompleted(mkWarehouse())
	if err != nil {
		t.Fatalf("ListCompleted failed: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != 1 {
		t.Errorf("expected only the matched warehouse's completed task, got %+v", completed)
	}
}

func TestListCompletedFallsBackToGlobal(t *testing.T) {
	// The matched warehouse has no completed tasks; the view must fall
	// back to the global completed set.
	groups := []workflow.WarehouseGroup{
		{WarehouseCd: "WH-MK", Tasks: []models.FulfillmentTask{
			{ID: 1, WorkflowType: models.WorkflowSales, Status: models.StatusPicking, WarehouseCd: "WH-MK"},
		}},
		{WarehouseCd: "WH-BS", Tasks: []models.FulfillmentTask{
			{ID: 3, WorkflowType: models.WorkflowPurchase, Status: models.StatusStocked, WarehouseCd: "WH-BS"},
		}},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(groupsResponse(groups))
	}))
	defer server.Close()

	completed, err := NewClient(server.URL, "t").ListCompleted(mkWarehouse())
	if err != nil {
		t.Fatalf("ListCompleted failed: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != 3 {
		t.Errorf("expected global fallback with task 3, got %+v", completed)
	}
}

func TestUploadRejectsOversizeLocally(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer server.Close()

	client := NewClient(server.URL, "t")
	oversize := make([]byte, workflow.MaxDocumentSize+1)

	_, err := client.UploadDocument(1, "big.pdf", "application/pdf", oversize, nil)
	if err == nil {
		t.Fatal("expected local rejection of oversize upload")
	}
	if !strings.Contains(err.Error(), "10 MiB") {
		t.Errorf("rejection should name the limit, got: %v", err)
	}
	if n := atomic.LoadInt32(&requests); n != 0 {
		t.Errorf("oversize upload must not reach the network, saw %d requests", n)
	}
}

func TestRequestNextDeclinedSendsNothing(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer server.Close()

	task := &models.FulfillmentTask{
		ID:            7,
		WorkflowType:  models.WorkflowSales,
		Status:        models.StatusPicking,
		DocumentCount: 0,
	}

	sent, err := NewClient(server.URL, "t").RequestNext(task, func(string) bool { return false })
	if err != nil {
		t.Fatalf("declined guard must not error: %v", err)
	}
	if sent {
		t.Error("declined guard must report nothing sent")
	}
	if n := atomic.LoadInt32(&requests); n != 0 {
		t.Errorf("declined guard must not issue requests, saw %d", n)
	}
}

func TestRequestNextPostsOnce(t *testing.T) {
	var processCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/process") {
			atomic.AddInt32(&processCalls, 1)
			var body struct {
				Action string `json:"action"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if body.Action != "next" {
				t.Errorf("expected action \"next\", got %q", body.Action)
			}
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	// Documents attached, so no confirmation is needed
	task := &models.FulfillmentTask{
		ID:            7,
		WorkflowType:  models.WorkflowSales,
		Status:        models.StatusPicking,
		DocumentCount: 2,
	}

	confirmAsked := false
	sent, err := NewClient(server.URL, "t").RequestNext(task, func(string) bool {
		confirmAsked = true
		return true
	})
	if err != nil {
		t.Fatalf("RequestNext failed: %v", err)
	}
	if !sent {
		t.Error("expected the transition to be sent")
	}
	if confirmAsked {
		t.Error("guard must not fire when documents are attached")
	}
	if n := atomic.LoadInt32(&processCalls); n != 1 {
		t.Errorf("expected exactly one transition request, saw %d", n)
	}
}

func TestTransitionErrorSurfacesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "error",
			"message": `status "DELIVERED" is final, cannot advance`,
		})
	}))
	defer server.Close()

	err := NewClient(server.URL, "t").RequestTransition(9, workflow.ActionNext)
	if err == nil {
		t.Fatal("expected transition rejection")
	}
	if err.Error() != `status "DELIVERED" is final, cannot advance` {
		t.Errorf("server message must surface verbatim, got: %v", err)
	}
}

func TestAuthorizationHeaderAttached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("expected bearer header, got %q", got)
		}
		json.NewEncoder(w).Encode(groupsResponse(nil))
	}))
	defer server.Close()

	if _, err := NewClient(server.URL, "secret-token").ListTasks(nil); err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
}
