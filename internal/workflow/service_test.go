package workflow

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/mkglobal/bizportal/internal/database"
	"github.com/mkglobal/bizportal/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Separate port from the application's embedded instance
const testDBPort = 5441

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping embedded database test in short mode")
	}

	epg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		DataPath(filepath.Join(t.TempDir(), "pg")).
		Port(uint32(testDBPort)).
		Database("workflow_test"))
	if err := epg.Start(); err != nil {
		t.Skipf("embedded postgres unavailable: %v", err)
	}
	t.Cleanup(func() { _ = epg.Stop() })

	dsn := fmt.Sprintf(
		"host=localhost port=%d user=postgres password=postgres dbname=workflow_test sslmode=disable",
		testDBPort,
	)
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	db := &database.DB{DB: gdb}
	if err := db.AutoMigrate(&models.FulfillmentTask{}, &models.TaskItem{}, &models.CoaDocument{}); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return db
}

func TestDocumentCountFollowsUploadsAndDeletes(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	task := &models.FulfillmentTask{
		WorkflowType: models.WorkflowSales,
		CustomerName: "한빛케미칼",
		RequestDate:  "2025-09-01",
		WarehouseCd:  "WH-MK",
	}
	if err := svc.CreateTask(task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	first, err := svc.AddDocument(task.ID, &models.CoaDocument{FileName: "coa-1.pdf"}, []byte("certificate one"))
	if err != nil {
		t.Fatalf("first AddDocument failed: %v", err)
	}
	if _, err := svc.AddDocument(task.ID, &models.CoaDocument{FileName: "coa-2.pdf"}, []byte("certificate two")); err != nil {
		t.Fatalf("second AddDocument failed: %v", err)
	}

	got, err := svc.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.DocumentCount != 2 {
		t.Errorf("expected documentCount 2 after two uploads, got %d", got.DocumentCount)
	}

	deleted, err := svc.DeleteDocument(first.ID)
	if err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	if deleted.FileName != "coa-1.pdf" {
		t.Errorf("expected the deleted record back, got %+v", deleted)
	}

	got, err = svc.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask after delete failed: %v", err)
	}
	if got.DocumentCount != 1 {
		t.Errorf("expected documentCount 1 after delete, got %d", got.DocumentCount)
	}

	docs, err := svc.ListDocuments(task.ID)
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(docs) != 1 || docs[0].FileName != "coa-2.pdf" {
		t.Errorf("expected only the remaining document, got %+v", docs)
	}
}

func TestAddDocumentRejectsOversize(t *testing.T) {
	svc := NewService(nil) // rejected before any DB access

	_, err := svc.AddDocument(1, &models.CoaDocument{FileName: "big.pdf"}, make([]byte, MaxDocumentSize+1))
	if err == nil {
		t.Fatal("expected oversize rejection")
	}
	if !strings.Contains(err.Error(), "10 MiB") {
		t.Errorf("rejection should name the limit, got: %v", err)
	}
}
