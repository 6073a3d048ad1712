package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/inhandnet/MobiusPi-Project-Templates/internal/audit"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/config"
	"github.com/inhandnet/MobiusPi-Project-Templates/internal/infrastructure/database"
)

func seedAudit(t *testing.T, dbPath string, entries ...audit.Entry) {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Path: dbPath, WALMode: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	repo := audit.NewSQLiteRepository(db.DB)
	for i := range entries {
		if err := repo.Create(context.Background(), &entries[i]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
}

func TestAuditCmd_ListsEntries(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "vd.db")
	configPath := writeTestConfig(t, dir, dbPath)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	seedAudit(t, dbPath,
		audit.Entry{Action: audit.ActionApplied, Controller: "ctrl_a", Measure: "temperature", ServiceID: "svc", Details: map[string]any{"value": 30.5}, CreatedAt: base},
		audit.Entry{Action: audit.ActionRejected, Controller: "ctrl_a", Measure: "missing", ServiceID: "svc", CreatedAt: base.Add(time.Second)},
	)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"audit", "--config", configPath, "--measure", "temperature"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var result audit.ListResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if result.Total != 1 || len(result.Entries) != 1 {
		t.Fatalf("result = %+v, want one entry", result)
	}
	if got := result.Entries[0]; got.Action != audit.ActionApplied || got.Details["value"] != 30.5 {
		t.Errorf("entry = %+v", got)
	}
}

func TestAuditCmd_EmptyDatabase(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir, filepath.Join(dir, "fresh.db"))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"audit", "-c", configPath})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), `"entries": []`) {
		t.Errorf("output = %s, want an empty entries list", out.String())
	}
}

func TestAuditCmd_InvalidConfig(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"audit", "--config", "/nonexistent/config.yaml"})

	err := cmd.ExecuteContext(context.Background())
	if err == nil || !strings.Contains(err.Error(), "loading config") {
		t.Errorf("Execute() error = %v, want a config error", err)
	}
}
