package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/testutil"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/repository"
	"github.com/xuri/excelize/v2"
)

func buildIPOWWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := []interface{}{"WBS", "Description", "Unit", "Resource", "Planned Qty", "Total Cost"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return buf
}

func TestIPOWImport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewIPOWService(repos.IPOW, NewStockCache(nil, 0, nil))
	ctx := context.Background()

	buf := buildIPOWWorkbook(t, [][]interface{}{
		{"1.1", "Cement 40kg", "bag", "Material", "1,250", "312,500.00"},
		{"", "Sand", "cu.m", "", "20", "18000"},
		{"1.2", "", "", "", "99", "99"}, // blank description, skipped
	})

	count, err := svc.Import(ctx, "proj-import", buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 2 {
		t.Errorf("imported = %d, want 2 (blank description skipped)", count)
	}

	items, err := svc.ListByProject(ctx, "proj-import")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 plan rows, got %d", len(items))
	}

	cement := items[0]
	if cement.WBS == nil || *cement.WBS != "1.1" {
		t.Errorf("wbs = %v, want 1.1", cement.WBS)
	}
	if cement.PlannedQty != 1250 {
		t.Errorf("planned_qty = %v, want 1250 (thousands separator stripped)", cement.PlannedQty)
	}
	if cement.TotalCost != 312500 {
		t.Errorf("total_cost = %v, want 312500", cement.TotalCost)
	}

	sand := items[1]
	if sand.WBS != nil {
		t.Errorf("expected keyless sand row, got wbs %v", *sand.WBS)
	}
	if sand.SortOrder != 2 {
		t.Errorf("sort_order = %d, want 2", sand.SortOrder)
	}
}

func TestIPOWImportReplacesExistingPlan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewIPOWService(repos.IPOW, NewStockCache(nil, 0, nil))
	ctx := context.Background()

	first := buildIPOWWorkbook(t, [][]interface{}{
		{"1.1", "Old Item A", "pc", "", "10", "100"},
		{"1.2", "Old Item B", "pc", "", "10", "100"},
	})
	if _, err := svc.Import(ctx, "proj-import", first); err != nil {
		t.Fatalf("first import: %v", err)
	}

	second := buildIPOWWorkbook(t, [][]interface{}{
		{"2.1", "New Item", "pc", "", "5", "50"},
	})
	count, err := svc.Import(ctx, "proj-import", second)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if count != 1 {
		t.Errorf("imported = %d, want 1", count)
	}

	items, err := svc.ListByProject(ctx, "proj-import")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected plan to be replaced wholesale, got %d rows", len(items))
	}
	if items[0].Description != "New Item" {
		t.Errorf("item = %q, want %q", items[0].Description, "New Item")
	}
}
