package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/entity"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/recon"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// The four independent sources a reconciliation reads. The gorm
// repositories satisfy these; tests inject in-memory fakes.
type PlanSource interface {
	ListByProject(ctx context.Context, projectID string) ([]entity.IPOWItem, error)
}

type DeliverySource interface {
	ListItemsByProject(ctx context.Context, projectID string) ([]entity.DeliveryItem, error)
}

type ReleaseSource interface {
	ListItemsByProject(ctx context.Context, projectID string) ([]entity.ReleaseItem, error)
}

type OverrideStore interface {
	Upsert(ctx context.Context, ov *entity.POOverride) error
	ListByProject(ctx context.Context, projectID string) ([]entity.POOverride, error)
}

// StockService computes the reconciled stock-status table per project.
type StockService struct {
	plan       PlanSource
	deliveries DeliverySource
	releases   ReleaseSource
	overrides  OverrideStore
	cache      *StockCache
}

func NewStockService(plan PlanSource, deliveries DeliverySource, releases ReleaseSource, overrides OverrideStore, cache *StockCache) *StockService {
	if cache == nil {
		cache = NewStockCache(nil, 0, nil)
	}
	return &StockService{
		plan:       plan,
		deliveries: deliveries,
		releases:   releases,
		overrides:  overrides,
		cache:      cache,
	}
}

// GetStockItems returns the full stock table for the project. The four
// source reads fan out concurrently; any failure fails the whole call and
// no partial table is returned.
func (s *StockService) GetStockItems(ctx context.Context, projectID string) ([]entity.StockItem, error) {
	if items, ok := s.cache.Get(ctx, projectID); ok {
		return items, nil
	}

	in, err := s.fetchInputs(ctx, projectID)
	if err != nil {
		return nil, err
	}

	items := recon.Reconcile(in)
	s.cache.Set(ctx, projectID, items)
	return items, nil
}

// SetPOOverride upserts the PO target for one item key and returns the
// recomputed row. A non-finite quantity is coerced to 0, not rejected
// (inherited behavior, kept for compatibility).
func (s *StockService) SetPOOverride(ctx context.Context, projectID string, wbs *string, description string, poQty float64, userID string) (*entity.StockItem, error) {
	if math.IsNaN(poQty) || math.IsInf(poQty, 0) {
		poQty = 0
	}

	wbs = cleanWBS(wbs)
	storedWBS := ""
	if wbs != nil {
		storedWBS = *wbs
	}

	ov := &entity.POOverride{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		WBS:         storedWBS,
		Description: strings.TrimSpace(description),
		POQuantity:  poQty,
		UpdatedBy:   userID,
	}
	if err := s.overrides.Upsert(ctx, ov); err != nil {
		return nil, fmt.Errorf("upsert po override: %w", err)
	}

	s.cache.Invalidate(ctx, projectID)

	in, err := s.fetchInputs(ctx, projectID)
	if err != nil {
		return nil, err
	}

	row := recon.ReconcileOne(in, wbs, description)
	if row == nil {
		return nil, ErrRowNotFound
	}
	return row, nil
}

// fetchInputs issues the four reads concurrently and joins them, failing
// as a whole if any read fails.
func (s *StockService) fetchInputs(ctx context.Context, projectID string) (recon.Inputs, error) {
	var in recon.Inputs

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in.Plan, err = s.plan.ListByProject(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		in.Delivered, err = s.deliveries.ListItemsByProject(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		in.Released, err = s.releases.ListItemsByProject(gctx, projectID)
		return err
	})
	g.Go(func() error {
		var err error
		in.Overrides, err = s.overrides.ListByProject(gctx, projectID)
		return err
	})

	if err := g.Wait(); err != nil {
		return recon.Inputs{}, fmt.Errorf("fetch stock inputs: %w", err)
	}
	return in, nil
}

var stockExportHeaders = []string{
	"WBS", "Item Description", "Unit", "Resource", "IPOW Qty",
	"Delivered", "Utilized", "Balance", "Variance", "PO Qty",
	"Undelivered", "Total Cost",
}

// ExportStock renders the reconciled table as an xlsx workbook.
func (s *StockService) ExportStock(ctx context.Context, projectID string) (*excelize.File, string, error) {
	items, err := s.GetStockItems(ctx, projectID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Stock Status"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range stockExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, item := range items {
		row := rowIdx + 2
		wbs := ""
		if item.WBS != nil {
			wbs = *item.WBS
		}
		resource := ""
		if item.Resource != nil {
			resource = *item.Resource
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), wbs)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Description)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Unit)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), resource)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.IPOWQty)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.Delivered)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.Utilized)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.Balance)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), item.Variance)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), item.POQty)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), item.Undelivered)
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), item.TotalCost)
	}

	filename := fmt.Sprintf("stock-status-%s-%s.xlsx", projectID, time.Now().Format("20060102"))
	return f, filename, nil
}

// cleanWBS maps empty or whitespace-only WBS strings to "no WBS".
func cleanWBS(wbs *string) *string {
	if wbs == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*wbs)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
