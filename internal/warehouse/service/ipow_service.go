package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/entity"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/repository"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

type IPOWService struct {
	repo  *repository.IPOWRepository
	cache *StockCache
}

func NewIPOWService(repo *repository.IPOWRepository, cache *StockCache) *IPOWService {
	return &IPOWService{repo: repo, cache: cache}
}

func (s *IPOWService) ListByProject(ctx context.Context, projectID string) ([]entity.IPOWItem, error) {
	return s.repo.ListByProject(ctx, projectID)
}

// Import replaces the project's plan with the lines of an IPOW workbook.
// Expected columns: WBS, Description, Unit, Resource, Planned Qty, Total
// Cost; the first row is a header. Returns the number of imported lines.
func (s *IPOWService) Import(ctx context.Context, projectID string, r io.Reader) (int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var items []entity.IPOWItem
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		description := cell(row, 1)
		if strings.TrimSpace(description) == "" {
			continue
		}

		item := entity.IPOWItem{
			ID:          uuid.New().String(),
			ProjectID:   projectID,
			Description: description,
			Unit:        cell(row, 2),
			PlannedQty:  parseNumber(cell(row, 4)),
			TotalCost:   parseNumber(cell(row, 5)),
			SortOrder:   len(items) + 1,
		}
		if wbs := strings.TrimSpace(cell(row, 0)); wbs != "" {
			item.WBS = &wbs
		}
		if resource := strings.TrimSpace(cell(row, 3)); resource != "" {
			item.Resource = &resource
		}
		items = append(items, item)
	}

	if err := s.repo.ReplaceForProject(ctx, projectID, items); err != nil {
		return 0, fmt.Errorf("replace plan: %w", err)
	}

	s.cache.Invalidate(ctx, projectID)
	return len(items), nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseNumber tolerates thousands separators and blank cells.
func parseNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
