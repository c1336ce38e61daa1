package recon

import (
	"math"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/entity"
)

// Inputs are the four independent reads a reconciliation joins. Deliveries
// must be flattened in receipt order and releases in form order (each with
// line order preserved); the fallback catalog depends on it.
type Inputs struct {
	Plan      []entity.IPOWItem
	Delivered []entity.DeliveryItem
	Released  []entity.ReleaseItem
	Overrides []entity.POOverride
}

// mode is the catalog the reconciliation walks: either the project's plan
// or, when no plan exists, a catalog derived from observed items. Chosen
// once per call.
type mode interface {
	rows() []row
}

// row is one catalog entry before aggregation.
type row struct {
	key        Key
	wbs        *string
	desc       string
	unit       string
	resource   *string
	plannedQty float64
	totalCost  float64
	planned    bool
}

type plannedMode struct {
	lines []entity.IPOWItem
}

func (m plannedMode) rows() []row {
	out := make([]row, 0, len(m.lines))
	for _, ln := range m.lines {
		out = append(out, row{
			key:        KeyFor(ln.WBS, ln.Description),
			wbs:        ln.WBS,
			desc:       ln.Description,
			unit:       ln.Unit,
			resource:   ln.Resource,
			plannedQty: ln.PlannedQty,
			totalCost:  ln.TotalCost,
			planned:    true,
		})
	}
	return out
}

type fallbackMode struct {
	catalog []row
}

func (m fallbackMode) rows() []row {
	return m.catalog
}

// chooseMode picks the planned path when any plan line exists, otherwise
// derives a catalog from the observed delivery and release descriptions:
// one entry per normalized description, keeping the first-seen original
// casing, delivery items (receipt order) ahead of release items (form
// order). Fallback rows never carry a WBS, so same-description lines merge
// across WBS codes when a project has no plan (inherited behavior).
func chooseMode(in Inputs) mode {
	if len(in.Plan) > 0 {
		return plannedMode{lines: in.Plan}
	}

	seen := make(map[string]bool)
	var catalog []row
	add := func(desc, unit string) {
		norm := Normalize(desc)
		if norm == "" || seen[norm] {
			return
		}
		seen[norm] = true
		catalog = append(catalog, row{
			key:  KeyFor(nil, desc),
			desc: desc,
			unit: unit,
		})
	}
	for _, it := range in.Delivered {
		add(it.Description, it.Unit)
	}
	for _, it := range in.Released {
		add(it.Description, it.Unit)
	}
	return fallbackMode{catalog: catalog}
}

// Reconcile joins the four inputs into the stock-status table: one row per
// catalog entry, in catalog order. Pure function; all fetching and failure
// handling stays with the caller.
func Reconcile(in Inputs) []entity.StockItem {
	overrides := make(map[Key]float64, len(in.Overrides))
	for _, ov := range in.Overrides {
		overrides[overrideKey(ov)] = ov.POQuantity
	}

	rows := chooseMode(in).rows()
	out := make([]entity.StockItem, 0, len(rows))
	for _, r := range rows {
		delivered := sumDeliveries(r, in.Delivered)
		utilized := sumReleases(r, in.Released)
		balance := delivered - utilized

		variance := 0.0
		if r.planned {
			variance = balance - r.plannedQty
			if !isFinite(variance) {
				variance = 0
			}
		}

		po := overrides[r.key]

		out = append(out, entity.StockItem{
			WBS:         r.wbs,
			Description: r.desc,
			Unit:        r.unit,
			Resource:    r.resource,
			IPOWQty:     r.plannedQty,
			Delivered:   delivered,
			Utilized:    utilized,
			Balance:     balance,
			Variance:    variance,
			POQty:       po,
			Undelivered: po - delivered,
			TotalCost:   r.totalCost,
		})
	}
	return out
}

// ReconcileOne recomputes the single row whose key matches (wbs,
// description), or nil when the catalog has no such row.
func ReconcileOne(in Inputs, wbs *string, description string) *entity.StockItem {
	target := KeyFor(wbs, description)
	items := Reconcile(in)
	for i := range items {
		if KeyFor(items[i].WBS, items[i].Description) == target {
			return &items[i]
		}
	}
	return nil
}

// matches applies the row's matching rule to one observed line. Planned
// rows use the full key rule; fallback rows match by normalized description
// alone, so lines carrying a WBS still contribute to the derived catalog
// (same-description quantities merge across WBS codes when there is no
// plan).
func (r row) matches(itemWBS *string, itemDescription string) bool {
	if r.planned {
		return r.key.MatchesItem(itemWBS, itemDescription)
	}
	return Normalize(itemDescription) == r.key.Description
}

func sumDeliveries(r row, items []entity.DeliveryItem) float64 {
	var total float64
	for _, it := range items {
		if r.matches(it.WBS, it.Description) {
			total += it.Quantity
		}
	}
	return total
}

func sumReleases(r row, items []entity.ReleaseItem) float64 {
	var total float64
	for _, it := range items {
		if r.matches(it.WBS, it.Description) {
			total += it.Quantity
		}
	}
	return total
}

// overrideKey maps the stored row back to a key. The store keeps a missing
// WBS as the empty string to satisfy the unique index.
func overrideKey(ov entity.POOverride) Key {
	if ov.WBS == "" {
		return KeyFor(nil, ov.Description)
	}
	wbs := ov.WBS
	return KeyFor(&wbs, ov.Description)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
