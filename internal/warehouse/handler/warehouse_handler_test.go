package handler

import (
	"net/http"
	"testing"

	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/testutil"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/repository"
	"github.com/Legacy-Solutions-Inc/arsd-ops/internal/warehouse/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupWarehouseTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.SeedTestProject(t, db, "proj-test-1", "Test Tower Project")

	repos := repository.NewRepositories(db)
	cache := service.NewStockCache(nil, 0, nil)
	deliveryHandler := NewDeliveryHandler(service.NewDeliveryService(repos.Delivery, cache))
	releaseHandler := NewReleaseHandler(service.NewReleaseService(repos.Release, cache))
	ipowHandler := NewIPOWHandler(service.NewIPOWService(repos.IPOW, cache))
	stockHandler := NewStockHandler(service.NewStockService(repos.IPOW, repos.Delivery, repos.Release, repos.Override, cache))

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	deliveries := api.Group("/delivery-receipts")
	deliveries.GET("", deliveryHandler.List)
	deliveries.POST("", deliveryHandler.Create)
	deliveries.GET("/:id", deliveryHandler.Get)
	deliveries.PUT("/:id/lock", deliveryHandler.SetLock)

	releases := api.Group("/release-forms")
	releases.GET("", releaseHandler.List)
	releases.POST("", releaseHandler.Create)
	releases.GET("/:id", releaseHandler.Get)
	releases.PUT("/:id", releaseHandler.Update)
	releases.PUT("/:id/lock", releaseHandler.SetLock)

	projects := api.Group("/projects")
	projects.GET("/:id/ipow", ipowHandler.List)
	projects.GET("/:id/stock", stockHandler.Get)
	projects.PUT("/:id/stock/po", stockHandler.SetPO)

	return router, db
}

func createDelivery(t *testing.T, router *gin.Engine, token string, items []map[string]interface{}) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{
		"project_id":    "proj-test-1",
		"supplier":      "ACME Builders Supply",
		"received_date": "2026-08-01",
		"warehouseman":  "Juan Dela Cruz",
		"items":         items,
	}
	w := testutil.DoRequest(router, "POST", "/api/v1/delivery-receipts", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})
}

func createRelease(t *testing.T, router *gin.Engine, token string, items []map[string]interface{}) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{
		"project_id":   "proj-test-1",
		"received_by":  "Site Foreman",
		"release_date": "2026-08-02",
		"items":        items,
	}
	w := testutil.DoRequest(router, "POST", "/api/v1/release-forms", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})
}

func TestDeliveryCreate(t *testing.T) {
	router, _ := setupWarehouseTest(t)
	token := testutil.WarehousemanToken()

	dr := createDelivery(t, router, token, []map[string]interface{}{
		{"description": "Cement 40kg", "wbs": "1.1", "quantity": 100, "unit": "bag"},
	})

	number, _ := dr["dr_number"].(string)
	if len(number) == 0 {
		t.Error("Expected a generated DR number")
	}
	if dr["locked"] != true {
		t.Error("Expected receipt to be created locked")
	}
	items := dr["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
}

func TestDeliveryCreateRequiresItems(t *testing.T) {
	router, _ := setupWarehouseTest(t)
	token := testutil.WarehousemanToken()

	body := map[string]interface{}{
		"project_id":    "proj-test-1",
		"supplier":      "ACME",
		"received_date": "2026-08-01",
		"warehouseman":  "Juan",
		"items":         []map[string]interface{}{},
	}
	w := testutil.DoRequest(router, "POST", "/api/v1/delivery-receipts", body, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty item list, got %d", w.Code)
	}
}

func TestDeliveryCreateBadDate(t *testing.T) {
	router, _ := setupWarehouseTest(t)
	token := testutil.WarehousemanToken()

	body := map[string]interface{}{
		"project_id":    "proj-test-1",
		"supplier":      "ACME",
		"received_date": "08/01/2026",
		"warehouseman":  "Juan",
		"items": []map[string]interface{}{
			{"description": "Cement", "quantity": 1},
		},
	}
	w := testutil.DoRequest(router, "POST", "/api/v1/delivery-receipts", body, token)
	if w.Code == http.StatusCreated {
		t.Error("Expected malformed date to be rejected")
	}
}

func TestDeliveryUnlockThenGet(t *testing.T) {
	router, _ := setupWarehouseTest(t)
	token := testutil.WarehousemanToken()

	dr := createDelivery(t, router, token, []map[string]interface{}{
		{"description": "Rebar 16mm", "quantity": 50, "unit": "pc"},
	})
	id := dr["id"].(string)

	w := testutil.DoRequest(router, "PUT", "/api/v1/delivery-receipts/"+id+"/lock",
		map[string]interface{}{"locked": false}, testutil.AdminToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["locked"] != false {
		t.Error("Expected receipt to be unlocked")
	}
}

func TestReleaseUpdateLockedRejected(t *testing.T) {
	router, _ := setupWarehouseTest(t)
	token := testutil.WarehousemanToken()

	form := createRelease(t, router, token, []map[string]interface{}{
		{"description": "Cement 40kg", "quantity": 10, "unit": "bag"},
	})
	id := form["id"].(string)

	// Forms are created locked; the edit must bounce with 409 and leave
	// the items untouched.
	w := testutil.DoRequest(router, "PUT", "/api/v1/release-forms/"+id,
		map[string]interface{}{
			"items": []map[string]interface{}{
				{"description": "Swapped Item", "quantity": 99},
			},
		}, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409 for locked form, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(router, "GET", "/api/v1/release-forms/"+id, nil, token)
	resp := testutil.ParseResponse(w2)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	item := items[0].(map[string]interface{})
	if item["description"] != "Cement 40kg" {
		t.Errorf("Locked form items must be unchanged, got %v", item["description"])
	}
}

func TestReleaseUpdateAuthorOnly(t *testing.T) {
	router, _ := setupWarehouseTest(t)
	author := testutil.WarehousemanTokenFor("wh-author")
	other := testutil.WarehousemanTokenFor("wh-other")

	form := createRelease(t, router, author, []map[string]interface{}{
		{"description": "Plywood 1/2", "quantity": 20, "unit": "sheet"},
	})
	id := form["id"].(string)

	// Unlock first so the author check is what rejects.
	w := testutil.DoRequest(router, "PUT", "/api/v1/release-forms/"+id+"/lock",
		map[string]interface{}{"locked": false}, testutil.AdminToken())
	if w.Code != http.StatusOK {
		t.Fatalf("unlock: %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(router, "PUT", "/api/v1/release-forms/"+id,
		map[string]interface{}{
			"items": []map[string]interface{}{
				{"description": "Plywood 3/4", "quantity": 5},
			},
		}, other)
	if w2.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-author, got %d: %s", w2.Code, w2.Body.String())
	}

	w3 := testutil.DoRequest(router, "PUT", "/api/v1/release-forms/"+id,
		map[string]interface{}{
			"received_by": "New Foreman",
			"items": []map[string]interface{}{
				{"description": "Plywood 3/4", "quantity": 5, "unit": "sheet"},
			},
		}, author)
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected author edit to succeed, got %d: %s", w3.Code, w3.Body.String())
	}
	resp := testutil.ParseResponse(w3)
	data := resp["data"].(map[string]interface{})
	if data["received_by"] != "New Foreman" {
		t.Errorf("received_by = %v, want 'New Foreman'", data["received_by"])
	}
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected replaced item list of 1, got %d", len(items))
	}
}

func TestStockReconciliationEndToEnd(t *testing.T) {
	router, db := setupWarehouseTest(t)
	token := testutil.WarehousemanToken()

	// Seed a plan directly; import has its own test.
	db.Exec(`INSERT INTO ipow_items (id, project_id, wbs, description, unit, planned_qty, total_cost, sort_order, created_at, updated_at)
		VALUES ('ip-1', 'proj-test-1', '1.1', 'Cement 40kg', 'bag', 50, 12500, 1, NOW(), NOW())`)

	createDelivery(t, router, token, []map[string]interface{}{
		{"description": "Cement 40kg", "wbs": "1.1", "quantity": 100, "unit": "bag"},
	})
	createRelease(t, router, token, []map[string]interface{}{
		{"description": "Cement 40kg", "wbs": "1.1", "quantity": 40, "unit": "bag"},
	})

	w := testutil.DoRequest(router, "GET", "/api/v1/projects/proj-test-1/stock", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 stock row, got %d", len(items))
	}
	row := items[0].(map[string]interface{})
	if row["delivered"].(float64) != 100 {
		t.Errorf("delivered = %v, want 100", row["delivered"])
	}
	if row["utilized"].(float64) != 40 {
		t.Errorf("utilized = %v, want 40", row["utilized"])
	}
	if row["balance"].(float64) != 60 {
		t.Errorf("balance = %v, want 60", row["balance"])
	}
	if row["variance"].(float64) != 10 {
		t.Errorf("variance = %v, want 10", row["variance"])
	}
}

func TestStockSetPO(t *testing.T) {
	router, db := setupWarehouseTest(t)
	token := testutil.WarehousemanToken()

	db.Exec(`INSERT INTO ipow_items (id, project_id, wbs, description, unit, planned_qty, total_cost, sort_order, created_at, updated_at)
		VALUES ('ip-1', 'proj-test-1', '2.1', 'Rebar 16mm', 'pc', 200, 90000, 1, NOW(), NOW())`)

	createDelivery(t, router, token, []map[string]interface{}{
		{"description": "Rebar 16mm", "wbs": "2.1", "quantity": 90, "unit": "pc"},
	})

	w := testutil.DoRequest(router, "PUT", "/api/v1/projects/proj-test-1/stock/po",
		map[string]interface{}{"wbs": "2.1", "description": "Rebar 16mm", "po_quantity": 150}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	row := resp["data"].(map[string]interface{})
	if row["po_qty"].(float64) != 150 {
		t.Errorf("po_qty = %v, want 150", row["po_qty"])
	}
	if row["undelivered"].(float64) != 60 {
		t.Errorf("undelivered = %v, want 60", row["undelivered"])
	}
}

func TestStockSetPOUnknownRow(t *testing.T) {
	router, _ := setupWarehouseTest(t)
	token := testutil.WarehousemanToken()

	// Empty catalog: no plan, no observed items. Any key misses.
	w := testutil.DoRequest(router, "PUT", "/api/v1/projects/proj-test-1/stock/po",
		map[string]interface{}{"description": "No Such Item", "po_quantity": 5}, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for a key outside the catalog, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStockFallbackWithoutPlan(t *testing.T) {
	router, _ := setupWarehouseTest(t)
	token := testutil.WarehousemanToken()

	createDelivery(t, router, token, []map[string]interface{}{
		{"description": "Hollow Blocks 4in", "quantity": 500, "unit": "pc"},
	})

	w := testutil.DoRequest(router, "GET", "/api/v1/projects/proj-test-1/stock", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 fallback row, got %d", len(items))
	}
	row := items[0].(map[string]interface{})
	if row["description"] != "Hollow Blocks 4in" {
		t.Errorf("description = %v, want first-seen casing", row["description"])
	}
	if row["ipow_qty"].(float64) != 0 || row["variance"].(float64) != 0 {
		t.Error("fallback rows carry zero planned quantity and zero variance")
	}
}

func TestUnauthenticatedRejected(t *testing.T) {
	router, _ := setupWarehouseTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/delivery-receipts", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}
}
