package stock

import (
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	catalogEntity "storeops.GO/model/entity/catalog"
	inventoryEntity "storeops.GO/model/entity/inventory"
	inventoryRepo "storeops.GO/model/repository/inventory"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&catalogEntity.Product{},
		&catalogEntity.Variant{},
		&inventoryEntity.Location{},
		&inventoryEntity.InventoryRecord{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	loc := inventoryEntity.Location{Code: "MAIN", Name: "Main", IsActive: 1}
	if err := db.Create(&loc).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	// Summary state is process-global; isolate each test.
	InvalidateSummary()
	t.Cleanup(InvalidateSummary)
	return db
}

func seedVariant(t *testing.T, db *gorm.DB, sku string) uint {
	t.Helper()
	prod := catalogEntity.Product{Name: "Product " + sku, IsActive: 1}
	if err := db.Create(&prod).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	v := catalogEntity.Variant{ProductID: prod.EntityID, SKU: sku, Name: "Variant " + sku, UnitPrice: 4}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	return v.EntityID
}

func TestImportStock(t *testing.T) {
	db := testDB(t)
	seedVariant(t, db, "SKU-A")
	seedVariant(t, db, "SKU-B")

	qtyA, qtyBad := int64(30), int64(-5)
	reorder := int64(3)
	bin := "B-07"
	res, err := ImportStock(db, []StockItemInput{
		{SKU: "SKU-A", Qty: &qtyA, ReorderPoint: &reorder, BinLocation: &bin},
		{SKU: "SKU-B", Qty: &qtyBad},
		{SKU: "SKU-MISSING", Qty: &qtyA},
		{SKU: ""},
	}, 0)
	if err != nil {
		t.Fatalf("ImportStock: %v", err)
	}
	if res.Imported != 1 {
		t.Errorf("Imported = %d, want 1", res.Imported)
	}
	if res.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", res.Skipped)
	}
	if len(res.Warnings) != 3 {
		t.Errorf("Warnings = %v, want 3 entries", res.Warnings)
	}

	rows, err := LowStock(db)
	if err != nil {
		t.Fatalf("LowStock: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("LowStock = %v, want none (30 > 3)", rows)
	}

	list, err := List(context.Background(), db, "", 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list.TotalCount != 1 {
		t.Fatalf("TotalCount = %d, want 1", list.TotalCount)
	}
	row := list.Items[0]
	if row.SKU != "SKU-A" || row.AvailableQty != 30 || row.ReorderPoint != 3 || row.BinLocation != "B-07" {
		t.Errorf("row = %+v", row)
	}
	if row.Status != string(StatusInStock) {
		t.Errorf("Status = %q, want in_stock", row.Status)
	}
}

func TestImportStock_PartialRowKeepsExistingFields(t *testing.T) {
	db := testDB(t)
	variantID := seedVariant(t, db, "SKU-A")

	repo, _ := inventoryRepo.NewInventoryRepository(db)
	if err := repo.SetQuantity(variantID, 1, 30); err != nil {
		t.Fatalf("seed qty: %v", err)
	}
	if err := repo.SetReorderPoint(variantID, 1, 7); err != nil {
		t.Fatalf("seed reorder: %v", err)
	}

	// A row that only carries a bin location must leave qty and reorder
	// point alone.
	bin := "B-99"
	res, err := ImportStock(db, []StockItemInput{{SKU: "SKU-A", BinLocation: &bin}}, 0)
	if err != nil {
		t.Fatalf("ImportStock: %v", err)
	}
	if res.Imported != 1 {
		t.Errorf("Imported = %d, want 1", res.Imported)
	}

	var rec inventoryEntity.InventoryRecord
	if err := db.Where("variant_id = ?", variantID).First(&rec).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if rec.AvailableQty != 30 {
		t.Errorf("AvailableQty = %d, want 30", rec.AvailableQty)
	}
	if rec.ReorderPoint != 7 {
		t.Errorf("ReorderPoint = %d, want 7", rec.ReorderPoint)
	}
	if rec.BinLocation != "B-99" {
		t.Errorf("BinLocation = %q, want B-99", rec.BinLocation)
	}

	// Mixed batch: qty-only row must not reset the bin just written.
	qty := int64(50)
	if _, err := ImportStock(db, []StockItemInput{{SKU: "SKU-A", Qty: &qty}}, 0); err != nil {
		t.Fatalf("ImportStock qty-only: %v", err)
	}
	if err := db.Where("variant_id = ?", variantID).First(&rec).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if rec.AvailableQty != 50 || rec.ReorderPoint != 7 || rec.BinLocation != "B-99" {
		t.Errorf("record = qty %d reorder %d bin %q, want 50/7/B-99",
			rec.AvailableQty, rec.ReorderPoint, rec.BinLocation)
	}
}

func TestImportStockCSV(t *testing.T) {
	db := testDB(t)
	variantID := seedVariant(t, db, "SKU-A")

	csv := "sku,qty,reorder_point,bin_location\n" +
		"SKU-A,12,4,A-02\n" +
		"SKU-A,notanumber,,\n"
	res, err := ImportStockCSV(db, strings.NewReader(csv), 0)
	if err != nil {
		t.Fatalf("ImportStockCSV: %v", err)
	}
	if res.Imported != 1 {
		t.Errorf("Imported = %d, want 1", res.Imported)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "invalid qty") {
		t.Errorf("Warnings = %v", res.Warnings)
	}

	repo, _ := inventoryRepo.NewInventoryRepository(db)
	qty, ok := repo.GetQuantity(variantID, 1)
	if !ok || qty != 12 {
		t.Errorf("qty = %d, %v, want 12", qty, ok)
	}

	if _, err := ImportStockCSV(db, strings.NewReader("name,qty\nfoo,1\n"), 0); err == nil {
		t.Error("CSV without sku column must fail")
	}
}

func TestSummary(t *testing.T) {
	db := testDB(t)
	repo, _ := inventoryRepo.NewInventoryRepository(db)

	outID := seedVariant(t, db, "SKU-OUT")
	lowID := seedVariant(t, db, "SKU-LOW")
	okID := seedVariant(t, db, "SKU-OK")
	for id, qty := range map[uint]int64{outID: 0, lowID: 5, okID: 200} {
		if err := repo.SetQuantity(id, 1, qty); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	counts, err := Summary(db)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if counts.Total != 3 || counts.OutOfStock != 1 || counts.LowStock != 1 {
		t.Errorf("counts = %+v, want total 3, out 1, low 1", counts)
	}

	// The summary is served from cache until invalidated.
	if err := repo.SetQuantity(okID, 1, 0); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	counts, err = Summary(db)
	if err != nil {
		t.Fatalf("Summary cached: %v", err)
	}
	if counts.OutOfStock != 1 {
		t.Errorf("cached OutOfStock = %d, want stale 1", counts.OutOfStock)
	}

	InvalidateSummary()
	counts, err = Summary(db)
	if err != nil {
		t.Fatalf("Summary refreshed: %v", err)
	}
	if counts.OutOfStock != 2 {
		t.Errorf("refreshed OutOfStock = %d, want 2", counts.OutOfStock)
	}
}

func TestList_SearchFallsBackToSQL(t *testing.T) {
	db := testDB(t)
	repo, _ := inventoryRepo.NewInventoryRepository(db)
	id := seedVariant(t, db, "FALLBACK-1")
	if err := repo.SetQuantity(id, 1, 9); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// No search engine configured: the LIKE path must serve the query.
	res, err := List(context.Background(), db, "FALLBACK", 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.TotalCount != 1 || res.Items[0].SKU != "FALLBACK-1" {
		t.Errorf("res = %+v", res)
	}
}
