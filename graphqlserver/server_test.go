package graphqlserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	catalogEntity "storeops.GO/model/entity/catalog"
	inventoryEntity "storeops.GO/model/entity/inventory"
	inventoryRepo "storeops.GO/model/repository/inventory"
	"storeops.GO/service/stock"
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
	db.Create(&inventoryEntity.Location{Code: "MAIN", Name: "Main", IsActive: 1})
	stock.InvalidateSummary()
	t.Cleanup(stock.InvalidateSummary)
	return db
}

func seed(t *testing.T, db *gorm.DB, sku string, qty int64) {
	t.Helper()
	prod := catalogEntity.Product{Name: "Widget", IsActive: 1}
	if err := db.Create(&prod).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	v := catalogEntity.Variant{ProductID: prod.EntityID, SKU: sku, Name: "Widget Std", UnitPrice: 10}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	repo, _ := inventoryRepo.NewInventoryRepository(db)
	if err := repo.SetQuantity(v.EntityID, 1, qty); err != nil {
		t.Fatalf("seed stock: %v", err)
	}
}

func exec(t *testing.T, db *gorm.DB, query string, dest interface{}) {
	t.Helper()
	schema, err := NewSchema(db)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	res := schema.Exec(context.Background(), query, "", nil)
	if len(res.Errors) > 0 {
		t.Fatalf("graphql errors: %v", res.Errors)
	}
	if err := json.Unmarshal(res.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func TestSchemaParses(t *testing.T) {
	if _, err := NewSchema(testDB(t)); err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
}

func TestInventoryListQuery(t *testing.T) {
	db := testDB(t)
	seed(t, db, "GQL-1", 3)

	var out struct {
		InventoryList struct {
			TotalCount int32
			Items      []struct {
				Sku      string
				Quantity int32
				Status   string
			}
			PageInfo struct {
				CurrentPage int32
				TotalPages  int32
			}
		}
	}
	exec(t, db, `{
		inventoryList(search: "GQL") {
			totalCount
			items { sku quantity status }
			pageInfo { currentPage totalPages }
		}
	}`, &out)

	if out.InventoryList.TotalCount != 1 {
		t.Fatalf("totalCount = %d, want 1", out.InventoryList.TotalCount)
	}
	row := out.InventoryList.Items[0]
	if row.Sku != "GQL-1" || row.Quantity != 3 || row.Status != "low_stock" {
		t.Errorf("row = %+v", row)
	}
	if out.InventoryList.PageInfo.CurrentPage != 1 || out.InventoryList.PageInfo.TotalPages != 1 {
		t.Errorf("pageInfo = %+v", out.InventoryList.PageInfo)
	}
}

func TestStockSummaryQuery(t *testing.T) {
	db := testDB(t)
	seed(t, db, "GQL-1", 0)
	seed(t, db, "GQL-2", 100)

	var out struct {
		StockSummary struct {
			TotalRecords int32
			OutOfStock   int32
			LowStock     int32
		}
	}
	exec(t, db, `{ stockSummary { totalRecords outOfStock lowStock } }`, &out)

	if out.StockSummary.TotalRecords != 2 || out.StockSummary.OutOfStock != 1 {
		t.Errorf("summary = %+v", out.StockSummary)
	}
}

func TestStockLevelQuery(t *testing.T) {
	db := testDB(t)
	seed(t, db, "GQL-1", 50)

	var out struct {
		StockLevel *struct {
			Sku      string
			Quantity int32
			Status   string
		}
	}
	exec(t, db, `{ stockLevel(sku: "GQL-1") { sku quantity status } }`, &out)
	if out.StockLevel == nil {
		t.Fatal("stockLevel = null")
	}
	if out.StockLevel.Quantity != 50 || out.StockLevel.Status != "in_stock" {
		t.Errorf("stockLevel = %+v", out.StockLevel)
	}

	exec(t, db, `{ stockLevel(sku: "MISSING") { sku } }`, &out)
	if out.StockLevel != nil {
		t.Errorf("stockLevel for unknown sku = %+v, want null", out.StockLevel)
	}
}
