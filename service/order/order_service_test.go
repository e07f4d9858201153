package order

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"storeops.GO/core/errs"
	catalogEntity "storeops.GO/model/entity/catalog"
	inventoryEntity "storeops.GO/model/entity/inventory"
	salesEntity "storeops.GO/model/entity/sales"
	inventoryRepo "storeops.GO/model/repository/inventory"
)

type fixture struct {
	db         *gorm.DB
	svc        *OrderService
	locationID uint
}

func setup(t *testing.T) *fixture {
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
		&salesEntity.Order{},
		&salesEntity.OrderItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	loc := inventoryEntity.Location{Code: "MAIN", Name: "Main", IsActive: 1}
	if err := db.Create(&loc).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	return &fixture{db: db, svc: NewOrderService(db), locationID: loc.LocationID}
}

func (f *fixture) variant(t *testing.T, sku string, price float64, qty int64) uint {
	t.Helper()
	prod := catalogEntity.Product{Name: "Product " + sku, IsActive: 1}
	if err := f.db.Create(&prod).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	v := catalogEntity.Variant{ProductID: prod.EntityID, SKU: sku, Name: "Variant " + sku, UnitPrice: price}
	if err := f.db.Create(&v).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	repo, err := inventoryRepo.NewInventoryRepository(f.db)
	if err != nil {
		t.Fatalf("inventory repo: %v", err)
	}
	if err := repo.SetQuantity(v.EntityID, f.locationID, qty); err != nil {
		t.Fatalf("seed stock: %v", err)
	}
	return v.EntityID
}

func (f *fixture) qty(t *testing.T, variantID uint) int64 {
	t.Helper()
	repo, _ := inventoryRepo.NewInventoryRepository(f.db)
	qty, ok := repo.GetQuantity(variantID, f.locationID)
	if !ok {
		t.Fatalf("no ledger row for variant %d", variantID)
	}
	return qty
}

func TestCreateOrder(t *testing.T) {
	f := setup(t)
	variantID := f.variant(t, "SKU-001", 10.00, 50)

	order, err := f.svc.CreateOrder(CreateInput{
		Items:         []ItemInput{{VariantID: variantID, Quantity: 3}},
		PaymentStatus: "paid",
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.OrderNumber != fmt.Sprintf("SO-%09d", order.EntityID) {
		t.Errorf("OrderNumber = %q", order.OrderNumber)
	}
	if order.Status != salesEntity.StatusPending {
		t.Errorf("Status = %q, want pending", order.Status)
	}
	if order.TotalAmount != 30.00 {
		t.Errorf("TotalAmount = %v, want 30", order.TotalAmount)
	}
	if got := f.qty(t, variantID); got != 47 {
		t.Errorf("stock after order = %d, want 47", got)
	}

	fetched, err := f.svc.GetOrder(order.EntityID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if len(fetched.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(fetched.Items))
	}
	if fetched.Items[0].TotalPrice != 30.00 {
		t.Errorf("item TotalPrice = %v, want 30", fetched.Items[0].TotalPrice)
	}
}

func TestCreateOrder_CatalogPriceDefault(t *testing.T) {
	f := setup(t)
	variantID := f.variant(t, "SKU-001", 12.50, 10)
	override := 9.00

	// nil price takes the catalog price, explicit price wins.
	order, err := f.svc.CreateOrder(CreateInput{
		Items: []ItemInput{
			{VariantID: variantID, Quantity: 1},
			{VariantID: variantID, Quantity: 2, UnitPrice: &override},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.TotalAmount != 12.50+18.00 {
		t.Errorf("TotalAmount = %v, want 30.50", order.TotalAmount)
	}
}

func TestCreateOrder_InsufficientStockRollsBack(t *testing.T) {
	f := setup(t)
	okID := f.variant(t, "SKU-OK", 5.00, 100)
	shortID := f.variant(t, "SKU-SHORT", 5.00, 2)

	_, err := f.svc.CreateOrder(CreateInput{
		Items: []ItemInput{
			{VariantID: okID, Quantity: 10},
			{VariantID: shortID, Quantity: 5},
		},
	})
	if !errors.Is(err, errs.ErrInsufficientStock) {
		t.Fatalf("CreateOrder = %v, want ErrInsufficientStock", err)
	}

	// The whole transaction rolled back: no partial deduction, no header.
	if got := f.qty(t, okID); got != 100 {
		t.Errorf("SKU-OK qty = %d, want 100", got)
	}
	if got := f.qty(t, shortID); got != 2 {
		t.Errorf("SKU-SHORT qty = %d, want 2", got)
	}
	var headers int64
	f.db.Model(&salesEntity.Order{}).Count(&headers)
	if headers != 0 {
		t.Errorf("order headers = %d, want 0", headers)
	}
}

// setupFile builds a fixture on a temp-file WAL database so two writers can
// run at once; the in-memory database is single-connection.
func setupFile(t *testing.T) *fixture {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("order_svc_test_%d.db", time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	err = db.AutoMigrate(
		&catalogEntity.Product{},
		&catalogEntity.Variant{},
		&inventoryEntity.Location{},
		&inventoryEntity.InventoryRecord{},
		&salesEntity.Order{},
		&salesEntity.OrderItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	loc := inventoryEntity.Location{Code: "MAIN", Name: "Main", IsActive: 1}
	if err := db.Create(&loc).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	return &fixture{db: db, svc: NewOrderService(db), locationID: loc.LocationID}
}

func TestCreateOrder_ConcurrentCallersNeverOverdeduct(t *testing.T) {
	f := setupFile(t)
	variantID := f.variant(t, "SKU-RACE", 10.00, 10)

	// Two callers race for 7 units each; stock covers only one of them.
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.svc.CreateOrder(CreateInput{
				Items:         []ItemInput{{VariantID: variantID, Quantity: 7}},
				PaymentStatus: "paid",
				PaymentMethod: "card",
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		if !errors.Is(err, errs.ErrInsufficientStock) {
			t.Errorf("loser error = %v, want ErrInsufficientStock", err)
		}
	}
	if successes != 1 {
		t.Fatalf("successes = %d, want exactly 1", successes)
	}
	if got := f.qty(t, variantID); got != 3 {
		t.Errorf("qty = %d, want 3 (10 - one deduction of 7)", got)
	}

	var headers int64
	if err := f.db.Model(&salesEntity.Order{}).Count(&headers).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if headers != 1 {
		t.Errorf("order headers = %d, want 1 (loser rolled back)", headers)
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	f := setup(t)
	variantID := f.variant(t, "SKU-001", 10.00, 50)
	negative := -1.0

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"empty items", CreateInput{}},
		{"zero quantity", CreateInput{Items: []ItemInput{{VariantID: variantID, Quantity: 0}}}},
		{"negative quantity", CreateInput{Items: []ItemInput{{VariantID: variantID, Quantity: -2}}}},
		{"negative price", CreateInput{Items: []ItemInput{{VariantID: variantID, Quantity: 1, UnitPrice: &negative}}}},
		{"unknown payment status", CreateInput{Items: []ItemInput{{VariantID: variantID, Quantity: 1}}, PaymentStatus: "maybe"}},
		{"discount exceeds total", CreateInput{Items: []ItemInput{{VariantID: variantID, Quantity: 1}}, DiscountAmount: 1000}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.CreateOrder(tc.in); !errs.IsValidation(err) {
				t.Errorf("CreateOrder = %v, want validation error", err)
			}
		})
	}

	if got := f.qty(t, variantID); got != 50 {
		t.Errorf("qty after rejected orders = %d, want 50", got)
	}
}

func TestCreateOrder_UnknownVariant(t *testing.T) {
	f := setup(t)
	_, err := f.svc.CreateOrder(CreateInput{
		Items: []ItemInput{{VariantID: 9999, Quantity: 1}},
	})
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("CreateOrder unknown variant = %v, want ErrNotFound", err)
	}
}

func TestUpdateOrderStatus_HappyPath(t *testing.T) {
	f := setup(t)
	variantID := f.variant(t, "SKU-001", 10.00, 50)
	order, err := f.svc.CreateOrder(CreateInput{Items: []ItemInput{{VariantID: variantID, Quantity: 1}}})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	for _, next := range []salesEntity.Status{
		salesEntity.StatusProcessing,
		salesEntity.StatusShipped,
		salesEntity.StatusDelivered,
	} {
		if err := f.svc.UpdateOrderStatus(order.EntityID, next); err != nil {
			t.Fatalf("UpdateOrderStatus %s: %v", next, err)
		}
	}

	fetched, _ := f.svc.GetOrder(order.EntityID)
	if fetched.Status != salesEntity.StatusDelivered {
		t.Errorf("final status = %q, want delivered", fetched.Status)
	}

	// Delivered is terminal.
	err = f.svc.UpdateOrderStatus(order.EntityID, salesEntity.StatusCancelled)
	if !errors.Is(err, errs.ErrInvalidTransition) {
		t.Errorf("cancel delivered = %v, want ErrInvalidTransition", err)
	}
}

func TestUpdateOrderStatus_RejectsSkips(t *testing.T) {
	f := setup(t)
	variantID := f.variant(t, "SKU-001", 10.00, 50)
	order, _ := f.svc.CreateOrder(CreateInput{Items: []ItemInput{{VariantID: variantID, Quantity: 1}}})

	for _, next := range []salesEntity.Status{
		salesEntity.StatusShipped,
		salesEntity.StatusDelivered,
		salesEntity.StatusPending,
	} {
		if err := f.svc.UpdateOrderStatus(order.EntityID, next); !errors.Is(err, errs.ErrInvalidTransition) {
			t.Errorf("pending -> %s = %v, want ErrInvalidTransition", next, err)
		}
	}

	if err := f.svc.UpdateOrderStatus(order.EntityID, "bogus"); !errs.IsValidation(err) {
		t.Errorf("unknown status = %v, want validation error", err)
	}
	if err := f.svc.UpdateOrderStatus(4242, salesEntity.StatusProcessing); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("missing order = %v, want ErrNotFound", err)
	}
}

func TestUpdateOrderStatus_CancelRestocks(t *testing.T) {
	f := setup(t)
	variantID := f.variant(t, "SKU-001", 10.00, 50)
	order, err := f.svc.CreateOrder(CreateInput{Items: []ItemInput{{VariantID: variantID, Quantity: 8}}})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if got := f.qty(t, variantID); got != 42 {
		t.Fatalf("qty after order = %d, want 42", got)
	}

	if err := f.svc.UpdateOrderStatus(order.EntityID, salesEntity.StatusProcessing); err != nil {
		t.Fatalf("to processing: %v", err)
	}
	if err := f.svc.UpdateOrderStatus(order.EntityID, salesEntity.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := f.qty(t, variantID); got != 50 {
		t.Errorf("qty after cancel = %d, want 50", got)
	}

	// Cancel is terminal; a second cancel must not restock again.
	err = f.svc.UpdateOrderStatus(order.EntityID, salesEntity.StatusCancelled)
	if !errors.Is(err, errs.ErrInvalidTransition) {
		t.Fatalf("second cancel = %v, want ErrInvalidTransition", err)
	}
	if got := f.qty(t, variantID); got != 50 {
		t.Errorf("qty after second cancel = %d, want 50", got)
	}
}

func TestCanTransition(t *testing.T) {
	legal := []struct{ from, to salesEntity.Status }{
		{salesEntity.StatusPending, salesEntity.StatusProcessing},
		{salesEntity.StatusPending, salesEntity.StatusCancelled},
		{salesEntity.StatusProcessing, salesEntity.StatusShipped},
		{salesEntity.StatusProcessing, salesEntity.StatusCancelled},
		{salesEntity.StatusShipped, salesEntity.StatusDelivered},
	}
	for _, tc := range legal {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = false, want true", tc.from, tc.to)
		}
	}
	illegal := []struct{ from, to salesEntity.Status }{
		{salesEntity.StatusPending, salesEntity.StatusShipped},
		{salesEntity.StatusShipped, salesEntity.StatusCancelled},
		{salesEntity.StatusDelivered, salesEntity.StatusCancelled},
		{salesEntity.StatusCancelled, salesEntity.StatusPending},
		{salesEntity.StatusPending, salesEntity.StatusPending},
	}
	for _, tc := range illegal {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("CanTransition(%s, %s) = true, want false", tc.from, tc.to)
		}
	}
}
