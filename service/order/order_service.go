// Package order is the fulfillment orchestrator: it creates orders, writes
// line items, deducts stock, and drives the order status state machine.
package order

import (
	"time"

	"gorm.io/gorm"

	"storeops.GO/core/errs"
	salesEntity "storeops.GO/model/entity/sales"
	catalogRepo "storeops.GO/model/repository/catalog"
	inventoryRepo "storeops.GO/model/repository/inventory"
	salesRepo "storeops.GO/model/repository/sales"
	stockService "storeops.GO/service/stock"
)

// ItemInput is one requested order line. UnitPrice nil means "price from the
// catalog" (POS flow); online flows pass the price they quoted.
type ItemInput struct {
	VariantID uint     `json:"variant_id"`
	Quantity  int64    `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
}

// CreateInput is the order creation request.
type CreateInput struct {
	CustomerID     *uint       `json:"customer_id"`
	Items          []ItemInput `json:"items"`
	PaymentStatus  string      `json:"payment_status"`
	PaymentMethod  string      `json:"payment_method"`
	DiscountAmount float64     `json:"discount_amount"`
	TaxAmount      float64     `json:"tax_amount"`
	Notes          string      `json:"notes"`
}

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

var paymentStatuses = map[salesEntity.PaymentStatus]bool{
	salesEntity.PaymentUnpaid:   true,
	salesEntity.PaymentPaid:     true,
	salesEntity.PaymentRefunded: true,
}

// CreateOrder validates the request, then writes header, items and stock
// deductions as one transaction. Any failed deduction aborts the whole
// operation: no partial deduction survives, and the header is never
// observable without its items.
func (s *OrderService) CreateOrder(in CreateInput) (*salesEntity.Order, error) {
	if len(in.Items) == 0 {
		return nil, errs.Validation("items", "must not be empty")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, errs.Validation("quantity", "must be positive")
		}
		if it.UnitPrice != nil && *it.UnitPrice < 0 {
			return nil, errs.Validation("unit_price", "must not be negative")
		}
	}
	paymentStatus := salesEntity.PaymentStatus(in.PaymentStatus)
	if in.PaymentStatus == "" {
		paymentStatus = salesEntity.PaymentUnpaid
	} else if !paymentStatuses[paymentStatus] {
		return nil, errs.Validation("payment_status", "unknown value "+in.PaymentStatus)
	}

	ids := make([]uint, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.VariantID)
	}
	variants, err := catalogRepo.NewVariantRepository(s.db).BatchByIDs(ids)
	if err != nil {
		return nil, err
	}
	for _, it := range in.Items {
		if _, ok := variants[it.VariantID]; !ok {
			return nil, errs.ErrNotFound
		}
	}

	locationID, err := inventoryRepo.DefaultLocationID(s.db)
	if err != nil {
		return nil, err
	}

	items := make([]salesEntity.OrderItem, 0, len(in.Items))
	var subtotal float64
	for _, it := range in.Items {
		price := variants[it.VariantID].UnitPrice
		if it.UnitPrice != nil {
			price = *it.UnitPrice
		}
		lineTotal := float64(it.Quantity) * price
		subtotal += lineTotal
		items = append(items, salesEntity.OrderItem{
			VariantID:  it.VariantID,
			Quantity:   it.Quantity,
			UnitPrice:  price,
			TotalPrice: lineTotal,
		})
	}
	total := subtotal + in.TaxAmount - in.DiscountAmount
	if total < 0 {
		return nil, errs.Validation("discount_amount", "exceeds order total")
	}

	order := &salesEntity.Order{
		Status:         salesEntity.StatusPending,
		PaymentStatus:  paymentStatus,
		PaymentMethod:  in.PaymentMethod,
		TotalAmount:    total,
		DiscountAmount: in.DiscountAmount,
		TaxAmount:      in.TaxAmount,
		CustomerID:     in.CustomerID,
		Notes:          in.Notes,
		OrderedAt:      time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := salesRepo.CreateWithItems(tx, order, items); err != nil {
			return err
		}
		for _, it := range items {
			if err := inventoryRepo.AdjustQuantity(tx, it.VariantID, locationID, -it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stockService.InvalidateSummary()
	return order, nil
}

// GetOrder returns the order with its items.
func (s *OrderService) GetOrder(id uint) (*salesEntity.Order, error) {
	return salesRepo.NewOrderRepository(s.db).FindByIDWithItems(id)
}

// UpdateOrderStatus applies one state-machine transition. Cancelling an
// unfulfilled order restocks its items in the same transaction — the order
// can only be cancelled before shipment, so the goods are still on hand.
func (s *OrderService) UpdateOrderStatus(id uint, next salesEntity.Status) error {
	if !knownStatus(next) {
		return errs.Validation("status", "unknown value "+string(next))
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		current, err := salesRepo.CurrentStatus(tx, id)
		if err != nil {
			return err
		}
		if !CanTransition(current, next) {
			return errs.ErrInvalidTransition
		}
		rows, err := salesRepo.UpdateStatusIf(tx, id, current, next)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Lost the race with a concurrent status change.
			return errs.ErrConflict
		}

		if next == salesEntity.StatusCancelled {
			locationID, err := inventoryRepo.DefaultLocationID(tx)
			if err != nil {
				return err
			}
			items, err := salesRepo.ItemsOf(tx, id)
			if err != nil {
				return err
			}
			for _, it := range items {
				if err := inventoryRepo.AdjustQuantity(tx, it.VariantID, locationID, it.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	stockService.InvalidateSummary()
	return nil
}
