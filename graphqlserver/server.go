// Package graphqlserver exposes the read-only GraphQL surface: the inventory
// listing, the stock summary, and single-SKU stock level. Mutations stay on
// the REST API.
package graphqlserver

import (
	"context"
	"errors"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"storeops.GO/core/errs"
	catalogRepo "storeops.GO/model/repository/catalog"
	inventoryRepo "storeops.GO/model/repository/inventory"
	stockService "storeops.GO/service/stock"
)

const schemaString = `
schema {
	query: Query
}

type Query {
	inventoryList(search: String, pageSize: Int = 20, currentPage: Int = 1): InventoryListResult!
	stockSummary: StockSummary!
	stockLevel(sku: String!): StockLevel
}

type InventoryListResult {
	items: [InventoryRow!]!
	totalCount: Int!
	pageInfo: PageInfo!
}

type InventoryRow {
	sku: String!
	productName: String!
	variantName: String!
	quantity: Int!
	reorderPoint: Int!
	binLocation: String!
	unitPrice: Float!
	status: String!
}

type PageInfo {
	pageSize: Int!
	currentPage: Int!
	totalPages: Int!
}

type StockSummary {
	totalRecords: Int!
	outOfStock: Int!
	lowStock: Int!
}

type StockLevel {
	sku: String!
	quantity: Int!
	status: String!
}
`

// InventoryRow mirrors the schema type; resolved by field.
type InventoryRow struct {
	SKU          string
	ProductName  string
	VariantName  string
	Quantity     int32
	ReorderPoint int32
	BinLocation  string
	UnitPrice    float64
	Status       string
}

// Sku satisfies the schema's lowercase field name explicitly.
func (r InventoryRow) Sku() string { return r.SKU }

type PageInfo struct {
	PageSize    int32
	CurrentPage int32
	TotalPages  int32
}

type InventoryListResult struct {
	Items      []InventoryRow
	TotalCount int32
	PageInfo   PageInfo
}

type StockSummary struct {
	TotalRecords int32
	OutOfStock   int32
	LowStock     int32
}

type StockLevel struct {
	SKU      string
	Quantity int32
	Status   string
}

func (s StockLevel) Sku() string { return s.SKU }

// RootResolver is the root for graphql-go.
type RootResolver struct {
	db *gorm.DB
}

type inventoryListArgs struct {
	Search      *string
	PageSize    int32
	CurrentPage int32
}

func (r *RootResolver) InventoryList(ctx context.Context, args inventoryListArgs) (*InventoryListResult, error) {
	search := ""
	if args.Search != nil {
		search = *args.Search
	}
	res, err := stockService.List(ctx, r.db, search, int(args.CurrentPage), int(args.PageSize))
	if err != nil {
		return nil, err
	}

	items := make([]InventoryRow, 0, len(res.Items))
	for _, row := range res.Items {
		items = append(items, InventoryRow{
			SKU:          row.SKU,
			ProductName:  row.ProductName,
			VariantName:  row.VariantName,
			Quantity:     int32(row.AvailableQty),
			ReorderPoint: int32(row.ReorderPoint),
			BinLocation:  row.BinLocation,
			UnitPrice:    row.UnitPrice,
			Status:       row.Status,
		})
	}
	totalPages := (int(res.TotalCount) + res.PageSize - 1) / res.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return &InventoryListResult{
		Items:      items,
		TotalCount: int32(res.TotalCount),
		PageInfo: PageInfo{
			PageSize:    int32(res.PageSize),
			CurrentPage: int32(res.Page),
			TotalPages:  int32(totalPages),
		},
	}, nil
}

func (r *RootResolver) StockSummary() (*StockSummary, error) {
	counts, err := stockService.Summary(r.db)
	if err != nil {
		return nil, err
	}
	return &StockSummary{
		TotalRecords: int32(counts.Total),
		OutOfStock:   int32(counts.OutOfStock),
		LowStock:     int32(counts.LowStock),
	}, nil
}

func (r *RootResolver) StockLevel(args struct{ Sku string }) (*StockLevel, error) {
	variant, err := catalogRepo.NewVariantRepository(r.db).FindBySKU(args.Sku)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	locationID, err := inventoryRepo.DefaultLocationID(r.db)
	if err != nil {
		return nil, err
	}
	repo, err := inventoryRepo.NewInventoryRepository(r.db)
	if err != nil {
		return nil, err
	}
	var qty, reorder int64
	if rec, rerr := repo.Get(variant.EntityID, locationID); rerr == nil {
		qty, reorder = rec.AvailableQty, rec.ReorderPoint
	}
	return &StockLevel{
		SKU:      args.Sku,
		Quantity: int32(qty),
		Status:   string(stockService.Classify(qty, reorder)),
	}, nil
}

// NewSchema parses the schema against the root resolver.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(schemaString, &RootResolver{db: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
