package catalog

import (
	"errors"

	"gorm.io/gorm"

	"storeops.GO/core/errs"
	catalogEntity "storeops.GO/model/entity/catalog"
)

// VariantRepository is the read-only catalog collaborator: variant existence
// and price lookups for the orchestrators.
type VariantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) *VariantRepository {
	return &VariantRepository{db: db}
}

func (r *VariantRepository) FindByID(id uint) (*catalogEntity.Variant, error) {
	var v catalogEntity.Variant
	err := r.db.First(&v, "entity_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, errs.Persistence("variant by id", err)
	}
	return &v, nil
}

func (r *VariantRepository) FindBySKU(sku string) (*catalogEntity.Variant, error) {
	var v catalogEntity.Variant
	err := r.db.First(&v, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, errs.Persistence("variant by sku", err)
	}
	return &v, nil
}

// BatchByIDs fetches variants for a set of IDs in one query.
func (r *VariantRepository) BatchByIDs(ids []uint) (map[uint]catalogEntity.Variant, error) {
	result := make(map[uint]catalogEntity.Variant, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var variants []catalogEntity.Variant
	if err := r.db.Where("entity_id IN ?", ids).Find(&variants).Error; err != nil {
		return nil, errs.Persistence("variant batch", err)
	}
	for _, v := range variants {
		result[v.EntityID] = v
	}
	return result, nil
}

// BatchSKUToID maps SKUs to variant IDs in one query (bulk import path).
func (r *VariantRepository) BatchSKUToID(skus []string) (map[string]uint, error) {
	result := make(map[string]uint, len(skus))
	if len(skus) == 0 {
		return result, nil
	}
	type skuRow struct {
		EntityID uint   `gorm:"column:entity_id"`
		SKU      string `gorm:"column:sku"`
	}
	var rows []skuRow
	err := r.db.Table("catalog_variant").Select("entity_id, sku").Where("sku IN ?", skus).Find(&rows).Error
	if err != nil {
		return nil, errs.Persistence("sku batch", err)
	}
	for _, row := range rows {
		result[row.SKU] = row.EntityID
	}
	return result, nil
}
