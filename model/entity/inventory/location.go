package inventory

// Location is a stock-keeping location. At least one active location must
// exist before any inventory mutation; the system currently assumes a single
// default location, but the ledger is keyed by location so more are additive.
type Location struct {
	LocationID uint   `gorm:"column:location_id;primaryKey;autoIncrement" json:"location_id"`
	Code       string `gorm:"column:code;type:varchar(32);not null;uniqueIndex" json:"code"`
	Name       string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	IsActive   int16  `gorm:"column:is_active;not null;default:1" json:"is_active"`
}

func (Location) TableName() string {
	return "stock_location"
}
