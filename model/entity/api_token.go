package entity

import "time"

// APIToken is an access token for the back-office API. Identity policy lives
// outside the core; this table only yields the caller's permission set.
type APIToken struct {
	EntityID  uint      `gorm:"column:entity_id;primaryKey;autoIncrement"`
	AdminID   *uint     `gorm:"column:admin_id"`
	Type      string    `gorm:"column:type;type:varchar(16);not null"`
	Token     string    `gorm:"column:token;type:varchar(32);not null;uniqueIndex"`
	Secret    string    `gorm:"column:secret;type:varchar(128);not null"`
	Revoked   uint16    `gorm:"column:revoked;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (APIToken) TableName() string {
	return "api_token"
}
