package model

import "time"

// UserEntitlementModel mirrors the 'user_entitlements' table, one row per
// Discord user. The tier is never stored; only the expiry is.
type UserEntitlementModel struct {
	UserID       string     `gorm:"type:varchar(32);primaryKey"`
	VIPExpiresAt *time.Time `gorm:"index"`
	UsedTrial    bool       `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserEntitlementModel) TableName() string {
	return "user_entitlements"
}

// PaymentCaptureModel mirrors the 'payment_captures' table. The provider
// capture ID is the primary key, which is what makes confirmation
// idempotent: a second insert of the same capture violates the key.
type PaymentCaptureModel struct {
	CaptureID  string    `gorm:"type:varchar(64);primaryKey"`
	UserID     string    `gorm:"type:varchar(32);not null;index"`
	CapturedAt time.Time `gorm:"not null"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentCaptureModel) TableName() string {
	return "payment_captures"
}
