package entity

import "time"

// PaymentCapture is the dedupe record for one completed purchase. The
// capture ID comes from the payment provider and is unique per real-world
// transaction; inserting it before extending the entitlement (in the same
// transaction) makes confirmation idempotent under at-least-once delivery.
type PaymentCapture struct {
	CaptureID  string // Provider transaction/capture identifier, the unique key.
	UserID     string
	CapturedAt time.Time
	CreatedAt  time.Time
}

// BotPresence marks a guild the bot is installed on. Rows are written
// exclusively by the bot process; the panel only reads them.
type BotPresence struct {
	GuildID   string
	UpdatedAt time.Time
}
