package entity

import "time"

// Grade is the entitlement tier derived from a user's VIP expiry.
type Grade string

const (
	GradeStandard Grade = "standard"
	GradeVIP      Grade = "vip"
)

// UserEntitlement is the persistent premium record for one Discord user.
// The tier is never stored; it is always derived from VIPExpiresAt at read
// time so an expiry boundary needs no background job to take effect.
type UserEntitlement struct {
	UserID       string     // Discord user ID, the unique key.
	VIPExpiresAt *time.Time // Nil means the user never had (or no longer has a recorded) VIP period.
	UsedTrial    bool       // Once true it never reverts, even after the trial period expires.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GradeAt derives the tier at the given instant. VIP requires an expiry that
// is present and strictly in the future.
func (e *UserEntitlement) GradeAt(now time.Time) Grade {
	if e == nil || e.VIPExpiresAt == nil {
		return GradeStandard
	}
	if e.VIPExpiresAt.After(now) {
		return GradeVIP
	}

	return GradeStandard
}

// ExtendVIP moves the expiry forward by d from the later of now and the
// current expiry, so paid time stacks instead of being replaced.
func (e *UserEntitlement) ExtendVIP(now time.Time, d time.Duration) {
	base := now
	if e.VIPExpiresAt != nil && e.VIPExpiresAt.After(base) {
		base = *e.VIPExpiresAt
	}
	expires := base.Add(d)
	e.VIPExpiresAt = &expires
}
