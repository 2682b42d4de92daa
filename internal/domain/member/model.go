package member

import (
	"time"

	"github.com/minimall/minimall/internal/types"
)

// Member represents a mall member. ReferrerID is a weak back-reference to the
// member who referred this one; it is a relation, never ownership, and the
// referral graph is traversed with an explicit visited set because corrupted
// administrative edits can introduce cycles.
type Member struct {
	ID               string     `json:"id" db:"id"`
	Name             string     `json:"name" db:"name"`
	ReferrerID       *string    `json:"referrer_id" db:"referrer_id"`
	DistributorLevel int        `json:"distributor_level" db:"distributor_level"`
	MemberLevel      int        `json:"member_level" db:"member_level"`
	LastActiveAt     *time.Time `json:"last_active_at" db:"last_active_at"`
	LastOrderAt      *time.Time `json:"last_order_at" db:"last_order_at"`
	// Active is recomputed by the active member refresher, which is the single
	// writer of this flag. It is never user-writable.
	Active bool `json:"active" db:"active"`

	types.BaseModel
}

// IsActiveFor reports whether the member counts as active under the given
// settings at the given instant. When the check is disabled every member is
// treated as active.
func (m *Member) IsActiveFor(settings types.SystemSettings, now time.Time) bool {
	if !settings.ActiveMemberCheckEnabled {
		return true
	}

	var ts *time.Time
	switch settings.ActiveMemberCondition {
	case types.ActiveMemberConditionLastOrderAt:
		ts = m.LastOrderAt
	default:
		ts = m.LastActiveAt
	}

	if ts == nil {
		return false
	}

	window := time.Duration(settings.ActiveMemberCheckDays) * 24 * time.Hour
	return now.Sub(*ts) <= window
}
