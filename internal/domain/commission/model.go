package commission

import (
	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
)

// Record represents a commission owed to one referral-chain ancestor for one
// order. At most one record exists per (OrderID, BeneficiaryMemberID) pair, so
// re-running distribution for an order is idempotent.
type Record struct {
	ID                  string                 `json:"id" db:"id"`
	OrderID             string                 `json:"order_id" db:"order_id"`
	BeneficiaryMemberID string                 `json:"beneficiary_member_id" db:"beneficiary_member_id"`
	TierDepth           int                    `json:"tier_depth" db:"tier_depth"`
	Rate                decimal.Decimal        `json:"rate" db:"rate"`
	Amount              decimal.Decimal        `json:"amount" db:"amount"`
	CommissionStatus    types.CommissionStatus `json:"commission_status" db:"commission_status"`

	types.BaseModel
}
