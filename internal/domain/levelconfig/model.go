package levelconfig

import (
	"github.com/minimall/minimall/internal/types"
	"github.com/shopspring/decimal"
)

// TierRate is one entry of a distributor level's commission ladder: the rate
// paid at a given referral depth, gated by a minimum member level.
type TierRate struct {
	TierDepth      int             `json:"tier_depth"`
	Rate           decimal.Decimal `json:"rate"`
	MinMemberLevel int             `json:"min_member_level"`
}

// Config maps a distributor level to its ordered per-tier commission rates
type Config struct {
	ID        string     `json:"id" db:"id"`
	Level     int        `json:"level" db:"level"`
	TierRates []TierRate `json:"tier_rates" db:"-"`

	types.BaseModel
}

// RateAt returns the tier rate entry for the given depth, or nil when the
// level's ladder does not reach that deep.
func (c *Config) RateAt(tierDepth int) *TierRate {
	for i := range c.TierRates {
		if c.TierRates[i].TierDepth == tierDepth {
			return &c.TierRates[i]
		}
	}
	return nil
}
