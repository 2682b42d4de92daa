package types

// ActiveMemberCondition selects which recency timestamp drives the active flag
type ActiveMemberCondition string

const (
	// ActiveMemberConditionLastActiveAt uses the member's last activity timestamp
	ActiveMemberConditionLastActiveAt ActiveMemberCondition = "lastActiveAt"
	// ActiveMemberConditionLastOrderAt uses the member's last order timestamp
	ActiveMemberConditionLastOrderAt ActiveMemberCondition = "lastOrderAt"
)

// Validate checks that the condition is one of the known timestamp fields
func (c ActiveMemberCondition) Validate() bool {
	switch c {
	case ActiveMemberConditionLastActiveAt, ActiveMemberConditionLastOrderAt:
		return true
	default:
		return false
	}
}
