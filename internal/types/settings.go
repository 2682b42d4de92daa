package types

// SystemSettings is the process-wide configuration read by the active member
// refresher and the commission distributor. It is loaded at startup, refreshed
// on explicit update, and injected into consumers rather than read as ambient
// global state.
type SystemSettings struct {
	ActiveMemberCheckEnabled       bool                  `json:"active_member_check_enabled" db:"active_member_check_enabled"`
	ActiveMemberCheckDays          int                   `json:"active_member_check_days" db:"active_member_check_days"`
	ActiveMemberCondition          ActiveMemberCondition `json:"active_member_condition" db:"active_member_condition"`
	ActiveMemberCheckIntervalHours int                   `json:"active_member_check_interval_hours" db:"active_member_check_interval_hours"`
}

const (
	MinActiveMemberCheckDays          = 1
	MinActiveMemberCheckIntervalHours = 1
	MaxActiveMemberCheckIntervalHours = 720
)

// GetDefaultSystemSettings returns the settings used before any administrative update
func GetDefaultSystemSettings() SystemSettings {
	return SystemSettings{
		ActiveMemberCheckEnabled:       false,
		ActiveMemberCheckDays:          30,
		ActiveMemberCondition:          ActiveMemberConditionLastActiveAt,
		ActiveMemberCheckIntervalHours: 24,
	}
}

// Clamp forces the settings into their server-side bounds. Out-of-range values
// from clients are pulled to the nearest bound rather than rejected.
func (s SystemSettings) Clamp() SystemSettings {
	if s.ActiveMemberCheckDays < MinActiveMemberCheckDays {
		s.ActiveMemberCheckDays = MinActiveMemberCheckDays
	}
	if s.ActiveMemberCheckIntervalHours < MinActiveMemberCheckIntervalHours {
		s.ActiveMemberCheckIntervalHours = MinActiveMemberCheckIntervalHours
	}
	if s.ActiveMemberCheckIntervalHours > MaxActiveMemberCheckIntervalHours {
		s.ActiveMemberCheckIntervalHours = MaxActiveMemberCheckIntervalHours
	}
	if !s.ActiveMemberCondition.Validate() {
		s.ActiveMemberCondition = ActiveMemberConditionLastActiveAt
	}
	return s
}
