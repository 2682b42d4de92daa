package dto

import (
	ierr "github.com/minimall/minimall/internal/errors"
	"github.com/minimall/minimall/internal/types"
)

// UpdateSettingsRequest represents the request to update system settings.
// Out-of-range numeric values are clamped server-side, not rejected.
type UpdateSettingsRequest struct {
	ActiveMemberCheckEnabled       bool                        `json:"active_member_check_enabled"`
	ActiveMemberCheckDays          int                         `json:"active_member_check_days"`
	ActiveMemberCondition          types.ActiveMemberCondition `json:"active_member_condition"`
	ActiveMemberCheckIntervalHours int                         `json:"active_member_check_interval_hours"`
}

// Validate validates the UpdateSettingsRequest
func (r *UpdateSettingsRequest) Validate() error {
	if r.ActiveMemberCondition != "" && !r.ActiveMemberCondition.Validate() {
		return ierr.NewError("invalid active member condition").
			WithHint("Condition must be lastActiveAt or lastOrderAt").
			WithReportableDetails(map[string]any{"condition": r.ActiveMemberCondition}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToSystemSettings converts the request into clamped domain settings
func (r *UpdateSettingsRequest) ToSystemSettings() types.SystemSettings {
	s := types.SystemSettings{
		ActiveMemberCheckEnabled:       r.ActiveMemberCheckEnabled,
		ActiveMemberCheckDays:          r.ActiveMemberCheckDays,
		ActiveMemberCondition:          r.ActiveMemberCondition,
		ActiveMemberCheckIntervalHours: r.ActiveMemberCheckIntervalHours,
	}
	return s.Clamp()
}

// SettingsResponse represents the system settings in API responses
type SettingsResponse struct {
	types.SystemSettings
}
