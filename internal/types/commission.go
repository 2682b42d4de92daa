package types

// CommissionStatus represents the settlement status of a commission record
type CommissionStatus string

const (
	// CommissionStatusPending is the initial status of a freshly created record
	CommissionStatusPending CommissionStatus = "pending"
	// CommissionStatusSettled marks a record that has been paid out
	CommissionStatusSettled CommissionStatus = "settled"
	// CommissionStatusCancelled marks a record voided by order cancellation
	CommissionStatusCancelled CommissionStatus = "cancelled"
)
