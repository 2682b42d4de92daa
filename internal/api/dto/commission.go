package dto

import (
	"github.com/minimall/minimall/internal/domain/commission"
)

type CommissionRecordResponse struct {
	*commission.Record
}

type ListCommissionRecordsResponse struct {
	Items []*CommissionRecordResponse `json:"items"`
	Total int                         `json:"total"`
}

func NewListCommissionRecordsResponse(records []*commission.Record) *ListCommissionRecordsResponse {
	items := make([]*CommissionRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, &CommissionRecordResponse{Record: r})
	}
	return &ListCommissionRecordsResponse{Items: items, Total: len(items)}
}
