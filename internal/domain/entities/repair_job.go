package entities

import "github.com/shopspring/decimal"

// RepairJob statuses.
//
// Domain notes:
//   - waiting-parts is a loop back into in-progress, not a dead end.
//   - completed is the status that opens the warranty window.
//   - warranty-claim reopens a finished job without resetting that window.
const (
	RepairStatusPending       Status = "pending"
	RepairStatusReceived      Status = "received"
	RepairStatusDiagnosed     Status = "diagnosed"
	RepairStatusApproved      Status = "approved"
	RepairStatusInProgress    Status = "in-progress"
	RepairStatusWaitingParts  Status = "waiting-parts"
	RepairStatusCompleted     Status = "completed"
	RepairStatusReadyPickup   Status = "ready-pickup"
	RepairStatusDelivered     Status = "delivered"
	RepairStatusCancelled     Status = "cancelled"
	RepairStatusWarrantyClaim Status = "warranty-claim"
)

// CostComponents are the priced parts of a repair. All amounts are >= 0.
type CostComponents struct {
	Labor    decimal.Decimal `json:"labor"`
	Parts    decimal.Decimal `json:"parts"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
}

// Device describes the item brought in for repair.
type Device struct {
	Type          string `json:"type"`
	Brand         string `json:"brand,omitempty"`
	Model         string `json:"model,omitempty"`
	SerialNumber  string `json:"serial_number,omitempty"`
	ReportedIssue string `json:"reported_issue"`
}

// RepairJob is a device repair ticket.
type RepairJob struct {
	Document

	CustomerID   string         `json:"customer_id"`
	Device       Device         `json:"device"`
	TechnicianID string         `json:"technician_id,omitempty"`
	Costs        CostComponents `json:"costs"`
	Totals       Totals         `json:"totals"`
	Diagnosis    string         `json:"diagnosis,omitempty"`
	Notes        string         `json:"notes,omitempty"`
}

func (r RepairJob) Clone() RepairJob {
	out := r
	out.Document = r.Document.Clone()
	return out
}
