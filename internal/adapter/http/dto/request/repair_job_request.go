package request

import (
	"strings"

	"repairshop/internal/domain/entities"
)

type DeviceRequest struct {
	Type          string `json:"type" binding:"required"`
	Brand         string `json:"brand"`
	Model         string `json:"model"`
	SerialNumber  string `json:"serial_number"`
	ReportedIssue string `json:"reported_issue" binding:"required"`
}

func (d DeviceRequest) ToDevice() entities.Device {
	return entities.Device{
		Type:          strings.TrimSpace(d.Type),
		Brand:         strings.TrimSpace(d.Brand),
		Model:         strings.TrimSpace(d.Model),
		SerialNumber:  strings.TrimSpace(d.SerialNumber),
		ReportedIssue: strings.TrimSpace(d.ReportedIssue),
	}
}

// CostsRequest is also the payload of PUT /repair-jobs/:identifier/costs.
type CostsRequest struct {
	Labor    string `json:"labor" example:"40.00"`
	Parts    string `json:"parts" example:"60.00"`
	Tax      string `json:"tax" example:"8.00"`
	Discount string `json:"discount" example:"3.00"`
}

func (r CostsRequest) ResolveCosts() (entities.CostComponents, error) {
	var (
		out entities.CostComponents
		err error
	)
	if out.Labor, err = parseMoney("labor", r.Labor); err != nil {
		return entities.CostComponents{}, err
	}
	if out.Parts, err = parseMoney("parts", r.Parts); err != nil {
		return entities.CostComponents{}, err
	}
	if out.Tax, err = parseMoney("tax", r.Tax); err != nil {
		return entities.CostComponents{}, err
	}
	if out.Discount, err = parseMoney("discount", r.Discount); err != nil {
		return entities.CostComponents{}, err
	}
	return out, nil
}

// CreateRepairJobRequest is the payload of POST /repair-jobs.
type CreateRepairJobRequest struct {
	CustomerID   string           `json:"customer_id" binding:"required"`
	Device       DeviceRequest    `json:"device"`
	TechnicianID string           `json:"technician_id"`
	Costs        CostsRequest     `json:"costs"`
	Notes        string           `json:"notes"`
	Warranty     *WarrantyRequest `json:"warranty"`
	ActorID      string           `json:"actor_id"`
}
