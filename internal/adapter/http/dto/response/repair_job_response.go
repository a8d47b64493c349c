package response

import "repairshop/internal/domain/entities"

type DeviceResponse struct {
	Type          string `json:"type"`
	Brand         string `json:"brand,omitempty"`
	Model         string `json:"model,omitempty"`
	SerialNumber  string `json:"serial_number,omitempty"`
	ReportedIssue string `json:"reported_issue"`
}

type CostsResponse struct {
	Labor    string `json:"labor"`
	Parts    string `json:"parts"`
	Tax      string `json:"tax"`
	Discount string `json:"discount"`
}

type RepairJobResponse struct {
	DocumentResponse

	CustomerID   string         `json:"customer_id"`
	Device       DeviceResponse `json:"device"`
	TechnicianID string         `json:"technician_id,omitempty"`
	Costs        CostsResponse  `json:"costs"`
	Totals       TotalsResponse `json:"totals"`
	Diagnosis    string         `json:"diagnosis,omitempty"`
	Notes        string         `json:"notes,omitempty"`
}

func FromRepairJob(r entities.RepairJob) RepairJobResponse {
	return RepairJobResponse{
		DocumentResponse: FromDocument(r.Document),
		CustomerID:       r.CustomerID,
		Device: DeviceResponse{
			Type:          r.Device.Type,
			Brand:         r.Device.Brand,
			Model:         r.Device.Model,
			SerialNumber:  r.Device.SerialNumber,
			ReportedIssue: r.Device.ReportedIssue,
		},
		TechnicianID: r.TechnicianID,
		Costs: CostsResponse{
			Labor:    money(r.Costs.Labor),
			Parts:    money(r.Costs.Parts),
			Tax:      money(r.Costs.Tax),
			Discount: money(r.Costs.Discount),
		},
		Totals:    FromTotals(r.Totals),
		Diagnosis: r.Diagnosis,
		Notes:     r.Notes,
	}
}
