package handlers

import (
	"net/http"
	"testing"
	"time"

	"repairshop/internal/adapter/http/handlers/mocks"
	"repairshop/internal/domain/entities"
	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func repairJobRouter(h *RepairJobHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/repair-jobs", h.CreateRepairJob)
	r.GET("/v1/repair-jobs/:identifier", h.GetRepairJob)
	r.PATCH("/v1/repair-jobs/:identifier/status", h.UpdateRepairJobStatus)
	r.PUT("/v1/repair-jobs/:identifier/costs", h.UpdateRepairJobCosts)
	r.POST("/v1/repair-jobs/:identifier/payments", h.RecordRepairJobPayment)
	r.PUT("/v1/repair-jobs/:identifier/warranty", h.UpdateRepairJobWarranty)
	return r
}

func storedRepairJob() entities.RepairJob {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	return entities.RepairJob{
		Document: entities.Document{
			Identifier: "TH24010001",
			Kind:       entities.EntityKindRepairJob,
			Status:     entities.RepairStatusCompleted,
			Warranty:   &entities.Warranty{Duration: 90, Unit: entities.DurationUnitDays, StartDate: &start, EndDate: &end},
			Payment:    entities.Payment{RemainingBalance: dec("105"), Status: entities.PaymentStatusUnpaid},
		},
		CustomerID: "cust-9",
		Device:     entities.Device{Type: "phone", ReportedIssue: "cracked screen"},
		Costs:      entities.CostComponents{Labor: dec("40"), Parts: dec("60"), Tax: dec("8"), Discount: dec("3")},
		Totals:     entities.Totals{Subtotal: dec("100"), Tax: dec("8"), Discount: dec("3"), Total: dec("105")},
	}
}

func TestRepairJobHandler_CreateRepairJob(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("device issue required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRepairJobUseCase(ctrl)

		w := serve(t, repairJobRouter(NewRepairJobHandler(uc, quietLogger())), http.MethodPost, "/v1/repair-jobs",
			`{"customer_id":"cust-9","device":{"type":"phone"}}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRepairJobUseCase(ctrl)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, draft usecase.RepairJobDraft) (entities.RepairJob, error) {
			if draft.Device.ReportedIssue != "cracked screen" || !draft.Costs.Parts.Equal(dec("60")) {
				t.Fatalf("unexpected draft: %+v", draft)
			}
			if draft.Warranty == nil || draft.Warranty.Duration != 90 {
				t.Fatalf("warranty not mapped: %+v", draft.Warranty)
			}
			return storedRepairJob(), nil
		})

		body := `{"customer_id":"cust-9","device":{"type":"phone","reported_issue":"cracked screen"},"costs":{"labor":"40","parts":"60","tax":"8","discount":"3"},"warranty":{"duration":90,"unit":"days"}}`
		w := serve(t, repairJobRouter(NewRepairJobHandler(uc, quietLogger())), http.MethodPost, "/v1/repair-jobs", body)
		expectStatus(t, w, http.StatusCreated)

		res := decodeBody(t, w)
		totals, _ := res["totals"].(map[string]any)
		if res["identifier"] != "TH24010001" || totals["total"] != "105.00" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		warranty, _ := res["warranty"].(map[string]any)
		if warranty["end_date"] != "2024-03-31T00:00:00Z" {
			t.Fatalf("unexpected warranty: %v", warranty)
		}
	})
}

func TestRepairJobHandler_UpdateRepairJobStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("status required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRepairJobUseCase(ctrl)

		w := serve(t, repairJobRouter(NewRepairJobHandler(uc, quietLogger())), http.MethodPatch, "/v1/repair-jobs/TH24010001/status", `{}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("cancelled is final", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRepairJobUseCase(ctrl)
		uc.EXPECT().UpdateStatus(gomock.Any(), "TH24010001", entities.RepairStatusInProgress, "resume", "tech-1").
			Return(entities.RepairJob{}, lifecycle.ErrIllegalTransition)

		w := serve(t, repairJobRouter(NewRepairJobHandler(uc, quietLogger())), http.MethodPatch, "/v1/repair-jobs/TH24010001/status",
			`{"status":"in-progress","description":"resume","actor_id":"tech-1"}`)
		expectStatus(t, w, http.StatusConflict)
	})

	t.Run("completed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRepairJobUseCase(ctrl)
		uc.EXPECT().UpdateStatus(gomock.Any(), "TH24010001", entities.RepairStatusCompleted, "", "").Return(storedRepairJob(), nil)

		w := serve(t, repairJobRouter(NewRepairJobHandler(uc, quietLogger())), http.MethodPatch, "/v1/repair-jobs/TH24010001/status", `{"status":"completed"}`)
		expectStatus(t, w, http.StatusOK)
		if decodeBody(t, w)["status"] != "completed" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestRepairJobHandler_Others(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("get not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRepairJobUseCase(ctrl)
		uc.EXPECT().GetByIdentifier(gomock.Any(), "TH24010009").Return(entities.RepairJob{}, usecase.ErrRepairJobNotFound)

		w := serve(t, repairJobRouter(NewRepairJobHandler(uc, quietLogger())), http.MethodGet, "/v1/repair-jobs/TH24010009", "")
		expectStatus(t, w, http.StatusNotFound)
		if decodeBody(t, w)["code"] != "REPAIR_JOB_NOT_FOUND" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("update costs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRepairJobUseCase(ctrl)
		uc.EXPECT().UpdateCostComponents(gomock.Any(), "TH24010001", gomock.Any()).DoAndReturn(
			func(_ any, _ string, costs entities.CostComponents) (entities.RepairJob, error) {
				if !costs.Parts.Equal(dec("90")) || !costs.Discount.IsZero() {
					t.Fatalf("unexpected costs: %+v", costs)
				}
				return storedRepairJob(), nil
			},
		)

		w := serve(t, repairJobRouter(NewRepairJobHandler(uc, quietLogger())), http.MethodPut, "/v1/repair-jobs/TH24010001/costs", `{"labor":"40","parts":"90","tax":"8"}`)
		expectStatus(t, w, http.StatusOK)
	})

	t.Run("update costs bad money", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRepairJobUseCase(ctrl)

		w := serve(t, repairJobRouter(NewRepairJobHandler(uc, quietLogger())), http.MethodPut, "/v1/repair-jobs/TH24010001/costs", `{"labor":"forty"}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("record payment conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRepairJobUseCase(ctrl)
		uc.EXPECT().RecordPayment(gomock.Any(), "TH24010001", gomock.Any()).Return(entities.RepairJob{}, lifecycle.ErrConcurrentModification)

		w := serve(t, repairJobRouter(NewRepairJobHandler(uc, quietLogger())), http.MethodPost, "/v1/repair-jobs/TH24010001/payments", `{"amount":"5","method":"card"}`)
		expectStatus(t, w, http.StatusConflict)
	})

	t.Run("update warranty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRepairJobUseCase(ctrl)
		uc.EXPECT().UpdateWarrantyTerms(gomock.Any(), "TH24010001", 2, entities.DurationUnitYears).Return(storedRepairJob(), nil)

		w := serve(t, repairJobRouter(NewRepairJobHandler(uc, quietLogger())), http.MethodPut, "/v1/repair-jobs/TH24010001/warranty", `{"duration":2,"unit":"years"}`)
		expectStatus(t, w, http.StatusOK)
	})
}
