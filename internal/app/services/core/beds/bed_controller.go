package beds

import (
	"context"
	"medicore-service/internal/app/config"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/responses"
	"medicore-service/internal/pkg/exceptions"
	"medicore-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BedController struct {
	Log            *zap.Logger
	BedUsecase     contracts.BedUsecase
	InternalConfig *config.InternalConfig
}

func NewBedController(logger *zap.Logger, bedUsecase contracts.BedUsecase, internalConfig *config.InternalConfig) *BedController {
	return &BedController{
		Log:            logger,
		BedUsecase:     bedUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *BedController) ReleaseBed(w http.ResponseWriter, r *http.Request) {
	bedID := chi.URLParam(r, constvars.URLParamBedID)
	if bedID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamBedID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	err := ctrl.BedUsecase.ReleaseBed(ctx, bedID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BedReleasedSuccess, responses.ReleaseBed{
		BedID:  bedID,
		Status: constvars.BedStatusAvailable,
	})
}

func (ctrl *BedController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get(constvars.URLQueryParamKind)
	wardID := r.URL.Query().Get(constvars.URLQueryParamWardID)
	if kind != constvars.BedKindWard && kind != constvars.BedKindICU {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLQueryParamKind))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	count, err := ctrl.BedUsecase.GetAvailability(ctx, kind, wardID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BedAvailabilityGetSuccess, responses.BedAvailability{
		Kind:      kind,
		WardID:    wardID,
		Available: count,
	})
}
