package dispositions

import (
	"context"
	"medicore-service/internal/app/config"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/exceptions"
	"medicore-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type DispositionController struct {
	Log                *zap.Logger
	DispositionUsecase contracts.DispositionUsecase
	InternalConfig     *config.InternalConfig
}

func NewDispositionController(logger *zap.Logger, dispositionUsecase contracts.DispositionUsecase, internalConfig *config.InternalConfig) *DispositionController {
	return &DispositionController{
		Log:                logger,
		DispositionUsecase: dispositionUsecase,
		InternalConfig:     internalConfig,
	}
}

func (ctrl *DispositionController) CreateDisposition(w http.ResponseWriter, r *http.Request) {
	encounterID := chi.URLParam(r, constvars.URLParamEncounterID)
	if encounterID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamEncounterID))
		return
	}

	request := new(requests.CreateDisposition)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds)*time.Second)
	defer cancel()

	result, err := ctrl.DispositionUsecase.Disposition(ctx, encounterID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DispositionCompletedSuccess, result)
}
