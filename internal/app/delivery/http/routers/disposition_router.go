package routers

import (
	"medicore-service/internal/app/delivery/http/middlewares"
	"medicore-service/internal/app/services/core/dispositions"

	"github.com/go-chi/chi/v5"
)

func attachDispositionRoutes(router chi.Router, middlewares *middlewares.Middlewares, ctrl *dispositions.DispositionController) {
	// POST /encounters/{encounter_id}/disposition
	router.With(middlewares.BearerAuth).Post("/{encounter_id}/disposition", ctrl.CreateDisposition)
}
