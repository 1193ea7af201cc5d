package routers

import (
	"medicore-service/internal/app/delivery/http/middlewares"
	"medicore-service/internal/app/services/core/beds"

	"github.com/go-chi/chi/v5"
)

func attachBedRoutes(router chi.Router, middlewares *middlewares.Middlewares, ctrl *beds.BedController) {
	// GET /beds/availability
	router.With(middlewares.BearerAuth).Get("/availability", ctrl.GetAvailability)

	// POST /beds/{bed_id}/release
	router.With(middlewares.APIKeyAuth).Post("/{bed_id}/release", ctrl.ReleaseBed)
}
