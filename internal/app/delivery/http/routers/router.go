package routers

import (
	"fmt"
	"medicore-service/internal/app/config"
	"medicore-service/internal/app/delivery/http/middlewares"
	"medicore-service/internal/app/services/core/beds"
	"medicore-service/internal/app/services/core/dispositions"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/sirupsen/logrus"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	accessLog *logrus.Logger,
	middlewares *middlewares.Middlewares,
	dispositionController *dispositions.DispositionController,
	bedController *beds.BedController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id", "x-api-key"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestID)
	router.Use(middlewares.RequestLogger(internalConfig.App, accessLog))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/encounters", func(r chi.Router) {
				attachDispositionRoutes(r, middlewares, dispositionController)
			})

			r.Route("/beds", func(r chi.Router) {
				attachBedRoutes(r, middlewares, bedController)
			})
		})
	})
}
