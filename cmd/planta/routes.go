package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getcatalog "embotelladora-backend/http-server/catalog/get"
	savecatalog "embotelladora-backend/http-server/catalog/save"
	finishorder "embotelladora-backend/http-server/orders/finish"
	getorder "embotelladora-backend/http-server/orders/get"
	startorder "embotelladora-backend/http-server/orders/start"
	getreport "embotelladora-backend/http-server/reports/get"
	"embotelladora-backend/internal/config"
	"embotelladora-backend/internal/middleware/auth"
	generate_excel "embotelladora-backend/internal/service/generate-excel"
	"embotelladora-backend/internal/service/production"
	"embotelladora-backend/internal/service/reports"
	"embotelladora-backend/internal/storage/gormdb"
)

func routes(
	cfg config.Config,
	log *slog.Logger,
	storage *gormdb.Storage,
	productionService *production.Service,
	reportService *reports.Service,
	excelService *generate_excel.GenerateExcelService,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	apiRouter := chi.NewRouter()
	apiRouter.Use(auth.SessionToken(cfg.SessionToken))

	// Órdenes de producción
	apiRouter.Get("/production-orders", getorder.GetOrders(log, storage))
	apiRouter.Get("/production-orders/{id}", getorder.GetOrder(log, storage))
	apiRouter.Get("/production-orders/{id}/paros", getorder.GetOrderParos(log, storage))
	apiRouter.Post("/production-orders/{id}/start", startorder.StartOrder(log, productionService))
	apiRouter.Post("/production-orders/{id}/finish", finishorder.FinishOrder(log, productionService))

	// Reportes
	apiRouter.Get("/reports/dynamic-report", getreport.GetDynamicReport(log, reportService))
	apiRouter.Get("/reports/dynamic-report/excel", getreport.GetReportExcel(log, excelService))
	apiRouter.Get("/reports/filter-options", getreport.GetFilterOptions(log, storage))

	// Catálogos
	apiRouter.Get("/catalog/tipos-paro", getcatalog.GetTiposParo(log, storage))
	apiRouter.Post("/catalog/tipos-paro", savecatalog.SaveTipoParo(log, storage))

	router.Mount("/api", apiRouter)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return router
}
