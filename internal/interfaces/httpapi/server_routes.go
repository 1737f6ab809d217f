package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/seasons/{season}/fixtures", handler.ListSeasonFixtures)
	mux.HandleFunc("GET /v1/seasons/{season}/results", handler.ListSeasonResults)
	mux.HandleFunc("GET /v1/seasons/{season}/standings", handler.ListSeasonStandings)
}

func registerComparisonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/comparisons/{current}/{previous}", handler.GetComparison)
	mux.HandleFunc("GET /v1/comparisons/{current}/{previous}/teams/{team}", handler.GetComparisonTeam)
	mux.HandleFunc("GET /v1/comparisons/{current}/{previous}/improvers", handler.ListComparisonImprovers)
	mux.HandleFunc("GET /v1/comparisons/{current}/{previous}/mapping", handler.GetComparisonMapping)
	mux.HandleFunc("GET /v1/comparisons/{current}/{previous}/export.csv", handler.ExportComparisonCSV)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshJob)))
	mux.Handle("POST /v1/internal/jobs/warm-cache", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWarmCacheJob)))
}
