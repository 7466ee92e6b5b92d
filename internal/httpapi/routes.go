package httpapi

import "net/http"

func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/companies", s.handleListCompanies)
	mux.HandleFunc("GET /api/companies/search", s.handleSearchCompanies)
	mux.HandleFunc("GET /api/companies/{id}", s.handleGetCompany)
	mux.HandleFunc("GET /api/companies/{id}/scores", s.handleCompanyScores)
	mux.HandleFunc("GET /api/indicators/definitions", s.handleIndicatorDefinitions)

	mux.HandleFunc("POST /api/cache/invalidate/{scope}", s.requireAuth(s.handleCacheInvalidate))
	mux.HandleFunc("POST /api/reports/trigger-processing", s.requireAuth(s.handleTriggerProcessing))

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	return mux
}
