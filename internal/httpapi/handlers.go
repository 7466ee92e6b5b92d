package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.getCached(r.Context(), "companies:all"); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}
	companies, err := s.catalog.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load companies")
		return
	}
	s.setCachedJSON(r.Context(), "companies:all", companies)
	writeJSON(w, http.StatusOK, companies)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid company id")
		return
	}
	company, err := s.catalog.ByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load company")
		return
	}
	if company == nil {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (s *Server) handleSearchCompanies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	all, err := s.catalog.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load companies")
		return
	}
	var matches []models.Company
	for _, c := range all {
		if matchesQuery(c, q) {
			matches = append(matches, c)
		}
	}
	writeJSON(w, http.StatusOK, matches)
}

func matchesQuery(c models.Company, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Symbol), q)
}

func (s *Server) handleIndicatorDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := s.indicators.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load indicator definitions")
		return
	}
	writeJSON(w, http.StatusOK, defs)
}

func (s *Server) handleCompanyScores(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	year := 0
	if yq := r.URL.Query().Get("year"); yq != "" {
		year, err = strconv.Atoi(yq)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
	} else {
		latest, found, err := s.scores.Latest(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to resolve latest year")
			return
		}
		if !found {
			writeError(w, http.StatusNotFound, "no scores for company")
			return
		}
		year = latest
	}

	rows, err := s.scores.ForCompanyYear(r.Context(), id, year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load scores")
		return
	}
	if len(rows) == 0 {
		writeError(w, http.StatusNotFound, "no scores for company/year")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCacheInvalidate(w http.ResponseWriter, r *http.Request) {
	scope := r.PathValue("scope")
	if s.cache != nil {
		if err := s.cache.InvalidatePattern(r.Context(), scope+"*"); err != nil {
			writeError(w, http.StatusInternalServerError, "cache invalidation failed")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"invalidated": scope})
}

func (s *Server) handleTriggerProcessing(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ObjectKey string `json:"object_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ObjectKey == "" {
		writeError(w, http.StatusBadRequest, "object_key is required")
		return
	}
	if err := s.broker.Publish(r.Context(), "extraction-tasks", []byte(body.ObjectKey)); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to publish trigger")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	hash, err := hashPassword(body.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	id, err := s.authRepo.CreateUser(r.Context(), models.User{Username: body.Username, PasswordHash: hash, Active: true})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"user_id": id})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := s.authRepo.UserByUsername(r.Context(), body.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if user == nil || !user.Active || !checkPassword(user.PasswordHash, body.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := s.auth.issueToken(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
