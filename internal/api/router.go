package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pulsohq/pulso/internal/middleware"
	"github.com/pulsohq/pulso/internal/services"
)

// Router wires the HTTP surface to the service layer.
type Router struct {
	store     Store
	auth      *services.AuthService
	campaigns *services.CampaignService
	responses *services.ResponseService
	dashboard *services.DashboardService
	export    *services.ExportService
}

func NewRouter(store Store) *Router {
	return &Router{
		store:     store,
		auth:      services.NewAuthService(store, middleware.SignToken),
		campaigns: services.NewCampaignService(store),
		responses: services.NewResponseService(store),
		dashboard: services.NewDashboardService(store),
		export:    services.NewExportService(store),
	}
}

// Handler builds the API route tree.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/auth/register", rt.handleRegister)
	r.Post("/api/auth/login", rt.handleLogin)

	// Public survey endpoints, consumed by the respondent-facing page.
	r.Get("/api/surveys/{id}", rt.handleGetSurvey)
	r.Post("/api/surveys/{id}/responses", rt.handleSubmitResponse)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/api/campaigns", rt.handleListCampaigns)
		r.Post("/api/campaigns", rt.handleCreateCampaign)
		r.Get("/api/campaigns/{id}", rt.handleGetCampaign)
		r.Put("/api/campaigns/{id}", rt.handleUpdateCampaign)
		r.Delete("/api/campaigns/{id}", rt.handleDeleteCampaign)
		r.Get("/api/campaigns/{id}/questions", rt.handleGetQuestions)
		r.Put("/api/campaigns/{id}/questions", rt.handleReplaceQuestions)
		r.Get("/api/campaigns/{id}/dashboard", rt.handleCampaignDashboard)
		r.Get("/api/campaigns/{id}/export", rt.handleExport)
		r.Get("/api/dashboard", rt.handleOverview)
		r.Get("/api/question-suggestions", rt.handleSuggestions)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrCampaignNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if se, ok := services.AsServiceError(err); ok {
		status := http.StatusInternalServerError
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorForbidden:
			status = http.StatusForbidden
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		}
		writeJSON(w, status, map[string]string{"error": se.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func tenantID(r *http.Request) string {
	if id, ok := middleware.IdentityFromContext(r.Context()); ok {
		return id.TenantID
	}
	return ""
}

func sessionJSON(s *services.Session) map[string]string {
	return map[string]string{
		"token":      s.Token,
		"tenant_id":  s.TenantID,
		"user_id":    s.UserID,
		"expires_at": s.ExpiresAt.Format(time.RFC3339),
	}
}

func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		TenantName string `json:"tenantName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	res, err := rt.auth.Register(req.Email, req.Password, req.TenantName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionJSON(res))
}

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionJSON(res))
}

func (rt *Router) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	out, err := rt.campaigns.List(tenantID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (rt *Router) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	c, err := rt.campaigns.Create(tenantID(r), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (rt *Router) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := rt.campaigns.Get(tenantID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (rt *Router) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var upd services.Campaign
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	upd.ID = chi.URLParam(r, "id")
	c, err := rt.campaigns.UpdateSettings(tenantID(r), &upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (rt *Router) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := rt.campaigns.Delete(tenantID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (rt *Router) handleGetQuestions(w http.ResponseWriter, r *http.Request) {
	c, err := rt.campaigns.Get(tenantID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": c.Questions})
}

func (rt *Router) handleReplaceQuestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Questions []*services.Question `json:"questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	qs, err := rt.campaigns.ReplaceQuestions(tenantID(r), chi.URLParam(r, "id"), req.Questions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": qs})
}

func (rt *Router) handleCampaignDashboard(w http.ResponseWriter, r *http.Request) {
	m, err := rt.dashboard.Campaign(tenantID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (rt *Router) handleOverview(w http.ResponseWriter, r *http.Request) {
	m, err := rt.dashboard.Overview(tenantID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (rt *Router) handleExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	switch format {
	case "csv":
		b, err := rt.export.ResponsesCSV(tenantID(r), id)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=responses.csv")
		_, _ = w.Write(b)
	case "xlsx":
		b, err := rt.export.ResponsesXLSX(tenantID(r), id)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=responses.xlsx")
		_, _ = w.Write(b)
	default:
		writeError(w, services.NewInvalidError("unsupported format"))
	}
}

func (rt *Router) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	niche := r.URL.Query().Get("niche")
	if niche == "" {
		writeJSON(w, http.StatusOK, map[string]any{"niches": services.Niches()})
		return
	}
	qs := services.SuggestQuestions(niche)
	if qs == nil {
		writeError(w, services.NewNotFoundError("unknown niche"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": qs})
}

// surveyQuestion is the respondent-facing view of a question; the main flag
// and campaign internals stay server-side.
type surveyQuestion struct {
	ID    string                `json:"id"`
	Type  services.QuestionType `json:"type"`
	Text  string                `json:"text"`
	Order int                   `json:"order"`
}

func (rt *Router) handleGetSurvey(w http.ResponseWriter, r *http.Request) {
	c, err := rt.store.GetCampaign(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if c == nil {
		writeError(w, services.NewNotFoundError("survey not found"))
		return
	}
	qs := make([]surveyQuestion, 0, len(c.Questions))
	for _, q := range c.Questions {
		qs = append(qs, surveyQuestion{ID: q.ID, Type: q.Type, Text: q.Text, Order: q.Order})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":               c.ID,
		"name":             c.Name,
		"feedback_enabled": c.FeedbackEnabled,
		"feedback_text":    c.FeedbackText,
		"questions":        qs,
	})
}

func (rt *Router) handleSubmitResponse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RespondentName string                     `json:"respondent_name"`
		Contact        string                     `json:"contact"`
		Answers        map[string]json.RawMessage `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, services.NewInvalidError(err.Error()))
		return
	}
	res, err := rt.responses.Submit(services.SubmitRequest{
		CampaignID:     chi.URLParam(r, "id"),
		RespondentName: req.RespondentName,
		Contact:        req.Contact,
		RawAnswers:     req.Answers,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":           true,
		"response_id":  res.ResponseID,
		"category":     res.Category,
		"redirect":     res.Redirect,
		"redirect_url": res.RedirectURL,
	})
}
