package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/clavisnova/submissions/pkg/export"
	"github.com/clavisnova/submissions/pkg/gateway"
	"github.com/clavisnova/submissions/pkg/model"
	"github.com/clavisnova/submissions/pkg/query"
	"github.com/clavisnova/submissions/pkg/store"
)

// defaultYear substitutes for a missing or unparseable registration year.
const defaultYear = 2020

// kindFromSlug maps an admin route segment to its entity kind.
func kindFromSlug(slug string) (model.Kind, bool) {
	switch slug {
	case "registrations":
		return model.KindRegistration, true
	case "requirements":
		return model.KindRequirements, true
	case "contacts":
		return model.KindContact, true
	case "logs":
		return model.KindSystemLog, true
	}
	return "", false
}

// registrationRequest accepts the public registration form body. Year is
// kept raw because clients send it as either a number or a string.
type registrationRequest struct {
	Manufacturer string          `json:"manufacturer"`
	Model        string          `json:"model"`
	Serial       string          `json:"serial"`
	Year         json.RawMessage `json:"year"`
	Height       string          `json:"height"`
	Finish       string          `json:"finish"`
	ColorWood    string          `json:"color_wood"`
	CityState    string          `json:"city_state"`
	Access       string          `json:"access"`
}

// coerceYear parses the raw year value, accepting both numeric and
// string encodings and falling back to the default otherwise.
func coerceYear(raw json.RawMessage) int {
	if len(raw) == 0 {
		return defaultYear
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return defaultYear
}

func createRegistrationHandler(gw *gateway.Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registrationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}

		required := map[string]string{
			"manufacturer": req.Manufacturer,
			"model":        req.Model,
			"serial":       req.Serial,
			"height":       req.Height,
			"finish":       req.Finish,
			"color_wood":   req.ColorWood,
			"city_state":   req.CityState,
		}
		for field, value := range required {
			if strings.TrimSpace(value) == "" {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("missing required field: %s", field))
				return
			}
		}

		entity := &model.Registration{
			Manufacturer: req.Manufacturer,
			Model:        req.Model,
			Serial:       req.Serial,
			Year:         coerceYear(req.Year),
			Height:       req.Height,
			Finish:       req.Finish,
			ColorWood:    req.ColorWood,
			CityState:    req.CityState,
			Access:       req.Access,
			IPAddress:    clientIP(r),
			UserAgent:    r.UserAgent(),
		}

		id, err := gw.Create(r.Context(), entity)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to store registration: %v", err))
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": id, "message": "Registration created successfully"})
	}
}

// requirementsRequest accepts the institutional requirements form body.
// The info1 through info6 names are legacy aliases still sent by older
// form builds.
type requirementsRequest struct {
	SchoolName    string `json:"school_name"`
	CurrentPianos string `json:"current_pianos"`
	PreferredType string `json:"preferred_type"`
	TeacherName   string `json:"teacher_name"`
	Background    string `json:"background"`
	Commitment    string `json:"commitment"`

	Info1 string `json:"info1"`
	Info2 string `json:"info2"`
	Info3 string `json:"info3"`
	Info4 string `json:"info4"`
	Info5 string `json:"info5"`
	Info6 string `json:"info6"`
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func createRequirementsHandler(gw *gateway.Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requirementsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}

		entity := &model.Requirements{
			SchoolName:    firstNonEmpty(req.SchoolName, req.Info1),
			CurrentPianos: firstNonEmpty(req.CurrentPianos, req.Info2),
			PreferredType: firstNonEmpty(req.PreferredType, req.Info3),
			TeacherName:   firstNonEmpty(req.TeacherName, req.Info4),
			Background:    firstNonEmpty(req.Background, req.Info5),
			Commitment:    firstNonEmpty(req.Commitment, req.Info6),
			IPAddress:     clientIP(r),
			UserAgent:     r.UserAgent(),
		}

		if entity.SchoolName == "" && entity.CurrentPianos == "" && entity.PreferredType == "" &&
			entity.TeacherName == "" && entity.Background == "" && entity.Commitment == "" {
			writeError(w, http.StatusBadRequest, "at least one requirements field must be provided")
			return
		}

		id, err := gw.Create(r.Context(), entity)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to store requirements: %v", err))
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": id, "message": "Requirements submitted successfully"})
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func createContactHandler(gw *gateway.Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			writeError(w, http.StatusBadRequest, "missing required field: message")
			return
		}

		entity := &model.Contact{
			Name:      req.Name,
			Email:     req.Email,
			Message:   req.Message,
			IPAddress: clientIP(r),
			UserAgent: r.UserAgent(),
		}

		id, err := gw.Create(r.Context(), entity)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to store contact message: %v", err))
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": id, "message": "Contact message sent successfully"})
	}
}

// listHandler serves one page of an admin listing.
func listHandler(svc *query.Service, kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := query.Params{Search: r.URL.Query().Get("search")}
		if v := r.URL.Query().Get("page"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				params.Page = n
			}
		}
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				params.Limit = n
			}
		}

		items, pagination, err := svc.List(r.Context(), kind, params)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list %s: %v", kind, err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"data":       items,
			"pagination": pagination,
		})
	}
}

func statsHandler(svc *query.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to compute stats: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": stats})
	}
}

func deleteHandler(st *store.LocalStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := kindFromSlug(chi.URLParam(r, "kind"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown entity kind")
			return
		}
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid ID format")
			return
		}

		deleted, err := st.Delete(r.Context(), kind, id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to delete %s: %v", kind, err))
			return
		}
		if !deleted {
			writeError(w, http.StatusNotFound, notFoundMessage(kind))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Deleted successfully"})
	}
}

// notFoundMessage matches the message wording the admin UI expects.
func notFoundMessage(kind model.Kind) string {
	switch kind {
	case model.KindRegistration:
		return "Registration not found"
	case model.KindRequirements:
		return "Requirement not found"
	case model.KindContact:
		return "Contact not found"
	case model.KindSystemLog:
		return "Log entry not found"
	}
	return "Record not found"
}

func exportHandler(exp *export.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := kindFromSlug(chi.URLParam(r, "kind"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown entity kind")
			return
		}

		file, err := exp.Export(r.Context(), kind)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to export %s: %v", kind, err))
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(file.Data)
	}
}
