package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iscottycodes/contentcontest/pkg/models"
)

// apiTokenTTL bounds the lifetime of admin API bearer tokens.
const apiTokenTTL = 15 * time.Minute

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// APIToken exchanges a valid admin session cookie for a short-lived
// bearer token the JSON API accepts.
func (h *Handler) APIToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		writeJSONError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	identity, err := h.auth.VerifySession(r.Context(), cookie.Value)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "session invalid")
		return
	}

	tok, err := h.tokens.Generate(identity.UID, identity.Email, apiTokenTTL)
	if err != nil {
		log.Printf("Error generating API token: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "token generation failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":     tok,
		"expiresAt": time.Now().Add(apiTokenTTL).Unix(),
	})
}

// APIListSubmissions returns submissions as JSON, optionally filtered by
// status.
func (h *Handler) APIListSubmissions(w http.ResponseWriter, r *http.Request) {
	status := models.SubmissionStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeJSONError(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	subs, err := h.db.ListSubmissions(r.Context(), status)
	if err != nil {
		log.Printf("Error listing submissions: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load submissions")
		return
	}
	if subs == nil {
		subs = []models.Submission{}
	}

	writeJSON(w, http.StatusOK, subs)
}

// apiStatusUpdate is the body for status-transition requests. Notes is a
// pointer so an absent field can be told apart from an explicit empty
// string; only present fields are written.
type apiStatusUpdate struct {
	Status string  `json:"status"`
	Place  int     `json:"place,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// APIUpdateSubmission transitions a submission's status from the admin UI.
func (h *Handler) APIUpdateSubmission(w http.ResponseWriter, r *http.Request) {
	var body apiStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := models.SubmissionStatus(body.Status)
	if !status.Valid() {
		writeJSONError(w, http.StatusBadRequest, "unknown status")
		return
	}
	if body.Place != 0 && (body.Place < 1 || body.Place > 3 || status != models.SubmissionWinner) {
		writeJSONError(w, http.StatusBadRequest, "place must be 1-3 and only for winners")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.db.UpdateSubmissionStatus(r.Context(), id, status, body.Place); err != nil {
		log.Printf("Error updating submission %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "unable to update submission")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(status)})
}

// APIListVolunteers returns volunteer applications as JSON.
func (h *Handler) APIListVolunteers(w http.ResponseWriter, r *http.Request) {
	status := models.VolunteerStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeJSONError(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	vols, err := h.db.ListVolunteers(r.Context(), status)
	if err != nil {
		log.Printf("Error listing volunteers: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load volunteers")
		return
	}
	if vols == nil {
		vols = []models.Volunteer{}
	}

	writeJSON(w, http.StatusOK, vols)
}

// APIUpdateVolunteer moves a volunteer application through the pipeline.
func (h *Handler) APIUpdateVolunteer(w http.ResponseWriter, r *http.Request) {
	var body apiStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := models.VolunteerStatus(body.Status)
	if !status.Valid() {
		writeJSONError(w, http.StatusBadRequest, "unknown status")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.db.UpdateVolunteerStatus(r.Context(), id, status, body.Notes); err != nil {
		log.Printf("Error updating volunteer %s: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "unable to update volunteer")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(status)})
}
