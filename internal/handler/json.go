package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Naman-Bagoria17/shortify/internal/apperr"
	"github.com/Naman-Bagoria17/shortify/internal/model"
	"github.com/rs/zerolog/log"
)

type createRequest struct {
	URL  string `json:"url"`
	Slug string `json:"slug,omitempty"`
}

type createResponse struct {
	ShortURL string `json:"shortUrl"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type logoutRequest struct {
	Password string `json:"password"`
}

type userResponse struct {
	User    *model.User `json:"user"`
	Message string      `json:"message,omitempty"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type userLinksResponse struct {
	Message string           `json:"message"`
	URLs    []model.UserLink `json:"urls"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	response, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// writeError translates a domain error into a structured JSON response.
// Unclassified errors are logged server-side and surfaced as an opaque 500
// so no store or stack detail leaks to clients.
func writeError(w http.ResponseWriter, err error) {
	if appErr, ok := apperr.From(err); ok {
		writeJSON(w, appErr.Status(), messageResponse{Success: false, Message: appErr.Message})
		return
	}

	log.Error().Err(err).Msg("Unhandled error")
	writeJSON(w, http.StatusInternalServerError, messageResponse{Success: false, Message: "Internal Server Error"})
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	return nil
}
