package handler

import (
	"net/http"

	"github.com/Naman-Bagoria17/shortify/internal/apperr"
	"github.com/Naman-Bagoria17/shortify/internal/auth"
	"github.com/Naman-Bagoria17/shortify/internal/middleware"
)

// handleRegister creates an account and starts a session by setting the
// signed-token cookie.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, apperr.BadRequest("name, email and password are required"))
		return
	}

	token, user, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, auth.SessionCookie(token, h.secureCookies))
	writeJSON(w, http.StatusOK, userResponse{User: user, Message: "signed up successfully"})
}

// handleLogin verifies credentials and starts a session.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, apperr.BadRequest("email and password are required"))
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, auth.SessionCookie(token, h.secureCookies))
	writeJSON(w, http.StatusOK, userResponse{User: user, Message: "signed in successfully"})
}

// handleLogout re-verifies the password, then clears the session cookie.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperr.Unauthorized("Unauthorized"))
		return
	}

	var req logoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.auth.Logout(r.Context(), user.Email, req.Password); err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, auth.ClearedCookie(h.secureCookies))
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Logout successful"})
}

// handleCurrentUser returns the authenticated user attached by the auth
// middleware.
func (h *Handler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperr.Unauthorized("Unauthorized"))
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}
