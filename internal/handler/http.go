package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Naman-Bagoria17/shortify/internal/apperr"
	"github.com/Naman-Bagoria17/shortify/internal/logger"
	"github.com/Naman-Bagoria17/shortify/internal/middleware"
	"github.com/Naman-Bagoria17/shortify/internal/model"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// LinkService is the slug allocation/redirection surface the handlers use.
type LinkService interface {
	Allocate(ctx context.Context, targetURL, ownerID, desiredSlug string) (*model.ShortLink, error)
	Resolve(ctx context.Context, slug string) (targetURL string, found bool, err error)
	Delete(ctx context.Context, linkID, requesterID string) error
	ListForUser(ctx context.Context, userID string) ([]model.UserLink, error)
	ShortURL(slug string) string
}

// AuthService is the account surface the handlers use.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (string, *model.User, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	Logout(ctx context.Context, email, password string) error
}

// DBPinger reports whether the persistent store is reachable.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// Handler wires the REST surface: link creation and deletion, the redirect
// route, the auth endpoints and the user dashboard listing.
type Handler struct {
	links         LinkService
	auth          AuthService
	authMW        *middleware.AuthMiddleware
	pinger        DBPinger
	secureCookies bool
	corsOrigins   []string
}

func NewHandler(links LinkService, auth AuthService, authMW *middleware.AuthMiddleware, pinger DBPinger, secureCookies bool, corsOrigins []string) *Handler {
	return &Handler{
		links:         links,
		auth:          auth,
		authMW:        authMW,
		pinger:        pinger,
		secureCookies: secureCookies,
		corsOrigins:   corsOrigins,
	}
}

func (h *Handler) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Use(logger.RequestLogger)

	r.Use(middleware.CORS(h.corsOrigins))
	r.Use(middleware.GzipReader)
	r.Use(middleware.GzipWriter)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.handleRegister)
			r.Post("/login", h.handleLogin)

			r.Group(func(r chi.Router) {
				r.Use(h.authMW.RequireAuth)
				r.Post("/logout", h.handleLogout)
				r.Get("/me", h.handleCurrentUser)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(h.authMW.AttachUser)
			r.Post("/create", h.handleCreate)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.authMW.RequireAuth)
			r.Delete("/create/{id}", h.handleDelete)
			r.Post("/user/urls", h.handleUserLinks)
		})
	})

	r.Get("/ping", h.handlePing)
	r.Get("/{slug}", h.handleRedirect)

	return r
}

// handleCreate allocates a slug for the posted URL. Login is optional:
// authenticated callers own the link and may claim a custom slug,
// anonymous callers always receive a generated one.
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if req.URL == "" {
		writeError(w, apperr.BadRequest("url is required"))
		return
	}

	var ownerID string
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		ownerID = user.ID
	}

	link, err := h.links.Allocate(r.Context(), req.URL, ownerID, req.Slug)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createResponse{ShortURL: h.links.ShortURL(link.Slug)})
}

// handleDelete removes a link owned by the authenticated user.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	linkID := chi.URLParam(r, "id")
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperr.Unauthorized("Unauthorized"))
		return
	}

	if err := h.links.Delete(r.Context(), linkID, user.ID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "URL deleted successfully"})
}

// handleRedirect resolves a slug and redirects to its target, counting the
// click. An unknown slug degrades gracefully to the site root instead of
// surfacing an error page.
func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	targetURL, found, err := h.links.Resolve(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}

	if !found {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	http.Redirect(w, r, targetURL, http.StatusFound)
}

// handleUserLinks lists all links of the authenticated user.
func (h *Handler) handleUserLinks(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperr.Unauthorized("Unauthorized"))
		return
	}

	urls, err := h.links.ListForUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userLinksResponse{Message: "success", URLs: urls})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"message":   "Shortify API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) handlePing(w http.ResponseWriter, r *http.Request) {
	if h.pinger == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := h.pinger.Ping(r.Context()); err != nil {
		log.Error().Err(err).Msg("Database ping failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
