package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"socialnotes/handlers"
	"socialnotes/middleware"
	"socialnotes/models"
)

// Server owns the router and the route-to-guard wiring. Every resource
// endpoint passes through the authenticator and exactly one guard mode.
type Server struct {
	router *mux.Router
}

func NewServer(h *handlers.Handler, a *middleware.Authenticator, g *middleware.Guards, allowedOrigins []string) *Server {
	s := &Server{router: mux.NewRouter()}
	s.router.Use(middleware.CORS(allowedOrigins))

	// Register routes both at the root and under /api.
	registerRoutes(s.router, h, a, g)
	registerRoutes(s.router.PathPrefix("/api").Subrouter(), h, a, g)

	return s
}

// Handler returns the HTTP handler for the API server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func registerRoutes(r *mux.Router, h *handlers.Handler, a *middleware.Authenticator, g *middleware.Guards) {
	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET", "OPTIONS")
	r.HandleFunc("/register", h.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/login", h.Login).Methods("POST", "OPTIONS")

	protected := r.PathPrefix("").Subrouter()
	protected.Use(a.Middleware)

	// User routes
	protected.HandleFunc("/users",
		g.RequireAdmin(models.PermReadUsers, h.ListUsers)).Methods("GET")
	protected.HandleFunc("/users/{user_id}",
		g.RequirePermission(models.PermReadUsers, h.GetUser)).Methods("GET")
	protected.HandleFunc("/users/{user_id}",
		g.RequirePermission(models.PermUpdateUsers, h.UpdateUser)).Methods("PUT")
	protected.HandleFunc("/users/{user_id}",
		g.RequirePermission(models.PermDeleteUsers, h.DeleteUser)).Methods("DELETE")

	// Friend routes
	protected.HandleFunc("/users/{user_id}/friends",
		g.RequirePermission(models.PermReadFriends, h.ListFriends)).Methods("GET")
	protected.HandleFunc("/users/{user_id}/friends/{friend_id}",
		g.RequirePermission(models.PermCreateFriends, h.AddFriend)).Methods("POST")
	protected.HandleFunc("/users/{user_id}/friends/{friend_id}",
		g.RequirePermission(models.PermDeleteFriends, h.RemoveFriend)).Methods("DELETE")

	// Note routes. The friends feed must be registered before the
	// {note_id} route or mux would capture "friends" as a note id.
	protected.HandleFunc("/users/{user_id}/notes/friends",
		g.RequireAccess(models.PermReadNotes, h.ListFriendsNotes)).Methods("GET")
	protected.HandleFunc("/users/{user_id}/notes",
		g.RequirePermission(models.PermCreateNotes, h.CreateNote)).Methods("POST")
	protected.HandleFunc("/users/{user_id}/notes",
		g.RequireAccess(models.PermReadNotes, h.ListNotes)).Methods("GET")
	protected.HandleFunc("/users/{user_id}/notes/{note_id}",
		g.RequireAccess(models.PermReadNotes, h.GetNote)).Methods("GET")
	protected.HandleFunc("/users/{user_id}/notes/{note_id}",
		g.RequirePermission(models.PermUpdateNotes, h.UpdateNote)).Methods("PUT")
	protected.HandleFunc("/users/{user_id}/notes/{note_id}",
		g.RequirePermission(models.PermDeleteNotes, h.DeleteNote)).Methods("DELETE")
}
