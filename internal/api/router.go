package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/udisondev/l2editor/internal/config"
	"github.com/udisondev/l2editor/internal/data"
	"github.com/udisondev/l2editor/internal/editor"
)

// Server holds the HTTP server dependencies
type Server struct {
	session *editor.Session
	cfg     config.HTTPConfig
	router  chi.Router
}

// New creates a new API server
func New(session *editor.Session, cfg config.HTTPConfig) *Server {
	s := &Server{
		session: session,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RequestLogger(slogFormatter{}))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	items := &resource[*data.Item]{
		session: s.session,
		kind:    editor.KindItems,
		repo:    func(r *editor.Repos) *data.ItemRepository { return r.Items },
		build:   data.NewItem,
		setID:   func(it *data.Item, id int32) { it.ID = id },
	}
	skills := &resource[*data.Skill]{
		session: s.session,
		kind:    editor.KindSkills,
		repo:    func(r *editor.Repos) *data.SkillRepository { return r.Skills },
		build:   data.NewSkill,
		setID:   func(sk *data.Skill, id int32) { sk.ID = id },
	}
	fixedSkills := &resource[*data.FixedSkill]{
		session: s.session,
		kind:    editor.KindFixedSkills,
		repo:    func(r *editor.Repos) *data.FixedSkillRepository { return r.FixedSkills },
		build:   func(id int32) *data.FixedSkill { return data.NewFixedSkill(id, "New Skill") },
		setID:   func(sk *data.FixedSkill, id int32) { sk.ID = id },
	}
	skillTrees := &resource[*data.SkillTreeClass]{
		session: s.session,
		kind:    editor.KindSkillTrees,
		repo:    func(r *editor.Repos) *data.SkillTreeRepository { return r.SkillTrees },
		build:   func(id int32) *data.SkillTreeClass { return &data.SkillTreeClass{ClassID: id, Type: "classSkillTree"} },
		setID:   func(c *data.SkillTreeClass, id int32) { c.ClassID = id },
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/items", items.routes)
		r.Route("/skills", skills.routes)
		r.Route("/fixedskills", fixedSkills.routes)
		r.Route("/skilltrees", func(r chi.Router) {
			skillTrees.routes(r)
			r.Get("/{id}/entries", s.handleGetTreeEntries)
		})
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
