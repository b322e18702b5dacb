package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/udisondev/l2editor/internal/data"
	"github.com/udisondev/l2editor/internal/editor"
)

// resource serves the CRUD routes of one document kind.
//
// Handlers never mutate a stored definition in place: PUT swaps in a new
// value, so definitions handed out under the session lock stay safe to encode.
type resource[T data.Definition] struct {
	session *editor.Session
	kind    editor.Kind
	repo    func(r *editor.Repos) *data.Repository[T]
	build   func(id int32) T
	setID   func(def T, id int32)
}

func (res *resource[T]) routes(r chi.Router) {
	r.Get("/", res.handleList)
	r.Post("/", res.handleCreate)
	r.Post("/save", res.handleSave)
	r.Get("/{id}", res.handleGet)
	r.Put("/{id}", res.handleUpdate)
	r.Delete("/{id}", res.handleDelete)
	r.Post("/{id}/clone", res.handleClone)
}

// handleList returns every definition matching ?q=, or all of them
func (res *resource[T]) handleList(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	var defs []T
	_ = res.session.Edit(func(repos *editor.Repos) error {
		defs = res.repo(repos).Search(term)
		return nil
	})
	if defs == nil {
		defs = []T{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"items":       defs,
		"total_count": len(defs),
	})
}

// handleGet returns the first definition with the given id
func (res *resource[T]) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var (
		def   T
		found bool
	)
	_ = res.session.Edit(func(repos *editor.Repos) error {
		def, found = res.repo(repos).FindByID(id)
		return nil
	})
	if !found {
		respondError(w, http.StatusNotFound, "Definition not found")
		return
	}

	respondJSON(w, http.StatusOK, def)
}

// handleCreate adds a definition under the next free id.
// Fields missing from the body keep the defaults of a new definition.
func (res *resource[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	def := res.build(0)
	if err := decodeJSON(r, def); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := data.CheckText(def); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := res.session.Edit(func(repos *editor.Repos) error {
		_, err := res.repo(repos).AllocateAndAdd(func(id int32) T {
			res.setID(def, id)
			return def
		})
		return err
	})
	if errors.Is(err, data.ErrIDsExhausted) {
		respondError(w, http.StatusConflict, "No free id left")
		return
	}

	respondJSON(w, http.StatusCreated, def)
}

// handleUpdate replaces the first definition with the given id
func (res *resource[T]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	def := res.build(id)
	if err := decodeJSON(r, def); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res.setID(def, id)
	if err := data.CheckText(def); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var replaced bool
	_ = res.session.Edit(func(repos *editor.Repos) error {
		replaced = res.repo(repos).Replace(id, def)
		return nil
	})
	if !replaced {
		respondError(w, http.StatusNotFound, "Definition not found")
		return
	}

	respondJSON(w, http.StatusOK, def)
}

// handleDelete removes the first definition with the given id
func (res *resource[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var removed bool
	_ = res.session.Edit(func(repos *editor.Repos) error {
		repo := res.repo(repos)
		if def, found := repo.FindByID(id); found {
			removed = repo.Remove(def)
		}
		return nil
	})
	if !removed {
		respondError(w, http.StatusNotFound, "Definition not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleClone copies a definition under the next free id
func (res *resource[T]) handleClone(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var (
		clone data.Definition
		found bool
	)
	err := res.session.Edit(func(repos *editor.Repos) error {
		var err error
		clone, found, err = repos.Clone(res.kind, id)
		return err
	})
	if errors.Is(err, data.ErrIDsExhausted) {
		respondError(w, http.StatusConflict, "No free id left")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "Definition not found")
		return
	}

	respondJSON(w, http.StatusCreated, clone)
}

// handleSave writes the document to disk
func (res *resource[T]) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := res.session.Save(r.Context(), res.kind); err != nil {
		if errors.Is(err, editor.ErrNoDocument) {
			respondError(w, http.StatusConflict, "No document file configured")
			return
		}
		slog.Error("saving document", "kind", res.kind, "err", err)
		respondError(w, http.StatusInternalServerError, "Failed to save document")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func parseID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return int32(id), true
}
