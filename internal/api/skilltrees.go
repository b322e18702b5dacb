package api

import (
	"math"
	"net/http"
	"strconv"

	"github.com/udisondev/l2editor/internal/data"
	"github.com/udisondev/l2editor/internal/editor"
)

// handleGetTreeEntries returns the entries of one skill tree.
// ?level=N selects entries learnable exactly at N, ?min=&max= an inclusive range.
func (s *Server) handleGetTreeEntries(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	var (
		level, minLevel, maxLevel int32
		err                       error
	)
	byLevel := q.Has("level")
	if byLevel {
		level, err = parseLevel(q.Get("level"), 0)
	} else if minLevel, err = parseLevel(q.Get("min"), math.MinInt32); err == nil {
		maxLevel, err = parseLevel(q.Get("max"), math.MaxInt32)
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid level")
		return
	}

	var (
		entries []data.SkillTreeEntry
		found   bool
	)
	_ = s.session.Edit(func(repos *editor.Repos) error {
		tree, ok := repos.SkillTrees.FindByID(id)
		if !ok {
			return nil
		}
		found = true
		switch {
		case byLevel:
			entries = tree.EntriesAtGetLevel(level)
		case q.Has("min") || q.Has("max"):
			entries = tree.EntriesInLevelRange(minLevel, maxLevel)
		default:
			entries = tree.Clone().Entries
		}
		return nil
	})
	if !found {
		respondError(w, http.StatusNotFound, "Skill tree not found")
		return
	}
	if entries == nil {
		entries = []data.SkillTreeEntry{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"items":       entries,
		"total_count": len(entries),
	})
}

// parseLevel parses a level query value, returning def when it is empty.
func parseLevel(raw string, def int32) (int32, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	return int32(v), err
}
