package editor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/l2editor/internal/config"
)

// ErrNoDocument is returned when a kind has no file configured.
var ErrNoDocument = errors.New("no document file configured")

// RevisionRecorder stores saved documents. Implemented by *db.RevisionRepository.
type RevisionRecorder interface {
	SaveRevision(ctx context.Context, kind string, content []byte, definitions int) (int64, error)
}

// Session is the editing state of every document kind.
//
// All access to the repositories goes through the session mutex, so the
// repositories themselves never see concurrent callers.
type Session struct {
	mu       sync.Mutex
	repos    Repos
	paths    map[Kind]string
	recorder RevisionRecorder
}

// NewSession creates a session with empty repositories.
// paths maps each kind to its document file; kinds without a path cannot be saved.
// recorder may be nil.
func NewSession(paths map[Kind]string, recorder RevisionRecorder) *Session {
	return &Session{
		repos:    newRepos(),
		paths:    paths,
		recorder: recorder,
	}
}

// PathsFromConfig resolves the configured document files.
func PathsFromConfig(cfg config.Editor) map[Kind]string {
	paths := make(map[Kind]string, len(Kinds))
	for k, name := range map[Kind]string{
		KindItems:       cfg.Documents.Items,
		KindSkills:      cfg.Documents.Skills,
		KindFixedSkills: cfg.Documents.FixedSkills,
		KindSkillTrees:  cfg.Documents.SkillTrees,
	} {
		if p := cfg.Path(name); p != "" {
			paths[k] = p
		}
	}
	return paths
}

// Path returns the document file of kind, or "" if none is configured.
func (s *Session) Path(k Kind) string {
	return s.paths[k]
}

// Load reads every configured document in parallel and replaces the session contents.
// A missing file leaves that kind empty. If any document fails to parse,
// nothing is replaced.
func (s *Session) Load(ctx context.Context) error {
	raws := make(map[Kind][]byte, len(Kinds))
	var rawsMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, k := range Kinds {
		path := s.paths[k]
		if path == "" {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					slog.Warn("document not found, starting empty", "kind", k, "path", path)
					return nil
				}
				return fmt.Errorf("reading %s: %w", path, err)
			}
			rawsMu.Lock()
			raws[k] = raw
			rawsMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	repos := newRepos()
	for _, k := range Kinds {
		raw, ok := raws[k]
		if !ok {
			continue
		}
		doc, _ := repos.document(k)
		if err := doc.LoadFrom(raw); err != nil {
			return fmt.Errorf("loading %s: %w", s.paths[k], err)
		}
		slog.Info("loaded document", "kind", k, "path", s.paths[k], "count", doc.Len())
	}

	s.mu.Lock()
	s.repos = repos
	s.mu.Unlock()
	return nil
}

// Edit runs fn with exclusive access to the repositories.
func (s *Session) Edit(fn func(r *Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.repos)
}

// Save writes the document of kind to its file and records a revision.
func (s *Session) Save(ctx context.Context, k Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, k)
}

// Restore replaces the contents of kind with content and saves it.
// The session is only changed once the document file has been written:
// invalid content or a failed write leave it as it was.
func (s *Session) Restore(ctx context.Context, k Kind, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := newRepos()
	doc, err := fresh.document(k)
	if err != nil {
		return err
	}
	if err := doc.LoadFrom(content); err != nil {
		return fmt.Errorf("restoring %s: %w", k, err)
	}
	raw, err := s.write(k, doc)
	if err != nil {
		return err
	}
	s.repos.adopt(k, &fresh)
	return s.record(ctx, k, doc, raw)
}

func (s *Session) save(ctx context.Context, k Kind) error {
	doc, err := s.repos.document(k)
	if err != nil {
		return err
	}
	raw, err := s.write(k, doc)
	if err != nil {
		return err
	}
	return s.record(ctx, k, doc, raw)
}

// write encodes doc into the file of kind and returns the bytes written.
func (s *Session) write(k Kind, doc document) ([]byte, error) {
	path := s.paths[k]
	if path == "" {
		return nil, fmt.Errorf("saving %s: %w", k, ErrNoDocument)
	}

	raw := doc.SaveTo()
	if err := writeFileAtomic(path, raw); err != nil {
		return nil, fmt.Errorf("saving %s: %w", k, err)
	}
	slog.Info("saved document", "kind", k, "path", path, "count", doc.Len())
	return raw, nil
}

func (s *Session) record(ctx context.Context, k Kind, doc document, raw []byte) error {
	if s.recorder == nil {
		return nil
	}
	id, err := s.recorder.SaveRevision(ctx, string(k), raw, doc.Len())
	if err != nil {
		return fmt.Errorf("recording %s revision: %w", k, err)
	}
	slog.Debug("revision recorded", "kind", k, "revision", id)
	return nil
}

// writeFileAtomic writes raw next to path and renames it into place.
func writeFileAtomic(path string, raw []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}
