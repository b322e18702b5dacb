package data

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// ErrIDsExhausted is returned by AllocateAndAdd when the repository already
// holds id math.MaxInt32.
var ErrIDsExhausted = errors.New("no id greater than the current maximum is available")

// Repository is the ordered in-memory collection of one definition kind.
// Order is the document order and is what SaveTo writes back.
//
// Repository is not safe for concurrent use. Callers sharing one repository
// must serialise access themselves; AllocateAndAdd covers the nextId+add pair.
type Repository[T Definition] struct {
	codec Codec[T]
	defs  []T
}

// Repositories for each document kind.
type (
	ItemRepository       = Repository[*Item]
	SkillRepository      = Repository[*Skill]
	FixedSkillRepository = Repository[*FixedSkill]
	SkillTreeRepository  = Repository[*SkillTreeClass]
)

// NewRepository creates an empty repository that persists through codec.
func NewRepository[T Definition](codec Codec[T]) *Repository[T] {
	return &Repository[T]{codec: codec}
}

func NewItemRepository() *ItemRepository { return NewRepository[*Item](ItemCodec{}) }

func NewSkillRepository() *SkillRepository { return NewRepository[*Skill](SkillCodec{}) }

func NewFixedSkillRepository() *FixedSkillRepository {
	return NewRepository[*FixedSkill](FixedSkillCodec{})
}

func NewSkillTreeRepository() *SkillTreeRepository {
	return NewRepository[*SkillTreeClass](SkillTreeCodec{})
}

// Add appends def. Duplicate ids are allowed.
func (r *Repository[T]) Add(def T) {
	r.defs = append(r.defs, def)
}

// Remove deletes the first element that is def itself or structurally equal to it.
// Reports whether anything was removed.
func (r *Repository[T]) Remove(def T) bool {
	i := slices.IndexFunc(r.defs, func(d T) bool {
		return reflect.DeepEqual(d, def)
	})
	if i < 0 {
		return false
	}
	r.defs = slices.Delete(r.defs, i, i+1)
	return true
}

// FindByID returns the first definition with the given id.
func (r *Repository[T]) FindByID(id int32) (T, bool) {
	for _, d := range r.defs {
		if d.DefinitionID() == id {
			return d, true
		}
	}
	var zero T
	return zero, false
}

// Search returns, in repository order, every definition whose decimal id,
// name or (for items) type contains term, ignoring case.
// An empty term matches everything.
func (r *Repository[T]) Search(term string) []T {
	fold := cases.Fold()
	needle := fold.String(term)

	var result []T
	for _, d := range r.defs {
		if matches(fold, d, needle) {
			result = append(result, d)
		}
	}
	return result
}

func matches[T Definition](fold cases.Caser, d T, needle string) bool {
	if strings.Contains(strconv.FormatInt(int64(d.DefinitionID()), 10), needle) {
		return true
	}
	for _, f := range d.searchFields() {
		if f != "" && strings.Contains(fold.String(f), needle) {
			return true
		}
	}
	return false
}

// Replace swaps the first definition with the given id for def, keeping its position.
// Reports whether a definition with that id existed.
func (r *Repository[T]) Replace(id int32, def T) bool {
	i := slices.IndexFunc(r.defs, func(d T) bool { return d.DefinitionID() == id })
	if i < 0 {
		return false
	}
	r.defs[i] = def
	return true
}

// NextID returns max(id)+1, or 1 for an empty repository.
// ok is false when max(id) is math.MaxInt32 and no greater id exists.
// The id is not reserved: see AllocateAndAdd.
func (r *Repository[T]) NextID() (id int32, ok bool) {
	if len(r.defs) == 0 {
		return 1, true
	}
	maxID := r.defs[0].DefinitionID()
	for _, d := range r.defs[1:] {
		maxID = max(maxID, d.DefinitionID())
	}
	if maxID == math.MaxInt32 {
		return 0, false
	}
	return maxID + 1, true
}

// AllocateAndAdd allocates the next id, builds the definition with it and adds
// it in one step. Returns ErrIDsExhausted without calling build when no id is left.
func (r *Repository[T]) AllocateAndAdd(build func(id int32) T) (T, error) {
	id, ok := r.NextID()
	if !ok {
		var zero T
		return zero, ErrIDsExhausted
	}
	def := build(id)
	r.Add(def)
	return def, nil
}

// All returns the definitions in order. The slice is a copy; the definitions are not.
func (r *Repository[T]) All() []T {
	return slices.Clone(r.defs)
}

// Len returns the number of definitions.
func (r *Repository[T]) Len() int {
	return len(r.defs)
}

// LoadFrom replaces the contents with the definitions decoded from raw.
// On error the previous contents are left untouched.
func (r *Repository[T]) LoadFrom(raw []byte) error {
	defs, err := r.codec.Decode(raw)
	if err != nil {
		return err
	}
	r.defs = defs
	return nil
}

// SaveTo encodes the contents in repository order.
func (r *Repository[T]) SaveTo() []byte {
	return r.codec.Encode(r.defs)
}
