package editor

import (
	"fmt"

	"github.com/udisondev/l2editor/internal/data"
)

// Repos holds one repository per document kind.
type Repos struct {
	Items       *data.ItemRepository
	Skills      *data.SkillRepository
	FixedSkills *data.FixedSkillRepository
	SkillTrees  *data.SkillTreeRepository
}

func newRepos() Repos {
	return Repos{
		Items:       data.NewItemRepository(),
		Skills:      data.NewSkillRepository(),
		FixedSkills: data.NewFixedSkillRepository(),
		SkillTrees:  data.NewSkillTreeRepository(),
	}
}

// document is the kind-independent part of a repository.
type document interface {
	LoadFrom(raw []byte) error
	SaveTo() []byte
	Len() int
}

func (r *Repos) document(k Kind) (document, error) {
	switch k {
	case KindItems:
		return r.Items, nil
	case KindSkills:
		return r.Skills, nil
	case KindFixedSkills:
		return r.FixedSkills, nil
	case KindSkillTrees:
		return r.SkillTrees, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
}

// adopt takes over the repository of kind from other.
func (r *Repos) adopt(k Kind, other *Repos) {
	switch k {
	case KindItems:
		r.Items = other.Items
	case KindSkills:
		r.Skills = other.Skills
	case KindFixedSkills:
		r.FixedSkills = other.FixedSkills
	case KindSkillTrees:
		r.SkillTrees = other.SkillTrees
	}
}

// Search runs Repository.Search on the repository of kind.
func (r *Repos) Search(k Kind, term string) ([]data.Definition, error) {
	switch k {
	case KindItems:
		return search(r.Items, term), nil
	case KindSkills:
		return search(r.Skills, term), nil
	case KindFixedSkills:
		return search(r.FixedSkills, term), nil
	case KindSkillTrees:
		return search(r.SkillTrees, term), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
}

// Find returns the first definition of kind with the given id.
func (r *Repos) Find(k Kind, id int32) (data.Definition, bool, error) {
	switch k {
	case KindItems:
		return find(r.Items, id)
	case KindSkills:
		return find(r.Skills, id)
	case KindFixedSkills:
		return find(r.FixedSkills, id)
	case KindSkillTrees:
		return find(r.SkillTrees, id)
	}
	return nil, false, fmt.Errorf("%w: %q", ErrUnknownKind, k)
}

// Delete removes the first definition of kind with the given id.
func (r *Repos) Delete(k Kind, id int32) (bool, error) {
	switch k {
	case KindItems:
		return remove(r.Items, id), nil
	case KindSkills:
		return remove(r.Skills, id), nil
	case KindFixedSkills:
		return remove(r.FixedSkills, id), nil
	case KindSkillTrees:
		return remove(r.SkillTrees, id), nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownKind, k)
}

// CloneSuffix is appended to the name of a cloned definition.
const CloneSuffix = " (Clone)"

// Clone copies the first definition of kind with the given id under the next
// free id and adds the copy. Skill trees have no name and keep their type.
// Fails with data.ErrIDsExhausted when no free id is left.
func (r *Repos) Clone(k Kind, id int32) (data.Definition, bool, error) {
	switch k {
	case KindItems:
		return cloneAs(r.Items, id, func(src *data.Item, newID int32) *data.Item {
			c := src.Clone()
			c.ID, c.Name = newID, c.Name+CloneSuffix
			return c
		})
	case KindSkills:
		return cloneAs(r.Skills, id, func(src *data.Skill, newID int32) *data.Skill {
			c := src.Clone()
			c.ID, c.Name = newID, c.Name+CloneSuffix
			return c
		})
	case KindFixedSkills:
		return cloneAs(r.FixedSkills, id, func(src *data.FixedSkill, newID int32) *data.FixedSkill {
			c := src.Clone()
			c.ID, c.Name = newID, c.Name+CloneSuffix
			return c
		})
	case KindSkillTrees:
		return cloneAs(r.SkillTrees, id, func(src *data.SkillTreeClass, newID int32) *data.SkillTreeClass {
			c := src.Clone()
			c.ClassID = newID
			return c
		})
	}
	return nil, false, fmt.Errorf("%w: %q", ErrUnknownKind, k)
}

func cloneAs[T data.Definition](repo *data.Repository[T], id int32, copyAs func(src T, newID int32) T) (data.Definition, bool, error) {
	src, ok := repo.FindByID(id)
	if !ok {
		return nil, false, nil
	}
	c, err := repo.AllocateAndAdd(func(newID int32) T { return copyAs(src, newID) })
	if err != nil {
		return nil, true, err
	}
	return c, true, nil
}

func search[T data.Definition](repo *data.Repository[T], term string) []data.Definition {
	found := repo.Search(term)
	out := make([]data.Definition, len(found))
	for i, d := range found {
		out[i] = d
	}
	return out
}

func find[T data.Definition](repo *data.Repository[T], id int32) (data.Definition, bool, error) {
	d, ok := repo.FindByID(id)
	if !ok {
		return nil, false, nil
	}
	return d, true, nil
}

func remove[T data.Definition](repo *data.Repository[T], id int32) bool {
	d, ok := repo.FindByID(id)
	if !ok {
		return false
	}
	return repo.Remove(d)
}
