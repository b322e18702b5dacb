package data

// Definition is one persisted record of a document kind.
// Implemented by *Item, *Skill, *FixedSkill and *SkillTreeClass.
type Definition interface {
	// DefinitionID is the id used for lookup and allocation
	// (item id, skill id, class id).
	DefinitionID() int32
	// searchFields lists the strings matched by Repository.Search
	// besides the decimal id.
	searchFields() []string
}

// cloneSlice copies s, keeping nil as nil.
func cloneSlice[E any](s []E) []E {
	if s == nil {
		return nil
	}
	out := make([]E, len(s))
	copy(out, s)
	return out
}
