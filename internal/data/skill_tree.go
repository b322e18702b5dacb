package data

import (
	"fmt"
	"slices"
)

// SkillTreeClass — дерево скиллов одного класса (<skillTree>).
type SkillTreeClass struct {
	ClassID       int32            `json:"classId"`
	ParentClassID int32            `json:"parentClassId"` // 0 = root class
	Type          string           `json:"type"`          // "classSkillTree", "fishingSkillTree", ...
	Entries       []SkillTreeEntry `json:"entries,omitempty"`
}

// SkillTreeEntry — одна запись дерева: какой скилл, с какого уровня и за сколько SP.
type SkillTreeEntry struct {
	SkillID      int32  `json:"skillId"`
	SkillName    string `json:"skillName"`
	SkillLevel   int32  `json:"skillLevel"`
	GetLevel     int32  `json:"getLevel"` // character level at which it becomes learnable
	LevelUpSp    int64  `json:"levelUpSp"`
	LearnedByNpc bool   `json:"learnedByNpc"`
}

// NewSkillTreeEntry returns the entry the editor adds for "new skill".
func NewSkillTreeEntry() SkillTreeEntry {
	return SkillTreeEntry{
		SkillName:    "New Skill",
		SkillLevel:   1,
		GetLevel:     1,
		LearnedByNpc: true,
	}
}

func (c *SkillTreeClass) DefinitionID() int32 { return c.ClassID }

func (c *SkillTreeClass) searchFields() []string {
	return []string{c.Type}
}

// EntriesInLevelRange returns entries with minLevel <= GetLevel <= maxLevel, in stored order.
func (c *SkillTreeClass) EntriesInLevelRange(minLevel, maxLevel int32) []SkillTreeEntry {
	var result []SkillTreeEntry
	for _, e := range c.Entries {
		if e.GetLevel >= minLevel && e.GetLevel <= maxLevel {
			result = append(result, e)
		}
	}
	return result
}

// EntriesAtGetLevel returns entries learnable exactly at level, in stored order.
func (c *SkillTreeClass) EntriesAtGetLevel(level int32) []SkillTreeEntry {
	var result []SkillTreeEntry
	for _, e := range c.Entries {
		if e.GetLevel == level {
			result = append(result, e)
		}
	}
	return result
}

// AddEntry appends an entry to the tree.
func (c *SkillTreeClass) AddEntry(e SkillTreeEntry) {
	c.Entries = append(c.Entries, e)
}

// RemoveEntry removes the first entry equal to e.
func (c *SkillTreeClass) RemoveEntry(e SkillTreeEntry) bool {
	i := slices.Index(c.Entries, e)
	if i < 0 {
		return false
	}
	c.Entries = slices.Delete(c.Entries, i, i+1)
	if len(c.Entries) == 0 {
		c.Entries = nil
	}
	return true
}

// Clone returns a deep copy of the class tree.
func (c *SkillTreeClass) Clone() *SkillTreeClass {
	out := *c
	out.Entries = cloneSlice(c.Entries)
	return &out
}

func (c *SkillTreeClass) String() string {
	return fmt.Sprintf("%d - %s (%d skills)", c.ClassID, c.Type, len(c.Entries))
}

func (e SkillTreeEntry) String() string {
	return fmt.Sprintf("%s (ID: %d, Lvl: %d) - Learn at %d, SP: %d",
		e.SkillName, e.SkillID, e.SkillLevel, e.GetLevel, e.LevelUpSp)
}
