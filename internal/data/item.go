package data

import "fmt"

// Item — определение предмета из items/*.xml.
type Item struct {
	ID     int32        `json:"id"`
	Type   string       `json:"type,omitempty"` // "Weapon", "Armor", "EtcItem"; optional
	Name   string       `json:"name"`
	Sets   AttributeBag `json:"sets"`
	Stats  []ItemStat   `json:"stats,omitempty"`
	Skills []ItemSkill  `json:"skills,omitempty"`
}

// ItemStat is one <stat type="pAtk">8</stat> entry.
type ItemStat struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ItemSkill is a skill granted by the item. SkillID is not checked
// against any skill document.
type ItemSkill struct {
	SkillID int32 `json:"id"`
	Level   int32 `json:"level"`
}

// NewItem returns the record the editor creates for "new item".
func NewItem(id int32) *Item {
	return &Item{
		ID:   id,
		Name: "New Item",
		Type: "Weapon",
	}
}

func (it *Item) DefinitionID() int32 { return it.ID }

func (it *Item) searchFields() []string {
	return []string{it.Name, it.Type}
}

// SetValue returns the first <set> value with the given name.
func (it *Item) SetValue(name string) (string, bool) {
	return it.Sets.Get(name)
}

// StatValue returns the value of the first stat of the given type.
func (it *Item) StatValue(statType string) (string, bool) {
	for _, s := range it.Stats {
		if s.Type == statType {
			return s.Value, true
		}
	}
	return "", false
}

// Clone returns a deep copy of the item.
func (it *Item) Clone() *Item {
	return &Item{
		ID:     it.ID,
		Type:   it.Type,
		Name:   it.Name,
		Sets:   it.Sets.clone(),
		Stats:  cloneSlice(it.Stats),
		Skills: cloneSlice(it.Skills),
	}
}

func (it *Item) String() string {
	return fmt.Sprintf("%d - %s [%s]", it.ID, it.Name, it.Type)
}
