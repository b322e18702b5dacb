package data

import "fmt"

// Skill — расширяемая схема скилла (skills/*.xml): уровни, <set>, <table>,
// дерево условий и список эффектов.
type Skill struct {
	ID            int32        `json:"id"`
	Levels        int32        `json:"levels"`
	Name          string       `json:"name"`
	EnchantGroup1 string       `json:"enchantGroup1,omitempty"`
	EnchantGroup2 string       `json:"enchantGroup2,omitempty"`
	EnchantGroup3 string       `json:"enchantGroup3,omitempty"`
	EnchantGroup4 string       `json:"enchantGroup4,omitempty"`
	Sets          AttributeBag `json:"sets"`
	Tables        []SkillTable `json:"tables,omitempty"`
	Conditions    *Conditions  `json:"conditions,omitempty"`
	Effects       []Effect     `json:"effects,omitempty"`
}

// SkillTable is a per-level value table: <table name="#power">10 20 30</table>.
type SkillTable struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Conditions is the <conditions> block. Leaf values are kept as written.
type Conditions struct {
	MsgID   string           `json:"msgId,omitempty"`
	AddName string           `json:"addName,omitempty"`
	Using   *UsingCondition  `json:"using,omitempty"`
	And     *AndCondition    `json:"and,omitempty"`
	Target  *TargetCondition `json:"target,omitempty"`
	Player  *PlayerCondition `json:"player,omitempty"`
}

// UsingCondition requires an equipped item kind (<using kind="Bow"/>).
type UsingCondition struct {
	Kind string `json:"kind"`
}

// AndCondition groups conditions that must all hold.
type AndCondition struct {
	Using  *UsingCondition  `json:"using,omitempty"`
	Target *TargetCondition `json:"target,omitempty"`
	Player *PlayerCondition `json:"player,omitempty"`
}

// TargetCondition constrains the skill target.
type TargetCondition struct {
	Race        string `json:"race,omitempty"`
	MinDistance string `json:"mindistance,omitempty"`
	Abnormal    string `json:"abnormal,omitempty"`
}

// PlayerCondition constrains the caster.
type PlayerCondition struct {
	HP      string `json:"hp,omitempty"`
	Charges string `json:"charges,omitempty"`
	InvSize string `json:"invSize,omitempty"`
	Weight  string `json:"weight,omitempty"`
}

// Effect is one <effect name="..."> with its stat modifiers and params.
type Effect struct {
	Name   string         `json:"name"`
	Params []EffectParam  `json:"params,omitempty"`
	Mul    []StatModifier `json:"mul,omitempty"`
	Add    []StatModifier `json:"add,omitempty"`
	Sub    []StatModifier `json:"sub,omitempty"`
	Set    []StatModifier `json:"set,omitempty"`
}

// StatModifier is <mul|add|sub|set stat="pAtk" val="1.1"/>.
type StatModifier struct {
	Stat string `json:"stat"`
	Val  string `json:"val"`
}

// EffectParam is <param .../>; every attribute is optional.
type EffectParam struct {
	Stat   string `json:"stat,omitempty"`
	Val    string `json:"val,omitempty"`
	Power  string `json:"power,omitempty"`
	Time   string `json:"time,omitempty"`
	Chance string `json:"chance,omitempty"`
}

// NewSkill returns the record the editor creates for "new skill".
func NewSkill(id int32) *Skill {
	return &Skill{
		ID:     id,
		Name:   "New Skill",
		Levels: 1,
	}
}

func (s *Skill) DefinitionID() int32 { return s.ID }

func (s *Skill) searchFields() []string {
	return []string{s.Name}
}

// SetValue returns the first <set> value with the given name.
func (s *Skill) SetValue(name string) (string, bool) {
	return s.Sets.Get(name)
}

// Table returns the first table with the given name.
func (s *Skill) Table(name string) (SkillTable, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return SkillTable{}, false
}

// Clone returns a deep copy of the skill.
func (s *Skill) Clone() *Skill {
	c := *s
	c.Sets = s.Sets.clone()
	if s.Tables != nil {
		c.Tables = make([]SkillTable, len(s.Tables))
		for i, t := range s.Tables {
			c.Tables[i] = SkillTable{Name: t.Name, Values: cloneSlice(t.Values)}
		}
	}
	c.Conditions = s.Conditions.clone()
	if s.Effects != nil {
		c.Effects = make([]Effect, len(s.Effects))
		for i, e := range s.Effects {
			c.Effects[i] = Effect{
				Name:   e.Name,
				Params: cloneSlice(e.Params),
				Mul:    cloneSlice(e.Mul),
				Add:    cloneSlice(e.Add),
				Sub:    cloneSlice(e.Sub),
				Set:    cloneSlice(e.Set),
			}
		}
	}
	return &c
}

func (s *Skill) String() string {
	return fmt.Sprintf("%d - %s (%d levels)", s.ID, s.Name, s.Levels)
}

func (c *Conditions) clone() *Conditions {
	if c == nil {
		return nil
	}
	out := &Conditions{MsgID: c.MsgID, AddName: c.AddName}
	out.Using = clonePtr(c.Using)
	out.Target = clonePtr(c.Target)
	out.Player = clonePtr(c.Player)
	if c.And != nil {
		out.And = &AndCondition{
			Using:  clonePtr(c.And.Using),
			Target: clonePtr(c.And.Target),
			Player: clonePtr(c.And.Player),
		}
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
