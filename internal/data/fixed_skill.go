package data

import "fmt"

// FixedSkill is the fixed-schema skill record: one element per skill level,
// every property a plain attribute. It is a separate document kind from Skill
// and the two are never mixed in one repository.
type FixedSkill struct {
	ID            int32  `json:"id"`
	Level         int32  `json:"level"`
	Name          string `json:"name"`
	OperateType   string `json:"operateType"`
	MagicLevel    int32  `json:"magicLevel"`
	MpConsume     int32  `json:"mpConsume"`
	HpConsume     int32  `json:"hpConsume"`
	ItemConsume   int32  `json:"itemConsume"`
	CastRange     int32  `json:"castRange"`
	EffectRange   int32  `json:"effectRange"`
	SkillTime     int32  `json:"skillTime"`
	ReuseDelay    int32  `json:"reuseDelay"` // ms
	Attribute     string `json:"attribute"`
	Target        string `json:"target"`
	SkillType     string `json:"skillType"`
	MagicCritical bool   `json:"magicCritical"`
}

// Defaults for a freshly created FixedSkill.
const (
	DefaultOperateType = "OP_ACTIVE"
	DefaultMpConsume   = 10
	DefaultCastRange   = 400
	DefaultEffectRange = 900
	DefaultSkillTime   = 10
	DefaultReuseDelay  = 5000
	DefaultTarget      = "target_one"
	DefaultSkillType   = "BUFF"
)

// NewFixedSkill returns a level-1 skill with the editor defaults applied.
func NewFixedSkill(id int32, name string) *FixedSkill {
	return &FixedSkill{
		ID:          id,
		Level:       1,
		Name:        name,
		OperateType: DefaultOperateType,
		MpConsume:   DefaultMpConsume,
		CastRange:   DefaultCastRange,
		EffectRange: DefaultEffectRange,
		SkillTime:   DefaultSkillTime,
		ReuseDelay:  DefaultReuseDelay,
		Target:      DefaultTarget,
		SkillType:   DefaultSkillType,
	}
}

func (s *FixedSkill) DefinitionID() int32 { return s.ID }

func (s *FixedSkill) searchFields() []string {
	return []string{s.Name}
}

// Clone returns a copy of the skill.
func (s *FixedSkill) Clone() *FixedSkill {
	c := *s
	return &c
}

func (s *FixedSkill) String() string {
	return fmt.Sprintf("%d - %s (level %d)", s.ID, s.Name, s.Level)
}
