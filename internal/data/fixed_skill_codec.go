package data

// --- XML structures (fixed-schema skills) ---

type xmlFixedSkillList struct {
	Skills []xmlFixedSkill `xml:"skill"`
}

type xmlFixedSkill struct {
	ID            *string `xml:"id,attr"`
	Level         string  `xml:"level,attr"`
	Name          string  `xml:"name,attr"`
	OperateType   string  `xml:"operateType,attr"`
	MagicLevel    string  `xml:"magicLevel,attr"`
	MpConsume     string  `xml:"mpConsume,attr"`
	HpConsume     string  `xml:"hpConsume,attr"`
	ItemConsume   string  `xml:"itemConsume,attr"`
	CastRange     string  `xml:"castRange,attr"`
	EffectRange   string  `xml:"effectRange,attr"`
	SkillTime     string  `xml:"skillTime,attr"`
	ReuseDelay    string  `xml:"reuseDelay,attr"`
	Attribute     string  `xml:"attribute,attr"`
	Target        string  `xml:"target,attr"`
	SkillType     string  `xml:"skillType,attr"`
	MagicCritical string  `xml:"magicCritical,attr"`
}

// FixedSkillCodec reads and writes fixed-schema skill documents, where every
// property of a skill level is an attribute of its <skill> element.
// Attributes missing from the document decode as zero values, not as the
// NewFixedSkill defaults.
type FixedSkillCodec struct{}

func (FixedSkillCodec) Decode(raw []byte) ([]*FixedSkill, error) {
	var list xmlFixedSkillList
	if err := decodeDocument(raw, &list); err != nil {
		return nil, err
	}

	result := make([]*FixedSkill, 0, len(list.Skills))
	for i, xs := range list.Skills {
		p := fieldParser{element: "skill", index: i}
		s := &FixedSkill{
			ID:            p.int32("id", p.required("id", xs.ID)),
			Level:         p.int32("level", xs.Level),
			Name:          xs.Name,
			OperateType:   xs.OperateType,
			MagicLevel:    p.int32("magicLevel", xs.MagicLevel),
			MpConsume:     p.int32("mpConsume", xs.MpConsume),
			HpConsume:     p.int32("hpConsume", xs.HpConsume),
			ItemConsume:   p.int32("itemConsume", xs.ItemConsume),
			CastRange:     p.int32("castRange", xs.CastRange),
			EffectRange:   p.int32("effectRange", xs.EffectRange),
			SkillTime:     p.int32("skillTime", xs.SkillTime),
			ReuseDelay:    p.int32("reuseDelay", xs.ReuseDelay),
			Attribute:     xs.Attribute,
			Target:        xs.Target,
			SkillType:     xs.SkillType,
			MagicCritical: p.bool("magicCritical", xs.MagicCritical),
		}
		if err := p.result(); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

func (FixedSkillCodec) Encode(skills []*FixedSkill) []byte {
	w := newDocWriter("list")
	for _, s := range skills {
		var attrs attrList
		attrs.int("id", int64(s.ID))
		attrs.int("level", int64(s.Level))
		attrs.str("name", s.Name)
		attrs.opt("operateType", s.OperateType)
		attrs.int("magicLevel", int64(s.MagicLevel))
		attrs.int("mpConsume", int64(s.MpConsume))
		attrs.int("hpConsume", int64(s.HpConsume))
		attrs.int("itemConsume", int64(s.ItemConsume))
		attrs.int("castRange", int64(s.CastRange))
		attrs.int("effectRange", int64(s.EffectRange))
		attrs.int("skillTime", int64(s.SkillTime))
		attrs.int("reuseDelay", int64(s.ReuseDelay))
		attrs.opt("attribute", s.Attribute)
		attrs.opt("target", s.Target)
		attrs.opt("skillType", s.SkillType)
		attrs.bool("magicCritical", s.MagicCritical)
		w.empty("skill", attrs)
	}
	return w.finish("list")
}
