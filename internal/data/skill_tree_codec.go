package data

import "fmt"

// --- XML structures (skill trees) ---

type xmlTreeList struct {
	Trees []xmlSkillTree `xml:"skillTree"`
}

type xmlSkillTree struct {
	Type          string         `xml:"type,attr"`
	ClassID       *string        `xml:"classId,attr"`
	ParentClassID string         `xml:"parentClassId,attr"`
	Skills        []xmlTreeSkill `xml:"skill"`
}

type xmlTreeSkill struct {
	SkillName    string `xml:"skillName,attr"`
	SkillID      string `xml:"skillId,attr"`
	SkillLevel   string `xml:"skillLevel,attr"`
	GetLevel     string `xml:"getLevel,attr"`
	LevelUpSp    string `xml:"levelUpSp,attr"`
	LearnedByNpc string `xml:"learnedByNpc,attr"`
}

// SkillTreeCodec reads and writes skillTrees/*.xml documents.
type SkillTreeCodec struct{}

func (SkillTreeCodec) Decode(raw []byte) ([]*SkillTreeClass, error) {
	var list xmlTreeList
	if err := decodeDocument(raw, &list); err != nil {
		return nil, err
	}

	result := make([]*SkillTreeClass, 0, len(list.Trees))
	for i, xt := range list.Trees {
		p := fieldParser{element: "skillTree", index: i}
		tree := &SkillTreeClass{
			Type:          xt.Type,
			ClassID:       p.int32("classId", p.required("classId", xt.ClassID)),
			ParentClassID: p.int32("parentClassId", xt.ParentClassID),
		}
		if err := p.result(); err != nil {
			return nil, err
		}

		if len(xt.Skills) > 0 {
			tree.Entries = make([]SkillTreeEntry, 0, len(xt.Skills))
		}
		for j, xs := range xt.Skills {
			ep := fieldParser{element: fmt.Sprintf("skillTree[%d]/skill", i), index: j}
			entry := SkillTreeEntry{
				SkillName:    xs.SkillName,
				SkillID:      ep.int32("skillId", xs.SkillID),
				SkillLevel:   ep.int32("skillLevel", xs.SkillLevel),
				GetLevel:     ep.int32("getLevel", xs.GetLevel),
				LevelUpSp:    ep.int64("levelUpSp", xs.LevelUpSp),
				LearnedByNpc: ep.bool("learnedByNpc", xs.LearnedByNpc),
			}
			if err := ep.result(); err != nil {
				return nil, err
			}
			tree.Entries = append(tree.Entries, entry)
		}

		result = append(result, tree)
	}
	return result, nil
}

func (SkillTreeCodec) Encode(trees []*SkillTreeClass) []byte {
	w := newDocWriter("list")
	for _, t := range trees {
		var attrs attrList
		attrs.opt("type", t.Type)
		attrs.int("classId", int64(t.ClassID))
		if t.ParentClassID != 0 {
			attrs.int("parentClassId", int64(t.ParentClassID))
		}

		if len(t.Entries) == 0 {
			w.empty("skillTree", attrs)
			continue
		}

		w.open("skillTree", attrs)
		for _, e := range t.Entries {
			var ea attrList
			ea.str("skillName", e.SkillName)
			ea.int("skillId", int64(e.SkillID))
			ea.int("skillLevel", int64(e.SkillLevel))
			ea.int("getLevel", int64(e.GetLevel))
			ea.int("levelUpSp", e.LevelUpSp)
			ea.bool("learnedByNpc", e.LearnedByNpc)
			w.empty("skill", ea)
		}
		w.close("skillTree")
	}
	return w.finish("list")
}
