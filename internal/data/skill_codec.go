package data

import "strings"

// --- XML structures (skills) ---

type xmlSkillList struct {
	Skills []xmlSkill `xml:"skill"`
}

type xmlSkill struct {
	ID            *string          `xml:"id,attr"`
	Levels        string           `xml:"levels,attr"`
	Name          string           `xml:"name,attr"`
	EnchantGroup1 string           `xml:"enchantGroup1,attr"`
	EnchantGroup2 string           `xml:"enchantGroup2,attr"`
	EnchantGroup3 string           `xml:"enchantGroup3,attr"`
	EnchantGroup4 string           `xml:"enchantGroup4,attr"`
	Sets          []xmlSet         `xml:"set"`
	Tables        []xmlSkillTable  `xml:"table"`
	Conditions    *xmlSkillConds   `xml:"conditions"`
	Effects       *xmlSkillEffects `xml:"effects"`
}

type xmlSkillTable struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlSkillConds struct {
	MsgID   string         `xml:"msgId,attr"`
	AddName string         `xml:"addName,attr"`
	Using   *xmlCondUsing  `xml:"using"`
	And     *xmlCondAnd    `xml:"and"`
	Target  *xmlCondTarget `xml:"target"`
	Player  *xmlCondPlayer `xml:"player"`
}

type xmlCondAnd struct {
	Using  *xmlCondUsing  `xml:"using"`
	Target *xmlCondTarget `xml:"target"`
	Player *xmlCondPlayer `xml:"player"`
}

type xmlCondUsing struct {
	Kind string `xml:"kind,attr"`
}

type xmlCondTarget struct {
	Race        string `xml:"race,attr"`
	MinDistance string `xml:"mindistance,attr"`
	Abnormal    string `xml:"abnormal,attr"`
}

type xmlCondPlayer struct {
	HP      string `xml:"hp,attr"`
	Charges string `xml:"Charges,attr"`
	InvSize string `xml:"invSize,attr"`
	Weight  string `xml:"weight,attr"`
}

type xmlSkillEffects struct {
	Effects []xmlSkillEffect `xml:"effect"`
}

type xmlSkillEffect struct {
	Name   string            `xml:"name,attr"`
	Params []xmlEffectParam  `xml:"param"`
	Muls   []xmlSkillStatMod `xml:"mul"`
	Adds   []xmlSkillStatMod `xml:"add"`
	Subs   []xmlSkillStatMod `xml:"sub"`
	Sets   []xmlSkillStatMod `xml:"set"`
}

type xmlSkillStatMod struct {
	Stat string `xml:"stat,attr"`
	Val  string `xml:"val,attr"`
}

type xmlEffectParam struct {
	Stat   string `xml:"stat,attr"`
	Val    string `xml:"val,attr"`
	Power  string `xml:"power,attr"`
	Time   string `xml:"time,attr"`
	Chance string `xml:"chance,attr"`
}

// SkillCodec reads and writes the extensible skills/*.xml documents.
type SkillCodec struct{}

func (SkillCodec) Decode(raw []byte) ([]*Skill, error) {
	var list xmlSkillList
	if err := decodeDocument(raw, &list); err != nil {
		return nil, err
	}

	result := make([]*Skill, 0, len(list.Skills))
	for i, xs := range list.Skills {
		s, err := convertSkill(i, xs)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

func convertSkill(index int, xs xmlSkill) (*Skill, error) {
	p := fieldParser{element: "skill", index: index}
	s := &Skill{
		ID:            p.int32("id", p.required("id", xs.ID)),
		Levels:        p.int32("levels", xs.Levels),
		Name:          xs.Name,
		EnchantGroup1: xs.EnchantGroup1,
		EnchantGroup2: xs.EnchantGroup2,
		EnchantGroup3: xs.EnchantGroup3,
		EnchantGroup4: xs.EnchantGroup4,
		Sets:          decodeSets(xs.Sets),
	}
	if err := p.result(); err != nil {
		return nil, err
	}

	for _, t := range xs.Tables {
		// Values are separated by single spaces on save, but real files
		// wrap long tables over several lines.
		vals := strings.Fields(t.Value)
		if len(vals) == 0 {
			vals = nil
		}
		s.Tables = append(s.Tables, SkillTable{Name: t.Name, Values: vals})
	}

	if xs.Conditions != nil {
		s.Conditions = convertConditions(xs.Conditions)
	}

	if xs.Effects != nil {
		for _, xe := range xs.Effects.Effects {
			s.Effects = append(s.Effects, convertEffect(xe))
		}
	}

	return s, nil
}

func convertConditions(xc *xmlSkillConds) *Conditions {
	c := &Conditions{
		MsgID:   xc.MsgID,
		AddName: xc.AddName,
		Using:   convertUsing(xc.Using),
		Target:  convertTarget(xc.Target),
		Player:  convertPlayer(xc.Player),
	}
	if xc.And != nil {
		c.And = &AndCondition{
			Using:  convertUsing(xc.And.Using),
			Target: convertTarget(xc.And.Target),
			Player: convertPlayer(xc.And.Player),
		}
	}
	return c
}

func convertUsing(x *xmlCondUsing) *UsingCondition {
	if x == nil {
		return nil
	}
	return &UsingCondition{Kind: x.Kind}
}

func convertTarget(x *xmlCondTarget) *TargetCondition {
	if x == nil {
		return nil
	}
	return &TargetCondition{Race: x.Race, MinDistance: x.MinDistance, Abnormal: x.Abnormal}
}

func convertPlayer(x *xmlCondPlayer) *PlayerCondition {
	if x == nil {
		return nil
	}
	return &PlayerCondition{HP: x.HP, Charges: x.Charges, InvSize: x.InvSize, Weight: x.Weight}
}

func convertEffect(xe xmlSkillEffect) Effect {
	e := Effect{Name: xe.Name}
	for _, xp := range xe.Params {
		e.Params = append(e.Params, EffectParam{
			Stat:   xp.Stat,
			Val:    xp.Val,
			Power:  xp.Power,
			Time:   xp.Time,
			Chance: xp.Chance,
		})
	}
	e.Mul = convertStatMods(xe.Muls)
	e.Add = convertStatMods(xe.Adds)
	e.Sub = convertStatMods(xe.Subs)
	e.Set = convertStatMods(xe.Sets)
	return e
}

func convertStatMods(mods []xmlSkillStatMod) []StatModifier {
	if len(mods) == 0 {
		return nil
	}
	result := make([]StatModifier, 0, len(mods))
	for _, m := range mods {
		result = append(result, StatModifier{Stat: m.Stat, Val: m.Val})
	}
	return result
}

func (SkillCodec) Encode(skills []*Skill) []byte {
	w := newDocWriter("list")
	for _, s := range skills {
		writeSkill(w, s)
	}
	return w.finish("list")
}

func writeSkill(w *docWriter, s *Skill) {
	var attrs attrList
	attrs.int("id", int64(s.ID))
	attrs.int("levels", int64(s.Levels))
	attrs.str("name", s.Name)
	attrs.opt("enchantGroup1", s.EnchantGroup1)
	attrs.opt("enchantGroup2", s.EnchantGroup2)
	attrs.opt("enchantGroup3", s.EnchantGroup3)
	attrs.opt("enchantGroup4", s.EnchantGroup4)

	if s.Sets.Len() == 0 && len(s.Tables) == 0 && s.Conditions == nil && len(s.Effects) == 0 {
		w.empty("skill", attrs)
		return
	}

	w.open("skill", attrs)

	for _, t := range s.Tables {
		var ta attrList
		ta.str("name", t.Name)
		w.text("table", ta, strings.Join(t.Values, " "))
	}
	writeSets(w, &s.Sets)

	if s.Conditions != nil {
		writeConditions(w, s.Conditions)
	}

	if len(s.Effects) > 0 {
		w.open("effects", nil)
		for _, e := range s.Effects {
			writeEffect(w, e)
		}
		w.close("effects")
	}

	w.close("skill")
}

func writeConditions(w *docWriter, c *Conditions) {
	var attrs attrList
	attrs.opt("msgId", c.MsgID)
	attrs.opt("addName", c.AddName)

	if c.Using == nil && c.And == nil && c.Target == nil && c.Player == nil {
		w.empty("conditions", attrs)
		return
	}

	w.open("conditions", attrs)
	writeUsing(w, c.Using)
	if c.And != nil {
		w.open("and", nil)
		writeUsing(w, c.And.Using)
		writeTarget(w, c.And.Target)
		writePlayer(w, c.And.Player)
		w.close("and")
	}
	writeTarget(w, c.Target)
	writePlayer(w, c.Player)
	w.close("conditions")
}

func writeUsing(w *docWriter, u *UsingCondition) {
	if u == nil {
		return
	}
	var attrs attrList
	attrs.str("kind", u.Kind)
	w.empty("using", attrs)
}

func writeTarget(w *docWriter, t *TargetCondition) {
	if t == nil {
		return
	}
	var attrs attrList
	attrs.opt("race", t.Race)
	attrs.opt("mindistance", t.MinDistance)
	attrs.opt("abnormal", t.Abnormal)
	w.empty("target", attrs)
}

func writePlayer(w *docWriter, p *PlayerCondition) {
	if p == nil {
		return
	}
	var attrs attrList
	attrs.opt("hp", p.HP)
	attrs.opt("Charges", p.Charges)
	attrs.opt("invSize", p.InvSize)
	attrs.opt("weight", p.Weight)
	w.empty("player", attrs)
}

func writeEffect(w *docWriter, e Effect) {
	var attrs attrList
	attrs.str("name", e.Name)

	if len(e.Params) == 0 && len(e.Mul) == 0 && len(e.Add) == 0 && len(e.Sub) == 0 && len(e.Set) == 0 {
		w.empty("effect", attrs)
		return
	}

	w.open("effect", attrs)
	for _, p := range e.Params {
		var pa attrList
		pa.opt("stat", p.Stat)
		pa.opt("val", p.Val)
		pa.opt("power", p.Power)
		pa.opt("time", p.Time)
		pa.opt("chance", p.Chance)
		w.empty("param", pa)
	}
	writeStatMods(w, "mul", e.Mul)
	writeStatMods(w, "add", e.Add)
	writeStatMods(w, "sub", e.Sub)
	writeStatMods(w, "set", e.Set)
	w.close("effect")
}

func writeStatMods(w *docWriter, op string, mods []StatModifier) {
	for _, m := range mods {
		var attrs attrList
		attrs.str("stat", m.Stat)
		attrs.str("val", m.Val)
		w.empty(op, attrs)
	}
}
