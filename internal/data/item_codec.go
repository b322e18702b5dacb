package data

import (
	"fmt"
	"strings"
)

// --- XML structures (items) ---

type xmlItemList struct {
	Items []xmlItem `xml:"item"`
}

type xmlItem struct {
	ID     *string        `xml:"id,attr"`
	Type   string         `xml:"type,attr"`
	Name   string         `xml:"name,attr"`
	Sets   []xmlSet       `xml:"set"`
	Stats  *xmlItemStats  `xml:"stats"`
	Skills *xmlItemSkills `xml:"skills"`
}

type xmlItemStats struct {
	Stats []xmlItemStat `xml:"stat"`
}

type xmlItemStat struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type xmlItemSkills struct {
	Skills []xmlItemSkill `xml:"skill"`
}

type xmlItemSkill struct {
	ID    string `xml:"id,attr"`
	Level string `xml:"level,attr"`
}

// ItemCodec reads and writes items/*.xml documents.
type ItemCodec struct{}

func (ItemCodec) Decode(raw []byte) ([]*Item, error) {
	var list xmlItemList
	if err := decodeDocument(raw, &list); err != nil {
		return nil, err
	}

	result := make([]*Item, 0, len(list.Items))
	for i, xi := range list.Items {
		it, err := convertItem(i, xi)
		if err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	return result, nil
}

func convertItem(index int, xi xmlItem) (*Item, error) {
	p := fieldParser{element: "item", index: index}
	it := &Item{
		ID:   p.int32("id", p.required("id", xi.ID)),
		Type: xi.Type,
		Name: xi.Name,
		Sets: decodeSets(xi.Sets),
	}
	if err := p.result(); err != nil {
		return nil, err
	}

	if xi.Stats != nil {
		for _, s := range xi.Stats.Stats {
			it.Stats = append(it.Stats, ItemStat{Type: s.Type, Value: statValue(s.Value)})
		}
	}

	if xi.Skills != nil {
		for j, s := range xi.Skills.Skills {
			sp := fieldParser{element: fmt.Sprintf("item[%d]/skills/skill", index), index: j}
			sk := ItemSkill{
				SkillID: sp.int32("id", s.ID),
				Level:   sp.int32("level", s.Level),
			}
			if err := sp.result(); err != nil {
				return nil, err
			}
			it.Skills = append(it.Skills, sk)
		}
	}

	return it, nil
}

// statValue keeps stat text as written unless it is wrapped over several lines.
func statValue(raw string) string {
	if strings.ContainsAny(raw, "\r\n") {
		return strings.TrimSpace(raw)
	}
	return raw
}

func (ItemCodec) Encode(items []*Item) []byte {
	w := newDocWriter("list")
	for _, it := range items {
		writeItem(w, it)
	}
	return w.finish("list")
}

func writeItem(w *docWriter, it *Item) {
	var attrs attrList
	attrs.int("id", int64(it.ID))
	attrs.opt("type", it.Type)
	attrs.str("name", it.Name)

	if it.Sets.Len() == 0 && len(it.Stats) == 0 && len(it.Skills) == 0 {
		w.empty("item", attrs)
		return
	}

	w.open("item", attrs)
	writeSets(w, &it.Sets)

	if len(it.Stats) > 0 {
		w.open("stats", nil)
		for _, s := range it.Stats {
			var sa attrList
			sa.str("type", s.Type)
			w.text("stat", sa, s.Value)
		}
		w.close("stats")
	}

	if len(it.Skills) > 0 {
		w.open("skills", nil)
		for _, s := range it.Skills {
			var sa attrList
			sa.int("id", int64(s.SkillID))
			sa.int("level", int64(s.Level))
			w.empty("skill", sa)
		}
		w.close("skills")
	}

	w.close("item")
}

func writeSets(w *docWriter, bag *AttributeBag) {
	for _, a := range bag.attrs {
		var sa attrList
		sa.str("name", a.Name)
		sa.str("val", a.Value)
		w.empty("set", sa)
	}
}
