package data

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Attr is one named value of an AttributeBag (<set name="..." val="..."/>).
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"val"`
}

// AttributeBag — упорядоченный список именованных свойств (<set> элементы).
// Имена могут повторяться: чтение возвращает первое совпадение,
// порядок вставки сохраняется для round-trip.
type AttributeBag struct {
	attrs []Attr
}

// NewAttributeBag builds a bag from pairs, keeping duplicates and order.
func NewAttributeBag(attrs ...Attr) AttributeBag {
	if len(attrs) == 0 {
		return AttributeBag{}
	}
	return AttributeBag{attrs: slices.Clone(attrs)}
}

// Get returns the value of the first attribute with the given name.
func (b *AttributeBag) Get(name string) (string, bool) {
	for _, a := range b.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Set updates the first attribute with the given name or appends a new one.
func (b *AttributeBag) Set(name, value string) {
	for i := range b.attrs {
		if b.attrs[i].Name == name {
			b.attrs[i].Value = value
			return
		}
	}
	b.attrs = append(b.attrs, Attr{Name: name, Value: value})
}

// Append always adds a new attribute, even if the name is already present.
func (b *AttributeBag) Append(name, value string) {
	b.attrs = append(b.attrs, Attr{Name: name, Value: value})
}

// Remove deletes the first attribute with the given name.
func (b *AttributeBag) Remove(name string) bool {
	for i := range b.attrs {
		if b.attrs[i].Name == name {
			b.attrs = slices.Delete(b.attrs, i, i+1)
			if len(b.attrs) == 0 {
				b.attrs = nil
			}
			return true
		}
	}
	return false
}

// Replace rebuilds the bag from editor rows. Rows with a blank name are dropped,
// every other row is appended as is, duplicates included.
func (b *AttributeBag) Replace(rows []Attr) {
	b.attrs = nil
	for _, r := range rows {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		b.Append(r.Name, r.Value)
	}
}

// All returns a copy of the attributes in insertion order.
func (b *AttributeBag) All() []Attr {
	return slices.Clone(b.attrs)
}

// Len returns the number of attributes, duplicates included.
func (b *AttributeBag) Len() int {
	return len(b.attrs)
}

func (b *AttributeBag) clone() AttributeBag {
	return AttributeBag{attrs: slices.Clone(b.attrs)}
}

// MarshalJSON encodes the bag as an ordered array of {name, val} objects.
func (b AttributeBag) MarshalJSON() ([]byte, error) {
	if b.attrs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b.attrs)
}

// UnmarshalJSON decodes the ordered array form produced by MarshalJSON.
func (b *AttributeBag) UnmarshalJSON(raw []byte) error {
	var attrs []Attr
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return fmt.Errorf("decoding attribute bag: %w", err)
	}
	b.Replace(attrs)
	return nil
}
