// Package item models the traded good. Only the display description is
// interpreted; Payload is an opaque serialized blob that is passed through.
package item

import (
	"bytes"
	"reflect"
)

const (
	// Air is the empty hand sentinel
	Air = "minecraft:air"
	// MaxStack is the largest count a single slot holds
	MaxStack = 64
)

// Display is the description sub-structure shown to players
type Display struct {
	Name string   `json:"name,omitempty" bson:"name,omitempty"`
	Lore []string `json:"lore,omitempty" bson:"lore,omitempty"`
	// Block is the number of trailing lore lines owned by the annotation codec
	Block int `json:"block,omitempty" bson:"block,omitempty"`
}

func (d *Display) IsEmpty() bool {
	return d == nil || (d.Name == "" && len(d.Lore) == 0 && d.Block == 0)
}

// Meta is the item's metadata structure
type Meta struct {
	Display    *Display          `json:"display,omitempty" bson:"display,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" bson:"attributes,omitempty"`
}

func (m *Meta) IsEmpty() bool {
	return m == nil || (m.Display == nil && len(m.Attributes) == 0)
}

type Item struct {
	Type    string `json:"type" bson:"type"`
	Count   int    `json:"count" bson:"count"`
	Payload []byte `json:"payload,omitempty" bson:"payload,omitempty"`
	Meta    *Meta  `json:"meta,omitempty" bson:"meta,omitempty"`
}

// New returns count units of typ without metadata
func New(typ string, count int) Item {
	return Item{Type: typ, Count: count}
}

// Empty returns the empty hand
func Empty() Item {
	return Item{Type: Air}
}

// IsNothing reports whether the item is the empty hand sentinel
func (i Item) IsNothing() bool {
	return i.Type == "" || i.Type == Air || i.Count <= 0
}

// TranslationKey is the key clients use to localize the item name
func (i Item) TranslationKey() string {
	return i.Type
}

// Clone deep copies the item, nil and empty containers are preserved as they are
func (i Item) Clone() Item {
	res := i
	if i.Payload != nil {
		res.Payload = append([]byte{}, i.Payload...)
	}
	if i.Meta != nil {
		m := &Meta{}
		if i.Meta.Display != nil {
			d := *i.Meta.Display
			if i.Meta.Display.Lore != nil {
				d.Lore = append([]string{}, i.Meta.Display.Lore...)
			}
			m.Display = &d
		}
		if i.Meta.Attributes != nil {
			m.Attributes = make(map[string]string, len(i.Meta.Attributes))
			for k, v := range i.Meta.Attributes {
				m.Attributes[k] = v
			}
		}
		res.Meta = m
	}
	return res
}

// StacksWith reports whether both items merge into one slot
func (i Item) StacksWith(o Item) bool {
	if i.Type != o.Type || !bytes.Equal(i.Payload, o.Payload) {
		return false
	}
	if i.Meta.IsEmpty() && o.Meta.IsEmpty() {
		return true
	}
	return reflect.DeepEqual(i.Meta, o.Meta)
}
