// Package annotation layers the four market lines onto an item's lore and
// takes them off again without touching any other metadata.
package annotation

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/gomarket/domain/item"
)

// BlockSize is the number of lore lines owned by an annotation
const BlockSize = 4

// ErrNotAnnotated is the panic value of Strip on an item without a block
var ErrNotAnnotated = errors.New("item carries no market annotation")

// Annotate returns a copy of it with lines appended to its lore. A block left
// by a previous Annotate is replaced, never stacked.
func Annotate(it item.Item, lines [BlockSize]string) item.Item {
	res := it.Clone()
	if IsAnnotated(res) {
		res = strip(res)
	}
	if res.Meta == nil {
		res.Meta = &item.Meta{}
	}
	if res.Meta.Display == nil {
		res.Meta.Display = &item.Display{}
	}
	d := res.Meta.Display
	d.Lore = append(d.Lore, lines[:]...)
	d.Block = BlockSize
	return res
}

// IsAnnotated reports whether it carries a block written by Annotate
func IsAnnotated(it item.Item) bool {
	if it.Meta == nil || it.Meta.Display == nil {
		return false
	}
	d := it.Meta.Display
	return d.Block == BlockSize && len(d.Lore) >= BlockSize
}

// Strip returns a copy of it without its annotation block, in canonical
// form. It panics with ErrNotAnnotated if there is no block to remove.
func Strip(it item.Item) item.Item {
	if !IsAnnotated(it) {
		panic(ErrNotAnnotated)
	}
	return strip(it.Clone())
}

// strip works in place on an annotated clone
func strip(it item.Item) item.Item {
	d := it.Meta.Display
	d.Lore = d.Lore[:len(d.Lore)-BlockSize]
	d.Block = 0
	return Canonical(it)
}

// Canonical drops empty lore, display and meta so that "no metadata" has a
// single representation. It works in place and returns it.
func Canonical(it item.Item) item.Item {
	if it.Meta == nil {
		return it
	}
	if d := it.Meta.Display; d != nil && len(d.Lore) == 0 {
		d.Lore = nil
	}
	if it.Meta.Display.IsEmpty() {
		it.Meta.Display = nil
	}
	if len(it.Meta.Attributes) == 0 {
		it.Meta.Attributes = nil
	}
	if it.Meta.IsEmpty() {
		it.Meta = nil
	}
	return it
}

// FormatRemaining renders d as "Xd Xh Xm Xs", truncated to whole seconds
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%dd %dh %dm %ds", secs/86400, secs/3600%24, secs/60%60, secs%60)
}

// ListingLines builds the block shown on a listed item
func ListingLines(price decimal.Decimal, seller string, remaining time.Duration) [BlockSize]string {
	expiry := "Expired"
	if remaining > 0 {
		expiry = "Expires in: " + FormatRemaining(remaining)
	}
	return [BlockSize]string{
		"",
		"Price: " + price.String(),
		"Seller: " + seller,
		expiry,
	}
}
