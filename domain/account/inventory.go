package account

import (
	"github.com/x-xyz/gomarket/domain/item"
)

// DefaultInventorySize is the number of slots of a player inventory
const DefaultInventorySize = 36

// Inventory is a fixed list of slots, empty slots hold the empty hand
type Inventory []item.Item

func NewInventory(size int) Inventory {
	inv := make(Inventory, size)
	for i := range inv {
		inv[i] = item.Empty()
	}
	return inv
}

func (inv Inventory) Clone() Inventory {
	res := make(Inventory, len(inv))
	for i := range inv {
		res[i] = inv[i].Clone()
	}
	return res
}

// Put returns a new inventory holding it, merged into matching stacks first
// and then into empty slots. ok is false, and inv untouched, when it does
// not fit entirely.
func (inv Inventory) Put(it item.Item) (Inventory, bool) {
	if it.IsNothing() {
		return inv, true
	}
	res := inv.Clone()
	left := it.Count
	for i := range res {
		if left == 0 {
			break
		}
		if res[i].IsNothing() || !res[i].StacksWith(it) || res[i].Count >= item.MaxStack {
			continue
		}
		n := min(left, item.MaxStack-res[i].Count)
		res[i].Count += n
		left -= n
	}
	for i := range res {
		if left == 0 {
			break
		}
		if !res[i].IsNothing() {
			continue
		}
		n := min(left, item.MaxStack)
		res[i] = it.Clone()
		res[i].Count = n
		left -= n
	}
	if left > 0 {
		return inv, false
	}
	return res, true
}

// Take returns a new inventory with amount units removed from slot, and the
// removed units as one stack
func (inv Inventory) Take(slot, amount int) (Inventory, item.Item, bool) {
	if slot < 0 || slot >= len(inv) || amount <= 0 || inv[slot].IsNothing() || inv[slot].Count < amount {
		return inv, item.Empty(), false
	}
	res := inv.Clone()
	taken := res[slot].Clone()
	taken.Count = amount
	res[slot].Count -= amount
	if res[slot].Count == 0 {
		res[slot] = item.Empty()
	}
	return res, taken, true
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
