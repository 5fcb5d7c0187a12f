package repository

import (
	"github.com/google/uuid"

	"github.com/x-xyz/gomarket/domain/account"
	"github.com/x-xyz/gomarket/domain/item"
)

// takeFromHand removes amount units from p's main hand in place
func takeFromHand(p *account.Player, amount int) (item.Item, error) {
	inv, taken, ok := p.Inventory.Take(p.Hand, amount)
	if !ok {
		return item.Empty(), account.ErrNotEnoughInHand
	}
	p.Inventory = inv
	return taken, nil
}

// give stores it into p's inventory in place, false if it does not fit
func give(p *account.Player, it item.Item) bool {
	inv, ok := p.Inventory.Put(it)
	if !ok {
		return false
	}
	p.Inventory = inv
	return true
}

func newDropId() string {
	return uuid.New().String()
}
