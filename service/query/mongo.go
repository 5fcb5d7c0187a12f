// Package query is the thin layer the repositories use to reach mongo. Every
// call is timed, slow calls are logged and, when index checking is on,
// reads that would scan a whole collection are refused.
package query

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
)

var (
	// ErrNotFound is returned when the selector matches no document
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned when an insert violates a unique index
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrCollScan is returned for an unindexed read while index checking is on
	ErrCollScan = errors.New("COLLSCAN is not allowed")
)

// Mongo abstract the mongo layer.
type Mongo interface {
	Insert(c ctx.Ctx, table domain.Table, doc interface{}) error
	// FindOne decodes the first match into result
	FindOne(c ctx.Ctx, table domain.Table, selector, result interface{}) error
	Count(c ctx.Ctx, table domain.Table, selector interface{}) (int, error)
	// Upsert replaces the matching document, inserting it if there is none
	Upsert(c ctx.Ctx, table domain.Table, selector, doc interface{}) error
	// Search sorts by sortFields ("createdAt" ascending, "-createdAt" descending).
	// limit <= 0 means no limit.
	Search(c ctx.Ctx, table domain.Table, offset, limit int, sortFields []string, selector, results interface{}) error
	// Remove deletes one matching document, ErrNotFound if there is none
	Remove(c ctx.Ctx, table domain.Table, selector interface{}) error
	// Patch $sets fields of one matching document
	Patch(c ctx.Ctx, table domain.Table, selector, fields interface{}) error
	// CustomPatch applies a raw update document to one matching document
	CustomPatch(c ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error
	// Increment $incs fields, creating the document if needed, and decodes
	// the updated document into result
	Increment(c ctx.Ctx, table domain.Table, selector interface{}, fields bson.M, result interface{}) error
	// RunWithTransaction runs fn in a mongo session transaction, the ctx handed to fn
	// must be used for every operation that belongs to it.
	RunWithTransaction(c ctx.Ctx, fn func(ctx.Ctx) error) error
}
