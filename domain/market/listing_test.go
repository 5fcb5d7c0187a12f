package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/x-xyz/gomarket/domain"
)

func TestFindAllOptionsMatch(t *testing.T) {
	now := time.Now()
	l := &Listing{SellerId: "alice", Expiry: now}

	opts, err := GetFindAllOptions(WithSeller("alice"), WithExpiredAt(now))
	assert.NoError(t, err)
	assert.True(t, opts.Match(l))

	opts, _ = GetFindAllOptions(WithActiveAt(now))
	assert.False(t, opts.Match(l), "a listing expiring exactly now is no longer active")

	opts, _ = GetFindAllOptions(WithSeller("bob"))
	assert.False(t, opts.Match(l))

	_, err = GetFindAllOptions(WithPagination(-1, 10))
	assert.Equal(t, domain.ErrBadParamInput, err)
}

func TestListingActive(t *testing.T) {
	now := time.Now()
	l := &Listing{Expiry: now.Add(time.Second)}
	assert.True(t, l.IsActive(now))
	assert.False(t, l.IsActive(now.Add(time.Second)))
	assert.Equal(t, time.Second, l.Remaining(now))
}
