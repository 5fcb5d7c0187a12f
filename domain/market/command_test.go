package market

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/x-xyz/gomarket/base/ptr"
	"github.com/x-xyz/gomarket/domain"
)

func TestCommandValidate(t *testing.T) {
	cases := []struct {
		desc string
		cmd  Command
		ok   bool
	}{
		{"view", Command{Op: OpView}, true},
		{"expired", Command{Op: OpExpired}, true},
		{"add default amount", Command{Op: OpAdd, Price: ptr.DecimalFromInt(10)}, true},
		{"add zero amount passes validation", Command{Op: OpAdd, Price: ptr.DecimalFromInt(10), Amount: ptr.Int(0)}, true},
		{"add full stack", Command{Op: OpAdd, Price: ptr.DecimalFromInt(10), Amount: ptr.Int(64)}, true},
		{"add too many", Command{Op: OpAdd, Price: ptr.DecimalFromInt(10), Amount: ptr.Int(65)}, false},
		{"add negative amount", Command{Op: OpAdd, Price: ptr.DecimalFromInt(10), Amount: ptr.Int(-1)}, false},
		{"add without price", Command{Op: OpAdd}, false},
		{"add negative price", Command{Op: OpAdd, Price: ptr.DecimalFromInt(-1)}, false},
		{"view with args", Command{Op: OpView, Price: ptr.DecimalFromInt(10)}, false},
		{"unknown op", Command{Op: "sell"}, false},
	}
	for _, c := range cases {
		err := c.cmd.Validate()
		if c.ok {
			assert.NoError(t, err, c.desc)
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrBadParamInput), c.desc)
	}
}

func TestAmountOrDefault(t *testing.T) {
	assert.Equal(t, 1, Command{Op: OpAdd}.AmountOrDefault())
	assert.Equal(t, 5, Command{Op: OpAdd, Amount: ptr.Int(5)}.AmountOrDefault())
}
