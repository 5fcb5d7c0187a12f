package ptr

import "github.com/shopspring/decimal"

// String return a pointer to the input value
func String(value string) *string {
	return &value
}

// Int return a pointer to the input value
func Int(value int) *int {
	return &value
}

// Decimal return a pointer to the input value
func Decimal(value decimal.Decimal) *decimal.Decimal {
	return &value
}

// DecimalFromInt return a pointer to value as a decimal
func DecimalFromInt(value int64) *decimal.Decimal {
	return Decimal(decimal.NewFromInt(value))
}
