package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Límites de los importes persistidos: NUMERIC(14, 2) en PostgreSQL.
const (
	MoneyScale            = 2
	MoneyMaxIntegerDigits = 12
)

var moneyUpperBound = decimal.New(1, MoneyMaxIntegerDigits)

// ValidatePrice exige un importe positivo con a lo sumo MoneyScale decimales y menos de
// MoneyMaxIntegerDigits dígitos enteros, para que se guarde sin redondeo.
func ValidatePrice(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return InvalidInputf("%s debe ser mayor que cero", field)
	}
	if !v.Equal(v.Round(MoneyScale)) {
		return InvalidInputf("%s admite como máximo %d decimales", field, MoneyScale)
	}
	if v.GreaterThanOrEqual(moneyUpperBound) {
		return InvalidInputf("%s excede el máximo permitido", field)
	}
	return nil
}

// AddQuantity suma dos cantidades no negativas y falla si el resultado no cabe en int64.
func AddQuantity(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, InvalidInputf("la cantidad excede el máximo permitido")
	}
	return a + b, nil
}
