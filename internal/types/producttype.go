package types

import (
	"slices"

	ierr "github.com/patabima/patabima/internal/errors"
)

// ProductType identifies an insurance product line
type ProductType string

const (
	ProductTypeMedical          ProductType = "medical"
	ProductTypeWIBA             ProductType = "wiba"
	ProductTypeMotor            ProductType = "motor"
	ProductTypeTravel           ProductType = "travel"
	ProductTypePersonalAccident ProductType = "personal_accident"
	ProductTypeLastExpense      ProductType = "last_expense"
)

// ProductTypes lists every product line. A pricing configuration must
// carry a rule set for each of these.
var ProductTypes = []ProductType{
	ProductTypeMedical,
	ProductTypeWIBA,
	ProductTypeMotor,
	ProductTypeTravel,
	ProductTypePersonalAccident,
	ProductTypeLastExpense,
}

func (p ProductType) String() string {
	return string(p)
}

func (p ProductType) Validate() error {
	if !slices.Contains(ProductTypes, p) {
		return ierr.NewError("invalid product type").
			WithHintf("Product type must be one of %v", ProductTypes).
			Mark(ierr.ErrValidation)
	}
	return nil
}
