package kernel

import (
	"fmt"
	"strconv"

	"workorders/internal/pkg/errs"
)

// OrderID is the store-assigned identity of an order.
// Identifiers are strictly increasing in creation order and never reused;
// the zero value means "not yet persisted".
type OrderID int64

// OrderIDFromString parses a decimal order id as it appears in callback data and URLs.
func OrderIDFromString(s string) (OrderID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("order id", err)
	}
	id := OrderID(n)
	if err = id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// Validate reports whether the id refers to a persisted order.
func (id OrderID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not greater than 0", int64(id)))
	}
	return nil
}

func (id OrderID) Int64() int64 {
	return int64(id)
}

func (id OrderID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
