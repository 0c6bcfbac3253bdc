// Package telegram delivers notifications as Telegram bot messages and retracts them
// by deleting the message again.
package telegram

import (
	"fmt"
	"strings"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/pkg/errs"
)

// CallbackData encodes an inline button press as "<action>:<order id>".
func CallbackData(action order.Action, id kernel.OrderID) string {
	return string(action) + ":" + id.String()
}

// ParseCallbackData decodes a button press. The legacy "take" action is read as claim.
func ParseCallbackData(data string) (order.Action, kernel.OrderID, error) {
	name, rawID, ok := strings.Cut(data, ":")
	if !ok {
		return "", 0, errs.NewValueIsInvalidErrorWithCause("callback data", fmt.Errorf("%q has no order id", data))
	}

	action, err := order.ParseAction(name)
	if err != nil {
		return "", 0, err
	}
	id, err := kernel.OrderIDFromString(rawID)
	if err != nil {
		return "", 0, err
	}

	return action, id, nil
}
