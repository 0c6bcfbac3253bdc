package kernel

import (
	"strings"

	"workorders/internal/pkg/errs"
)

// UserID identifies a creator or worker. It is the pre-validated identifier handed
// over by the transport (a Telegram chat id in production) and is treated as opaque.
type UserID string

// NewUserID trims s and rejects empty identifiers.
func NewUserID(s string) (UserID, error) {
	id := UserID(strings.TrimSpace(s))
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

func (id UserID) Validate() error {
	if strings.TrimSpace(string(id)) == "" {
		return errs.NewValueIsRequiredError("user id")
	}
	return nil
}

func (id UserID) String() string {
	return string(id)
}
