package ports

import (
	"context"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/notification"
)

// PushTransport delivers and deletes out-of-band messages.
type PushTransport interface {
	// Send delivers msg to recipient and returns a handle that can later be passed to Retract.
	Send(ctx context.Context, recipient kernel.UserID, msg notification.Message) (notification.Handle, error)

	// Retract deletes a delivered message. A message the remote side already removed
	// must be reported as success.
	Retract(ctx context.Context, handle notification.Handle) error
}
