package slack

import "context"

// CommandService maps chat commands onto attendance operations.
// Handle never returns an error: every outcome is a reply.
type CommandService interface {
	Handle(ctx context.Context, req CommandRequest) CommandResponse
}
