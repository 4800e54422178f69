package table

import (
	"context"

	"github.com/asaidimu/go-datagrid/core/record"
)

// TableEventType identifies a grid lifecycle event.
type TableEventType string

// Emitted event types. Render events bracket every pipeline pass; sort and
// page events fire when the corresponding state actually changed.
const (
	RenderStart   TableEventType = "render:start"
	RenderSuccess TableEventType = "render:success"
	RenderFailed  TableEventType = "render:failed"
	SortChanged   TableEventType = "sort:changed"
	PageChanged   TableEventType = "page:changed"
)

// TableEvent is the payload delivered to grid subscribers.
type TableEvent struct {
	Type      TableEventType  `json:"type"`
	Timestamp int64           `json:"timestamp"` // Unix milliseconds
	PassID    string          `json:"passId"`    // identifies one render pass
	Action    Action          `json:"action"`
	Criteria  record.Criteria `json:"criteria,omitempty"`
	Rows      int             `json:"rows"` // rows in the final page slice
	Window    *Window         `json:"window,omitempty"`
	Error     *string         `json:"error,omitempty"`
	Duration  *int64          `json:"duration,omitempty"` // milliseconds
}

// EventCallbackFunction handles a delivered table event.
type EventCallbackFunction func(ctx context.Context, event TableEvent) error

// RegisterSubscriptionOptions defines options for registering a grid
// subscription.
type RegisterSubscriptionOptions struct {
	Event       TableEventType
	Label       string
	Description string
	Callback    EventCallbackFunction
}

// SubscriptionInfo records a live subscription and its teardown.
type SubscriptionInfo struct {
	Event       TableEventType
	Label       string
	Description string
	Unsubscribe func()
}
