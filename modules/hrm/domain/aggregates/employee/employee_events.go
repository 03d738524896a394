package employee

import (
	"context"

	"github.com/iota-uz/emprecords/pkg/composables"
)

type CreatedEvent struct {
	RequestID string
	Data      CreateDTO
	Result    Employee
}

type UpdatedEvent struct {
	RequestID string
	Data      UpdateDTO
	Before    Employee
	Result    Employee
}

type DeletedEvent struct {
	RequestID string
	Result    Employee
}

func NewCreatedEvent(ctx context.Context, data CreateDTO, result Employee) *CreatedEvent {
	id, _ := composables.UseRequestID(ctx)
	return &CreatedEvent{RequestID: id, Data: data, Result: result}
}

func NewUpdatedEvent(ctx context.Context, data UpdateDTO, before, result Employee) *UpdatedEvent {
	id, _ := composables.UseRequestID(ctx)
	return &UpdatedEvent{RequestID: id, Data: data, Before: before, Result: result}
}

func NewDeletedEvent(ctx context.Context, result Employee) *DeletedEvent {
	id, _ := composables.UseRequestID(ctx)
	return &DeletedEvent{RequestID: id, Result: result}
}
