package appointment

import (
	"context"

	domain "github.com/aaafasf/PETPOCKEBACKEND1/internal/domain/appointment"
)

// CancelAppointment is sugar over ChangeState: cancellation is a
// state transition, never a row deletion.
type CancelAppointment struct {
	changeState *ChangeState
}

func NewCancelAppointment(changeState *ChangeState) *CancelAppointment {
	return &CancelAppointment{changeState: changeState}
}

func (uc *CancelAppointment) Execute(ctx context.Context, id uint) error {
	return uc.changeState.Execute(ctx, id, ChangeStateInput{
		State: string(domain.StatusCancelled),
	})
}
