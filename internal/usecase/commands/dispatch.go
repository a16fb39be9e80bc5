package commands

import (
	"context"

	"bundlemart-api/internal/dispatch"
	"bundlemart-api/internal/handler/dto/request"
	"bundlemart-api/internal/pkg/errs"
	"bundlemart-api/internal/pkg/phone"
)

var ErrInvalidRecipient = errs.New("invalid recipient phone number")

type Dispatcher interface {
	Dispatch(ctx context.Context, jobs []dispatch.Job) (*dispatch.Report, error)
}

type DispatchResult struct {
	Success int
	Failed  int
}

// DispatchCommands runs an ad-hoc notification blast, bypassing the queue.
// The request blocks until every batch has been attempted.
type DispatchCommands interface {
	RunDispatch(ctx context.Context, req request.DispatchRequest) (*DispatchResult, error)
}

type dispatchUseCaseImpl struct {
	dispatcher Dispatcher
}

func NewDispatchUseCase(dispatcher Dispatcher) DispatchCommands {
	return &dispatchUseCaseImpl{dispatcher: dispatcher}
}

func (u *dispatchUseCaseImpl) RunDispatch(ctx context.Context, req request.DispatchRequest) (*DispatchResult, error) {
	jobs := make([]dispatch.Job, len(req.Items))
	for i, item := range req.Items {
		recipient, err := phone.Normalize(item.Recipient)
		if err != nil {
			return nil, errs.Mark(err, ErrInvalidRecipient)
		}
		jobs[i] = dispatch.Job{
			Recipient: recipient,
			Message:   item.Message,
			OrderRef:  item.OrderRef,
		}
	}

	report, err := u.dispatcher.Dispatch(ctx, jobs)
	if err != nil {
		return nil, err
	}

	return &DispatchResult{
		Success: report.Success,
		Failed:  report.Failed,
	}, nil
}
