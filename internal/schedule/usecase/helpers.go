package usecase

import (
	"context"
	"errors"

	json "github.com/goccy/go-json"

	"o365-calendar/internal/reconcile"
	"o365-calendar/internal/schedule"
	"o365-calendar/pkg/outlook"
)

// fail logs err and wraps it with its kind.
func (uc *implUseCase) fail(ctx context.Context, op string, kind schedule.Kind, err error) error {
	switch kind {
	case schedule.KindPrecondition, schedule.KindNormalization:
		uc.l.Debugf(ctx, "%s: %s failure: %v", op, kind, err)
	default:
		uc.l.Errorf(ctx, "%s: %s failure: %v", op, kind, err)
	}
	return &schedule.Error{Kind: kind, Op: op, Err: err}
}

// transportFailure classifies a transport error. A request the connection
// could not authorize is a precondition failure, not a network one.
func (uc *implUseCase) transportFailure(ctx context.Context, op string, err error) error {
	if errors.Is(err, outlook.ErrUnauthenticated) {
		return uc.fail(ctx, op, schedule.KindPrecondition, schedule.ErrUnauthenticated)
	}
	return uc.fail(ctx, op, schedule.KindTransport, err)
}

// authUsable: a valid auth context, or a fallback credential.
func (uc *implUseCase) authUsable() bool {
	return uc.transport.IsAuthValid() || uc.transport.HasCredential()
}

func (uc *implUseCase) logSkipped(ctx context.Context, op string, skipped []reconcile.Skipped) {
	for _, s := range skipped {
		uc.l.Warnf(ctx, "%s: skipped remote item index=%d id=%q: %v", op, s.Index, s.ID, s.Err)
	}
}

// requestBody encodes p without its identity field.
func requestBody(p outlook.Payload) ([]byte, error) {
	body := p.Clone()
	if body == nil {
		body = outlook.Payload{}
	}
	delete(body, "id")
	delete(body, "Id")
	return json.Marshal(body)
}

// decodeResponse turns a write response into a payload, failing on a status
// above 399.
func decodeResponse(resp *outlook.Response) (outlook.Payload, error) {
	if resp.Failed() {
		return nil, &outlook.StatusError{StatusCode: resp.StatusCode, Body: resp.Text()}
	}
	return resp.JSON()
}
