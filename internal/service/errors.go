package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitly/internal/calculator"
	"github.com/mmynk/splitly/internal/metrics"
	"github.com/mmynk/splitly/internal/storage"
)

// codeOf maps engine and storage errors to Connect codes.
func codeOf(err error) connect.Code {
	var (
		validationErr *calculator.ValidationError
		notFoundErr   *calculator.NotFoundError
		invariantErr  *calculator.InvariantError
		connectErr    *connect.Error
	)
	switch {
	case errors.As(err, &connectErr):
		return connectErr.Code()
	case errors.As(err, &validationErr):
		return connect.CodeInvalidArgument
	case errors.As(err, &notFoundErr), errors.Is(err, storage.ErrNotFound):
		return connect.CodeNotFound
	case errors.As(err, &invariantErr):
		return connect.CodeFailedPrecondition
	case errors.Is(err, storage.ErrAlreadyExists):
		return connect.CodeAlreadyExists
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}

// fail logs a failed operation and converts err into a Connect error.
// Client mistakes are logged at warn, everything else at error.
func fail(op string, err error, attrs ...any) error {
	code := codeOf(err)
	attrs = append(attrs, "code", code, "error", err)
	if code == connect.CodeInternal {
		slog.Error(op+" failed", attrs...)
	} else {
		slog.Warn(op+" failed", attrs...)
	}

	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}
	return connect.NewError(code, err)
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// requireCents rejects money values with more than two decimal places.
func requireCents(field string, v decimal.Decimal) error {
	if !v.Equal(v.Truncate(calculator.CurrencyPlaces)) {
		return invalidArgument("%s %s has more than %d decimal places", field, v.String(), calculator.CurrencyPlaces)
	}
	return nil
}

// outcomeOf classifies a balance computation for the metrics counter.
func outcomeOf(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	switch codeOf(err) {
	case connect.CodeInvalidArgument:
		return metrics.OutcomeInvalid
	case connect.CodeNotFound:
		return metrics.OutcomeNotFound
	case connect.CodeFailedPrecondition:
		return metrics.OutcomeInvariant
	default:
		return metrics.OutcomeError
	}
}
