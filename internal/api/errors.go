package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/matheus3301/minda/internal/diary"
	"github.com/matheus3301/minda/internal/prefs"
	"github.com/matheus3301/minda/internal/store"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// ToStatus maps a domain error to a gRPC status error.
// Errors that already carry a status pass through.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := grpcstatus.FromError(err); ok {
		return err
	}
	return grpcstatus.Error(Code(err), err.Error())
}

// Code returns the gRPC code for a domain error.
func Code(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, store.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, diary.ErrValidation):
		return codes.InvalidArgument
	case errors.Is(err, store.ErrUnavailable), errors.Is(err, prefs.ErrUnavailable):
		return codes.Unavailable
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	default:
		return codes.Internal
	}
}

// FromStatus maps a gRPC error back to the domain sentinel it came from.
// unavailable is the sentinel used for codes.Unavailable, which differs
// between the diary and preference services.
func FromStatus(err error, unavailable error) error {
	if err == nil {
		return nil
	}
	st, ok := grpcstatus.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%w: %s", store.ErrNotFound, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", diary.ErrValidation, st.Message())
	case codes.Unavailable:
		return fmt.Errorf("%w: %s", unavailable, st.Message())
	case codes.Canceled:
		return fmt.Errorf("%w: %s", context.Canceled, st.Message())
	case codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", context.DeadlineExceeded, st.Message())
	default:
		return err
	}
}

// isStorageFailure reports whether err means the daemon's durable state is unhealthy.
func isStorageFailure(err error) bool {
	return errors.Is(err, store.ErrUnavailable) || errors.Is(err, prefs.ErrUnavailable)
}
