package graph

import (
	"context"
	"errors"
	"log/slog"

	"github.com/templui/goalgraph/internal/metrics"
	"github.com/templui/goalgraph/internal/service"
)

const (
	CodeValidation      = "VALIDATION"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeStorage         = "STORAGE"
	CodeInternal        = "INTERNAL"
)

// resolverError is what clients see. graphql-go copies Extensions into the
// response's error entry.
type resolverError struct {
	message    string
	code       string
	extensions map[string]interface{}
}

func (e *resolverError) Error() string { return e.message }

func (e *resolverError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.code}
	for k, v := range e.extensions {
		ext[k] = v
	}
	return ext
}

// clientError maps service errors to coded resolver errors. Storage and
// unexpected failures are logged and replaced by a generic message.
func clientError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		storageErr    *service.StorageError
		out           *resolverError
	)

	switch {
	case errors.As(err, &validationErr):
		out = &resolverError{
			message:    validationErr.Error(),
			code:       CodeValidation,
			extensions: map[string]interface{}{"field": validationErr.Field},
		}
	case errors.As(err, &notFoundErr):
		out = &resolverError{message: notFoundErr.Error(), code: CodeNotFound}
	case errors.Is(err, service.ErrUnauthenticated):
		out = &resolverError{message: err.Error(), code: CodeUnauthenticated}
	case errors.As(err, &storageErr):
		slog.ErrorContext(ctx, "graphql storage failure", "error", err)
		out = &resolverError{message: "storage failure", code: CodeStorage}
	default:
		slog.ErrorContext(ctx, "graphql internal failure", "error", err)
		out = &resolverError{message: "internal error", code: CodeInternal}
	}

	metrics.ResolverErrors.WithLabelValues(out.code).Inc()
	return out
}

func isNotFound(err error) bool {
	var notFoundErr *service.NotFoundError
	return errors.As(err, &notFoundErr)
}
