package utils

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	appErrors "github.com/nearbasket/nearbasket-api/internal/errors"
	"github.com/nearbasket/nearbasket-api/internal/utils/response"
)

func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError(err.Error()))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		slog.Warn("Validation failed", slog.String("error", err.Error()))
		response.Error(w, appErrors.ValidationError("invalid input data").WithError(err))
		return false
	}

	return true

}

// ParseID reads a UUID path parameter.
func ParseID(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return uuid.Nil, appErrors.AddValidationError(name, "is required")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, appErrors.AddValidationError(name, "must be a valid UUID").WithError(err)
	}

	return id, nil
}

// ParseOptionalStoreID reads the storeId query parameter; absent means the
// global scope.
func ParseOptionalStoreID(r *http.Request) (*uuid.UUID, error) {
	raw := r.URL.Query().Get("storeId")
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, appErrors.AddValidationError("storeId", "must be a valid UUID").WithError(err)
	}

	return &id, nil
}
