package interfaces

import (
	"log"
	"net/http"

	financeErrors "github.com/jkalinowski/ExpenseTracker/internal/finance/errors"
)

type respondJSONFunc func(w http.ResponseWriter, status int, payload interface{})
type respondErrorFunc func(w http.ResponseWriter, status int, message string)

// respondServiceError maps the finance error taxonomy onto HTTP
// statuses: everything client-caused is 400 except unresolved ids,
// which are 404. Anything unrecognized is an internal error and the
// fallback message is used instead of the raw error.
func respondServiceError(respondError respondErrorFunc, w http.ResponseWriter, err error, fallback string) {
	switch {
	case financeErrors.IsValidationError(err),
		financeErrors.IsConflictError(err),
		financeErrors.IsDependencyError(err),
		financeErrors.IsStateError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case financeErrors.IsNotFoundError(err):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
