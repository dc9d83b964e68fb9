package handler

import (
	"errors"
	"net/http"
	"planshare/internal/domain"
)

// statusForError переводит доменную таксономию в HTTP-статусы. Всё прочее —
// generic 500 без деталей хранилища в ответе.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrRecipientNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateActiveShare):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSelfShare), errors.Is(err, domain.ErrInvalidScope):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
