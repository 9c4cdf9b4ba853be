package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/veo1/merchant-catalog/app/logger"
	"github.com/veo1/merchant-catalog/models"
)

const MessageIncompleteSubmission = "incomplete submission"

// RepositoryError translates a repository error into a JSON error response.
// Validation failures share the 404 status of missing records. Unknown
// errors are logged and reported with the fallback message.
func RepositoryError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrItemNotFound):
		ErrorResponse(w, http.StatusNotFound, models.ErrItemNotFound.Error())
	case errors.Is(err, models.ErrMerchantNotFound):
		ErrorResponse(w, http.StatusNotFound, models.ErrMerchantNotFound.Error())
	case errors.Is(err, models.ErrIncompleteSubmission):
		logger.FromContext(r.Context()).Info("rejected submission", zap.Error(err))
		ErrorResponse(w, http.StatusNotFound, MessageIncompleteSubmission)
	default:
		logger.FromContext(r.Context()).Error(fallback, zap.Error(err))
		ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}
