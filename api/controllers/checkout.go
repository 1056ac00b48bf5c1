package controllers

import (
	"net/http"

	"github.com/geocart/geocart-backend/api/responses"
	"github.com/geocart/geocart-backend/api/validators"
	checkoutsvc "github.com/geocart/geocart-backend/internal/checkout"
	"github.com/geocart/geocart-backend/pkg/logger"
)

// OrdersSubmit runs checkout for the caller's cart. The route sits
// behind the idempotency middleware, so resubmitting the same
// Idempotency-Key replays the original response instead of creating a
// second order.
func OrdersSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutsvc.SubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Submit(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}
