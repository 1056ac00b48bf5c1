package controllers

import (
	"net/http"

	"github.com/geocart/geocart-backend/api/responses"
	"github.com/geocart/geocart-backend/api/validators"
	contactsvc "github.com/geocart/geocart-backend/internal/contacts"
	"github.com/geocart/geocart-backend/pkg/logger"
)

// ContactsCreate accepts a contact form submission.
func ContactsCreate(svc contactsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload contactsvc.CreateContactInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.Name = validators.SanitizeString(payload.Name, 120)
		payload.Message = validators.SanitizeString(payload.Message, 4000)

		contact, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, contact)
	}
}

// ContactsList returns all contact messages (admin only).
func ContactsList(svc contactsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contacts, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"contacts": contacts})
	}
}

// ContactsDelete removes a contact message (admin only).
func ContactsDelete(svc contactsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "contactId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": true})
	}
}
