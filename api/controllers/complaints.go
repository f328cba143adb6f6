package controllers

import (
	"net/http"

	"github.com/stridekart/backend/api/responses"
	"github.com/stridekart/backend/api/validators"
	"github.com/stridekart/backend/internal/complaints"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
	"github.com/stridekart/backend/pkg/logger"
)

// FileComplaint opens a support ticket, optionally tied to one of the
// customer's orders.
func FileComplaint(svc complaints.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "complaint service unavailable"))
			return
		}

		profileID, err := customerProfileID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload complaints.ComplaintRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ticket, err := svc.FileComplaint(r.Context(), profileID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, ticket)
	}
}

func ListMyComplaints(svc complaints.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "complaint service unavailable"))
			return
		}

		profileID, err := customerProfileID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tickets, err := svc.ListMyComplaints(r.Context(), profileID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tickets)
	}
}
