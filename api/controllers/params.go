package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stridekart/backend/api/middleware"
	"github.com/stridekart/backend/internal/catalog"
	"github.com/stridekart/backend/internal/orders"
	"github.com/stridekart/backend/pkg/enums"
	pkgerrors "github.com/stridekart/backend/pkg/errors"
)

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

// customerProfileID reads the profile id the active profile gate seeded.
func customerProfileID(r *http.Request) (uuid.UUID, error) {
	id := middleware.ProfileIDFromContext(r.Context())
	if id == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "customer profile required")
	}
	return id, nil
}

func vendorProfileID(r *http.Request) (uuid.UUID, error) {
	id := middleware.ProfileIDFromContext(r.Context())
	if id == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor profile required")
	}
	return id, nil
}

// catalogActor builds the ownership context for product mutations: admins
// act on any product, vendors only on their own.
func catalogActor(r *http.Request) catalog.Actor {
	return catalog.Actor{
		VendorProfileID: middleware.ProfileIDFromContext(r.Context()),
		IsAdmin: middleware.RoleFromContext(r.Context()) == string(enums.RoleAdmin) ||
			middleware.IsSuperuserFromContext(r.Context()),
	}
}

func shipmentActor(r *http.Request) orders.Actor {
	return orders.Actor{
		VendorProfileID: middleware.ProfileIDFromContext(r.Context()),
		IsAdmin: middleware.RoleFromContext(r.Context()) == string(enums.RoleAdmin) ||
			middleware.IsSuperuserFromContext(r.Context()),
	}
}

func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return &id, nil
}

func queryDecimal(r *http.Request, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return &value, nil
}

func queryBool(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return &value, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return value, nil
}
