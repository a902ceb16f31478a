package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/formosafoodlab/nightmarket-atlas/api/responses"
	"github.com/formosafoodlab/nightmarket-atlas/api/validators"
	"github.com/formosafoodlab/nightmarket-atlas/internal/vendors"
	pkgerrors "github.com/formosafoodlab/nightmarket-atlas/pkg/errors"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/logger"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/pagination"
)

// VendorList returns a paginated vendor listing. pagination.total counts
// the filtered set.
func VendorList(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		active, err := validators.ParseQueryBool(r, "isActive")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := vendors.ListFilters{
			Search:    validators.QueryString(r, "search"),
			MarketID:  validators.QueryString(r, "marketId"),
			Specialty: validators.QueryString(r, "specialty"),
			Active:    active,
		}

		list, meta, err := svc.List(r.Context(), filters, pagination.Normalize(page, limit))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, list, meta)
	}
}

// VendorDetail returns one vendor with its market associations.
func VendorDetail(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}

		ctx := r.Context()
		id := chi.URLParam(r, "vendorId")
		if logg != nil {
			ctx = logg.WithVendorID(ctx, id)
		}

		vendor, err := svc.GetByID(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendor)
	}
}

// VendorCreate registers a vendor inside an existing market; the join
// record is created atomically with the vendor.
func VendorCreate(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}

		var input vendors.CreateVendorInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, vendor)
	}
}

// VendorUpdate applies a partial update to one vendor.
func VendorUpdate(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}

		ctx := r.Context()
		id := chi.URLParam(r, "vendorId")
		if logg != nil {
			ctx = logg.WithVendorID(ctx, id)
		}

		var input vendors.UpdateVendorInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		vendor, err := svc.Update(ctx, id, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendor)
	}
}

// VendorDelete soft-deletes one vendor and returns the updated record.
func VendorDelete(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}

		ctx := r.Context()
		id := chi.URLParam(r, "vendorId")
		if logg != nil {
			ctx = logg.WithVendorID(ctx, id)
		}

		vendor, err := svc.Delete(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendor)
	}
}
