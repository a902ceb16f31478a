package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/formosafoodlab/nightmarket-atlas/api/responses"
	"github.com/formosafoodlab/nightmarket-atlas/api/validators"
	"github.com/formosafoodlab/nightmarket-atlas/internal/markets"
	pkgerrors "github.com/formosafoodlab/nightmarket-atlas/pkg/errors"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/logger"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/pagination"
)

// MarketList returns a paginated market listing.
func MarketList(svc markets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "market service unavailable"))
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
		active, err := validators.ParseQueryBool(r, "active")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := markets.ListFilters{
			Search: validators.QueryString(r, "search"),
			Focus:  validators.QueryString(r, "focus"),
			Active: active,
		}

		list, meta, err := svc.List(r.Context(), filters, pagination.Normalize(page, limit))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, list, meta)
	}
}

// MarketDetail returns one market with vendor summaries.
func MarketDetail(svc markets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "market service unavailable"))
			return
		}

		ctx := r.Context()
		id := chi.URLParam(r, "marketId")
		if logg != nil {
			ctx = logg.WithMarketID(ctx, id)
		}

		market, err := svc.GetByID(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, market)
	}
}

// MarketCreate registers a new market under a client-chosen slug.
func MarketCreate(svc markets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "market service unavailable"))
			return
		}

		var input markets.CreateMarketInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		market, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, market)
	}
}

// MarketUpdate applies a partial update to one market.
func MarketUpdate(svc markets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "market service unavailable"))
			return
		}

		ctx := r.Context()
		id := chi.URLParam(r, "marketId")
		if logg != nil {
			ctx = logg.WithMarketID(ctx, id)
		}

		var input markets.UpdateMarketInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		market, err := svc.Update(ctx, id, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, market)
	}
}

// MarketDelete soft-deletes one market and returns the updated record.
func MarketDelete(svc markets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "market service unavailable"))
			return
		}

		ctx := r.Context()
		id := chi.URLParam(r, "marketId")
		if logg != nil {
			ctx = logg.WithMarketID(ctx, id)
		}

		market, err := svc.Delete(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, market)
	}
}
