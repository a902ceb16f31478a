package controllers

import (
	"net/http"

	"github.com/formosafoodlab/nightmarket-atlas/api/responses"
	"github.com/formosafoodlab/nightmarket-atlas/api/validators"
	"github.com/formosafoodlab/nightmarket-atlas/internal/references"
	pkgerrors "github.com/formosafoodlab/nightmarket-atlas/pkg/errors"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/logger"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/pagination"
)

// ReferenceList returns the bibliography, newest publications first.
func ReferenceList(svc references.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reference service unavailable"))
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

		filters := references.ListFilters{
			Category: validators.QueryString(r, "category"),
			Search:   validators.QueryString(r, "search"),
		}

		list, meta, err := svc.List(r.Context(), filters, pagination.Normalize(page, limit))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, list, meta)
	}
}
