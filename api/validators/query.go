package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/formosafoodlab/nightmarket-atlas/pkg/errors"
)

func ParseQueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter "+name+" must be an integer")
	}
	return val, nil
}

// ParseQueryBool returns nil when the parameter is absent, so callers can
// distinguish "unfiltered" from an explicit true/false.
func ParseQueryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter "+name+" must be a boolean")
	}
	return &val, nil
}

func QueryString(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
