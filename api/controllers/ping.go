package controllers

import (
	"net/http"

	"github.com/formosafoodlab/nightmarket-atlas/api/responses"
)

func Ping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
