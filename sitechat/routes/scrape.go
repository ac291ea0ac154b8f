package routes

import (
	"net/http"
	"strings"

	"sitechat/sitechat/controllers"
	"sitechat/sitechat/utils/types"

	"github.com/go-chi/chi/v5"
)

// ScrapeRoutes registers the extraction routes. They carry no route-level
// timeout: every extraction is bounded by the extractor's own deadline, which
// already answers 504.
func ScrapeRoutes(ctrl *controllers.ScrapeController) chi.Router {
	r := chi.NewRouter()

	// POST /api/scrape
	r.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.ScrapeRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		if strings.TrimSpace(req.URL) == "" {
			return nil, http.StatusBadRequest, badRequest("URL is required")
		}
		doc, err := ctrl.Scrape(r.Context(), req)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return doc, http.StatusOK, nil
	}))

	// POST /api/scrape/batch
	r.Post("/batch", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.ScrapeBatchRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		if len(req.URLs) == 0 {
			return nil, http.StatusBadRequest, badRequest("urls is required")
		}
		if len(req.URLs) > controllers.MaxBatchURLs {
			return nil, http.StatusBadRequest, badRequest("too many urls")
		}
		resp, err := ctrl.ScrapeBatch(r.Context(), req)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return resp, http.StatusOK, nil
	}))

	return r
}
