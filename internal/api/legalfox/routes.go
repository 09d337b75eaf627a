package legalfox

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers the document-generation routes on the router.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/legalfox", h.Generate)
	r.Get("/files/{filename}", h.GetFile)
}
