package handler

import (
	"context"
	"net/http"

	"github.com/osse101/GibLife_Go/internal/catalog"
	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/logger"
)

// CatalogSource exposes the active task catalog and reloads it
type CatalogSource interface {
	Current() *catalog.Catalog
	Reload(ctx context.Context) (*catalog.Catalog, bool, error)
}

// CatalogResponse describes the active task catalog
type CatalogResponse struct {
	Version string                `json:"version"`
	Source  string                `json:"source"`
	Tasks   []domain.TaskTemplate `json:"tasks"`
}

// CatalogReloadResponse reports the outcome of a reload
type CatalogReloadResponse struct {
	Message string `json:"message"`
	Changed bool   `json:"changed"`
	Version string `json:"version"`
	Tasks   int    `json:"tasks"`
}

func catalogResponse(c *catalog.Catalog) CatalogResponse {
	return CatalogResponse{
		Version: c.Version(),
		Source:  c.Source(),
		Tasks:   c.Templates(),
	}
}

// HandleGetCatalog lists the templates new games draw from
// @Summary Task catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} CatalogResponse
// @Failure 503 {object} ErrorResponse
// @Router /catalog [get]
func HandleGetCatalog(source CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := source.Current()
		if c == nil {
			respondError(w, http.StatusServiceUnavailable, ErrMsgNoCatalog)
			return
		}
		respondJSON(w, http.StatusOK, catalogResponse(c))
	}
}

// HandleReloadCatalog re-reads the catalog file (admin only). Running games
// keep their catalog; new games use the reloaded one.
// @Summary Reload task catalog
// @Tags admin
// @Produce json
// @Success 200 {object} CatalogReloadResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/catalog/reload [post]
// @Security ApiKeyAuth
func HandleReloadCatalog(source CatalogSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		log.Info(LogMsgCatalogReloading)

		c, changed, err := source.Reload(r.Context())
		if err != nil {
			respondServiceError(w, r, "Reload catalog", err)
			return
		}

		msg := MsgCatalogUnchanged
		if changed {
			msg = MsgCatalogReloaded
		}
		log.Info(LogMsgCatalogReloaded, "changed", changed, "version", c.Version(), "tasks", c.Len())

		respondJSON(w, http.StatusOK, CatalogReloadResponse{
			Message: msg,
			Changed: changed,
			Version: c.Version(),
			Tasks:   c.Len(),
		})
	}
}
