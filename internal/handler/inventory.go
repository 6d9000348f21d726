package handler

import (
	"net/http"

	"github.com/notyourtaha/Auto-Claim-Back-up/internal/model"
	"github.com/notyourtaha/Auto-Claim-Back-up/internal/storage"
	"github.com/notyourtaha/Auto-Claim-Back-up/pkg/apierror"
	"github.com/notyourtaha/Auto-Claim-Back-up/pkg/response"
)

// InventoryHandler serves the collected-item listings.
type InventoryHandler struct {
	repo storage.InventoryRepository
}

// NewInventoryHandler creates an inventory handler.
func NewInventoryHandler(repo storage.InventoryRepository) *InventoryHandler {
	return &InventoryHandler{repo: repo}
}

// InventoryResponse is the listing payload for one item kind.
type InventoryResponse struct {
	Kind  model.Kind            `json:"kind"`
	Count int                   `json:"count"`
	Items []model.CollectedItem `json:"items"`
}

// GetCards handles GET /api/v1/inventory/cards.
func (h *InventoryHandler) GetCards(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, model.KindCard)
}

// GetCreatures handles GET /api/v1/inventory/creatures.
func (h *InventoryHandler) GetCreatures(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, model.KindCreature)
}

func (h *InventoryHandler) list(w http.ResponseWriter, r *http.Request, kind model.Kind) {
	items, err := h.repo.List(r.Context(), kind)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to read inventory"))
		return
	}
	if items == nil {
		items = []model.CollectedItem{}
	}

	response.OK(w, InventoryResponse{
		Kind:  kind,
		Count: len(items),
		Items: items,
	})
}
