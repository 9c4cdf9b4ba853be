package merchants

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/veo1/merchant-catalog/app/api"
	"github.com/veo1/merchant-catalog/app/jsonapi"
	"github.com/veo1/merchant-catalog/app/logger"
	"github.com/veo1/merchant-catalog/models"
)

const messageMerchantNotFound = "Merchant not found"

type MerchantProvider interface {
	GetAllMerchants(ctx context.Context) ([]models.Merchant, error)
	GetMerchantByID(ctx context.Context, id uint) (*models.Merchant, error)
	SearchMerchant(ctx context.Context, fragment string) (*models.Merchant, error)
	GetItemMerchant(ctx context.Context, itemID uint) (*models.Merchant, error)
	CreateMerchant(ctx context.Context, name string) (*models.Merchant, error)
	DeleteMerchant(ctx context.Context, id uint) error
}

type MerchantHandler struct {
	repo MerchantProvider
}

func NewMerchantHandler(r MerchantProvider) *MerchantHandler {
	return &MerchantHandler{repo: r}
}

func (h *MerchantHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	merchants, err := h.repo.GetAllMerchants(r.Context())
	if err != nil {
		api.RepositoryError(w, r, err, "failed to fetch merchants")
		return
	}

	api.OKResponse(w, jsonapi.Merchants(merchants))
}

func (h *MerchantHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, "invalid merchant id")
		return
	}

	merchant, err := h.repo.GetMerchantByID(r.Context(), id)
	if err != nil {
		api.RepositoryError(w, r, err, "failed to fetch merchant")
		return
	}

	api.OKResponse(w, jsonapi.Merchant(*merchant))
}

// HandleFind returns the alphabetically first merchant matching ?name=.
// A miss is still a 200 with an error inside data.
func (h *MerchantHandler) HandleFind(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	merchant, err := h.repo.SearchMerchant(r.Context(), name)
	if errors.Is(err, models.ErrMerchantNotFound) {
		api.OKResponse(w, jsonapi.NotFound(messageMerchantNotFound))
		return
	}
	if err != nil {
		api.RepositoryError(w, r, err, "failed to search merchants")
		return
	}

	api.OKResponse(w, jsonapi.Merchant(*merchant))
}

func (h *MerchantHandler) HandleGetItemMerchant(w http.ResponseWriter, r *http.Request) {
	itemID, ok := api.PathID(r, "item_id")
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, "invalid item id")
		return
	}

	merchant, err := h.repo.GetItemMerchant(r.Context(), itemID)
	if err != nil {
		api.RepositoryError(w, r, err, "failed to fetch item merchant")
		return
	}

	api.OKResponse(w, jsonapi.Merchant(*merchant))
}

func (h *MerchantHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Merchant *struct {
			Name string `json:"name"`
		} `json:"merchant"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.Merchant == nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Missing merchant")
		return
	}

	merchant, err := h.repo.CreateMerchant(r.Context(), input.Merchant.Name)
	if err != nil {
		api.RepositoryError(w, r, err, "Failed to create merchant")
		return
	}

	logger.FromContext(r.Context()).Info("merchant created",
		zap.Uint("merchant_id", merchant.ID),
		zap.String("name", merchant.Name))

	api.CreatedResponse(w, jsonapi.Merchant(*merchant))
}

// HandleDelete removes a merchant together with its items.
func (h *MerchantHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, "invalid merchant id")
		return
	}

	if err := h.repo.DeleteMerchant(r.Context(), id); err != nil {
		api.RepositoryError(w, r, err, "Failed to delete merchant")
		return
	}

	logger.FromContext(r.Context()).Info("merchant deleted", zap.Uint("merchant_id", id))
	api.NoContent(w)
}
