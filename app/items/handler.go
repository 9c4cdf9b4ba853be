package items

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/veo1/merchant-catalog/app/api"
	"github.com/veo1/merchant-catalog/app/jsonapi"
	"github.com/veo1/merchant-catalog/app/logger"
	"github.com/veo1/merchant-catalog/models"
)

const messageItemNotFound = "Item not found"

type ItemProvider interface {
	GetAllItems(ctx context.Context) ([]models.Item, error)
	GetItemsByMerchant(ctx context.Context, merchantID uint) ([]models.Item, error)
	GetMerchantItem(ctx context.Context, merchantID, itemID uint) (*models.Item, error)
	SearchItems(ctx context.Context, fragment string) ([]models.Item, error)
	FindItem(ctx context.Context, filter models.ItemFilter) (*models.Item, error)
	GetItemByID(ctx context.Context, id uint) (*models.Item, error)
	CreateItem(ctx context.Context, fields models.ItemFields) (*models.Item, error)
	UpdateItem(ctx context.Context, id uint, fields models.ItemFields) (*models.Item, error)
	DeleteItem(ctx context.Context, id uint) error
}

type ItemHandler struct {
	repo ItemProvider
}

func NewItemHandler(r ItemProvider) *ItemHandler {
	return &ItemHandler{
		repo: r,
	}
}

// itemRequest is the {"item": {...}} envelope of create and update bodies.
// Decoding into ItemFields drops any attribute outside the allow-list.
type itemRequest struct {
	Item *models.ItemFields `json:"item"`
}

// HandleList lists all items, or only a merchant's items when merchant_id
// is given either as a path segment or as a query parameter. A merchant_id
// parameter that is present but empty is rejected.
func (h *ItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	rawMerchantID := r.PathValue("merchant_id")
	scoped := rawMerchantID != ""
	if query := r.URL.Query(); !scoped && query.Has("merchant_id") {
		rawMerchantID = query.Get("merchant_id")
		scoped = true
	}

	var (
		res []models.Item
		err error
	)
	if !scoped {
		res, err = h.repo.GetAllItems(r.Context())
	} else {
		merchantID, ok := api.ParseID(rawMerchantID)
		if !ok {
			api.ErrorResponse(w, http.StatusBadRequest, "invalid merchant id")
			return
		}
		res, err = h.repo.GetItemsByMerchant(r.Context(), merchantID)
	}
	if err != nil {
		api.RepositoryError(w, r, err, "failed to get items")
		return
	}

	api.OKResponse(w, jsonapi.Items(res))
}

func (h *ItemHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.repo.GetItemByID(r.Context(), id)
	if err != nil {
		api.RepositoryError(w, r, err, "failed to get item")
		return
	}

	api.OKResponse(w, jsonapi.Item(*item))
}

// HandleGetMerchantItem serves an item through its merchant's collection.
func (h *ItemHandler) HandleGetMerchantItem(w http.ResponseWriter, r *http.Request) {
	merchantID, ok := api.PathID(r, "merchant_id")
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, "invalid merchant id")
		return
	}
	id, ok := api.PathID(r, "id")
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.repo.GetMerchantItem(r.Context(), merchantID, id)
	if err != nil {
		api.RepositoryError(w, r, err, "failed to get item")
		return
	}

	api.OKResponse(w, jsonapi.Item(*item))
}

func (h *ItemHandler) HandleFindAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.SearchItems(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		api.RepositoryError(w, r, err, "failed to search items")
		return
	}

	api.OKResponse(w, jsonapi.Items(res))
}

// HandleFind returns the first item matching min_price, max_price and name.
// At least one of them is required. A miss is a 200 with an error inside data.
func (h *ItemHandler) HandleFind(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := models.ItemFilter{Name: query.Get("name")}

	var err error
	if filter.MinPrice, err = parsePrice(query.Get("min_price")); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "min_price "+err.Error())
		return
	}
	if filter.MaxPrice, err = parsePrice(query.Get("max_price")); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "max_price "+err.Error())
		return
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		api.ErrorResponse(w, http.StatusBadRequest, "min_price must not exceed max_price")
		return
	}
	if filter.IsEmpty() {
		api.ErrorResponse(w, http.StatusBadRequest, "missing search parameter")
		return
	}

	item, err := h.repo.FindItem(r.Context(), filter)
	if errors.Is(err, models.ErrItemNotFound) {
		api.OKResponse(w, jsonapi.NotFound(messageItemNotFound))
		return
	}
	if err != nil {
		api.RepositoryError(w, r, err, "failed to find item")
		return
	}

	api.OKResponse(w, jsonapi.Item(*item))
}

func (h *ItemHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input itemRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.Item == nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Missing item")
		return
	}

	item, err := h.repo.CreateItem(r.Context(), *input.Item)
	if err != nil {
		api.RepositoryError(w, r, err, "Failed to create item")
		return
	}

	logger.FromContext(r.Context()).Info("item created",
		zap.Uint("item_id", item.ID),
		zap.Uint("merchant_id", item.MerchantID))

	api.CreatedResponse(w, jsonapi.Item(*item))
}

// HandleUpdate changes only the attributes present in the body.
func (h *ItemHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var input itemRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if input.Item == nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Missing item")
		return
	}

	item, err := h.repo.UpdateItem(r.Context(), id, *input.Item)
	if err != nil {
		api.RepositoryError(w, r, err, "Failed to update item")
		return
	}

	api.OKResponse(w, jsonapi.Item(*item))
}

func (h *ItemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.ErrorResponse(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := h.repo.DeleteItem(r.Context(), id); err != nil {
		api.RepositoryError(w, r, err, "Failed to delete item")
		return
	}

	logger.FromContext(r.Context()).Info("item deleted", zap.Uint("item_id", id))
	api.NoContent(w)
}

var (
	errMalformedPrice = errors.New("must be a number")
	errNegativePrice  = errors.New("must not be negative")
)

// parsePrice returns nil for an empty value.
func parsePrice(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errMalformedPrice
	}
	if price.IsNegative() {
		return nil, errNegativePrice
	}
	return &price, nil
}
