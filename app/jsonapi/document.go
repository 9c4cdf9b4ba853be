// Package jsonapi renders catalog records as JSON:API documents.
//
// Every response body has a top-level "data" member holding either one
// resource object or an array of them. Resource ids are always strings.
package jsonapi

import (
	"strconv"

	"github.com/veo1/merchant-catalog/models"
)

const (
	TypeItem     = "item"
	TypeMerchant = "merchant"
)

// Resource is a single JSON:API resource object.
type Resource struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Attributes any    `json:"attributes"`
}

// Document wraps one resource.
type Document struct {
	Data Resource `json:"data"`
}

// CollectionDocument wraps a list of resources. Data is never null.
type CollectionDocument struct {
	Data []Resource `json:"data"`
}

// NotFoundDocument is the body of a search that matched nothing.
type NotFoundDocument struct {
	Data struct {
		Error string `json:"error"`
	} `json:"data"`
}

type ItemAttributes struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	MerchantID  uint    `json:"merchant_id"`
}

type MerchantAttributes struct {
	Name string `json:"name"`
}

func Item(item models.Item) Document {
	return Document{Data: itemResource(item)}
}

func Items(items []models.Item) CollectionDocument {
	return collection(items, itemResource)
}

func Merchant(merchant models.Merchant) Document {
	return Document{Data: merchantResource(merchant)}
}

func Merchants(merchants []models.Merchant) CollectionDocument {
	return collection(merchants, merchantResource)
}

// NotFound builds the search miss body, e.g. "Merchant not found".
func NotFound(message string) NotFoundDocument {
	var doc NotFoundDocument
	doc.Data.Error = message
	return doc
}

func itemResource(item models.Item) Resource {
	return Resource{
		ID:   formatID(item.ID),
		Type: TypeItem,
		Attributes: ItemAttributes{
			Name:        item.Name,
			Description: item.Description,
			UnitPrice:   item.UnitPrice.InexactFloat64(),
			MerchantID:  item.MerchantID,
		},
	}
}

func merchantResource(merchant models.Merchant) Resource {
	return Resource{
		ID:   formatID(merchant.ID),
		Type: TypeMerchant,
		Attributes: MerchantAttributes{
			Name: merchant.Name,
		},
	}
}

func collection[T any](records []T, toResource func(T) Resource) CollectionDocument {
	resources := make([]Resource, len(records))
	for i, r := range records {
		resources[i] = toResource(r)
	}
	return CollectionDocument{Data: resources}
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
