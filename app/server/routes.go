package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/veo1/merchant-catalog/app/api"
	"github.com/veo1/merchant-catalog/app/items"
	"github.com/veo1/merchant-catalog/app/merchants"
	"github.com/veo1/merchant-catalog/app/middleware"
)

const apiPrefix = "/api/v1"

// NewMux registers every API route along with /metrics and /healthz.
func NewMux(merchantHandler *merchants.MerchantHandler, itemHandler *items.ItemHandler, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+apiPrefix+"/merchants", merchantHandler.HandleGetAll)
	mux.HandleFunc("POST "+apiPrefix+"/merchants", merchantHandler.HandleCreate)
	mux.HandleFunc("GET "+apiPrefix+"/merchants/find", merchantHandler.HandleFind)
	mux.HandleFunc("GET "+apiPrefix+"/merchants/{id}", merchantHandler.HandleGet)
	mux.HandleFunc("DELETE "+apiPrefix+"/merchants/{id}", merchantHandler.HandleDelete)
	mux.HandleFunc("GET "+apiPrefix+"/merchants/{merchant_id}/items", itemHandler.HandleList)
	mux.HandleFunc("GET "+apiPrefix+"/merchants/{merchant_id}/items/{id}", itemHandler.HandleGetMerchantItem)

	mux.HandleFunc("GET "+apiPrefix+"/items", itemHandler.HandleList)
	mux.HandleFunc("POST "+apiPrefix+"/items", itemHandler.HandleCreate)
	mux.HandleFunc("GET "+apiPrefix+"/items/find", itemHandler.HandleFind)
	mux.HandleFunc("GET "+apiPrefix+"/items/find_all", itemHandler.HandleFindAll)
	mux.HandleFunc("GET "+apiPrefix+"/items/{id}", itemHandler.HandleGet)
	mux.HandleFunc("PATCH "+apiPrefix+"/items/{id}", itemHandler.HandleUpdate)
	mux.HandleFunc("PUT "+apiPrefix+"/items/{id}", itemHandler.HandleUpdate)
	mux.HandleFunc("DELETE "+apiPrefix+"/items/{id}", itemHandler.HandleDelete)
	mux.HandleFunc("GET "+apiPrefix+"/items/{item_id}/merchant", merchantHandler.HandleGetItemMerchant)

	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		api.OKResponse(w, map[string]string{"status": "ok"})
	})

	return mux
}

// Wrap puts the middleware stack around mux. Metrics must stay outside
// Recover so that panics are counted as 500s.
func Wrap(mux *http.ServeMux, log *zap.Logger, metrics *middleware.HTTPMetrics) http.Handler {
	return middleware.Chain(mux,
		middleware.RequestID(log),
		middleware.AccessLog(),
		metrics.Middleware(),
		middleware.Recover(),
	)
}
