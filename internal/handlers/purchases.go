package handlers

import (
	"net/http"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/httpx"
	"github.com/nikolayk812/storefront/internal/service"
)

type PurchaseHandler struct {
	svc *service.Purchases
}

func NewPurchaseHandler(svc *service.Purchases) *PurchaseHandler {
	return &PurchaseHandler{svc: svc}
}

func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := httpx.ParsePage(r)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	purchases, count, err := h.svc.List(r.Context(), page)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.NewList(count, toPurchaseResponses(purchases)))
}

func (h *PurchaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	purchase, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPurchaseResponse(purchase))
}

// Deny answers a verb purchases do not support with 401 or 403.
func (h *PurchaseHandler) Deny(action access.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteErr(w, r, h.svc.Deny(r.Context(), action))
	}
}
