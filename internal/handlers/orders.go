package handlers

import (
	"net/http"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/httpx"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/samber/lo"
)

type OrderHandler struct {
	svc *service.Orders
}

func NewOrderHandler(svc *service.Orders) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// List filters by ?email= and ?status=, both repeatable.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := httpx.ParsePage(r)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	orders, count, err := h.svc.List(r.Context(), service.OrderQuery{
		Emails:   httpx.QueryList(r, "email"),
		Statuses: queryStatuses(r),
		Page:     page,
	})
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.NewList(count, mapAll(orders, toOrderResponse)))
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	order, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) StatusHistory(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	history, err := h.svc.StatusHistory(r.Context(), id)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.NewList(len(history), mapAll(history, toStatusChangeResponse)))
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	if err := h.svc.Check(r.Context(), access.ActionUpdate, id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	var req OrderRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	order, err := h.svc.Update(r.Context(), id, service.OrderInput{
		Email:      req.Email,
		EthAddress: req.EthAddress,
		Status:     domain.OrderStatus(req.Status),
		Purchases: lo.Map(req.Purchases, func(p PurchaseRequest, _ int) service.PurchaseInput {
			return service.PurchaseInput{GoodID: p.GoodID, Price: *p.Price}
		}),
	})
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	if err := h.svc.Check(r.Context(), access.ActionPartialUpdate, id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	var req OrderPatchRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	patch := service.OrderPatch{
		Email:      req.Email,
		EthAddress: req.EthAddress,
	}
	if req.Status != nil {
		patch.Status = lo.ToPtr(domain.OrderStatus(*req.Status))
	}

	order, err := h.svc.PartialUpdate(r.Context(), id, patch)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOrderResponse(order))
}

// Deny answers create and destroy, which only the buyer endpoint offers.
func (h *OrderHandler) Deny(action access.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteErr(w, r, h.svc.Deny(r.Context(), action))
	}
}

func queryStatuses(r *http.Request) []domain.OrderStatus {
	return lo.Map(httpx.QueryList(r, "status"), func(s string, _ int) domain.OrderStatus {
		return domain.OrderStatus(s)
	})
}
