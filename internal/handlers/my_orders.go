package handlers

import (
	"net/http"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/httpx"
	"github.com/nikolayk812/storefront/internal/service"
)

type MyOrderHandler struct {
	svc *service.MyOrders
}

func NewMyOrderHandler(svc *service.MyOrders) *MyOrderHandler {
	return &MyOrderHandler{svc: svc}
}

func (h *MyOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := httpx.ParsePage(r)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	orders, count, err := h.svc.List(r.Context(), queryStatuses(r), page)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.NewList(count, mapAll(orders, toMyOrderResponse)))
}

func (h *MyOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	httpx.WriteJSON(w, http.StatusOK, toMyOrderResponse(order))
}

func (h *MyOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Authorize(r.Context(), access.ActionCreate); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	var req MyOrderRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	order, err := h.svc.Create(r.Context(), service.MyOrderInput(req))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toMyOrderResponse(order))
}

func (h *MyOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	if err := h.svc.Check(r.Context(), access.ActionUpdate, id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	var req MyOrderRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	order, err := h.svc.Update(r.Context(), id, service.MyOrderInput(req))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMyOrderResponse(order))
}

func (h *MyOrderHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	if err := h.svc.Check(r.Context(), access.ActionPartialUpdate, id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	var req MyOrderPatchRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	order, err := h.svc.PartialUpdate(r.Context(), id, service.MyOrderPatch(req))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMyOrderResponse(order))
}

func (h *MyOrderHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	if err := h.svc.Destroy(r.Context(), id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteNoContent(w)
}
