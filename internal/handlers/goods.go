package handlers

import (
	"net/http"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/httpx"
	"github.com/nikolayk812/storefront/internal/service"
)

type GoodHandler struct {
	svc *service.Goods
}

func NewGoodHandler(svc *service.Goods) *GoodHandler {
	return &GoodHandler{svc: svc}
}

func (h *GoodHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := httpx.ParsePage(r)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	goods, count, err := h.svc.List(r.Context(), page)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.NewList(count, mapAll(goods, toGoodResponse)))
}

func (h *GoodHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	good, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGoodResponse(good))
}

func (h *GoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Authorize(r.Context(), access.ActionCreate); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	var req GoodRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	good, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toGoodResponse(good))
}

func (h *GoodHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	if err := h.svc.Check(r.Context(), access.ActionUpdate, id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	var req GoodRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	good, err := h.svc.Update(r.Context(), id, req.Name)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGoodResponse(good))
}

func (h *GoodHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	if err := h.svc.Check(r.Context(), access.ActionPartialUpdate, id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	var req GoodPatchRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	good, err := h.svc.PartialUpdate(r.Context(), id, service.GoodPatch{Name: req.Name})
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGoodResponse(good))
}

func (h *GoodHandler) Destroy(w http.ResponseWriter, r *http.Request) {
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
