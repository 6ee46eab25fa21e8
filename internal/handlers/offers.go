package handlers

import (
	"net/http"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/httpx"
	"github.com/nikolayk812/storefront/internal/service"
)

type OfferHandler struct {
	svc *service.Offers
}

func NewOfferHandler(svc *service.Offers) *OfferHandler {
	return &OfferHandler{svc: svc}
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := httpx.ParsePage(r)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	offers, count, err := h.svc.List(r.Context(), page)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.NewList(count, mapAll(offers, toOfferResponse)))
}

func (h *OfferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	offer, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOfferResponse(offer))
}

func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Authorize(r.Context(), access.ActionCreate); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	var req OfferRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	offer, err := h.svc.Create(r.Context(), service.OfferInput{
		GoodID:  req.GoodID,
		Price:   *req.Price,
		Enabled: req.Enabled,
	})
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toOfferResponse(offer))
}

func (h *OfferHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	if err := h.svc.Check(r.Context(), access.ActionUpdate, id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	var req OfferRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	offer, err := h.svc.Update(r.Context(), id, service.OfferInput{
		GoodID:  req.GoodID,
		Price:   *req.Price,
		Enabled: req.Enabled,
	})
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOfferResponse(offer))
}

func (h *OfferHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ParseID(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	if err := h.svc.Check(r.Context(), access.ActionPartialUpdate, id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	var req OfferPatchRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	offer, err := h.svc.PartialUpdate(r.Context(), id, service.OfferPatch(req))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toOfferResponse(offer))
}

func (h *OfferHandler) Destroy(w http.ResponseWriter, r *http.Request) {
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
