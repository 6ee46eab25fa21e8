package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/httpx"
	"github.com/nikolayk812/storefront/internal/service"
)

// SettingHandler addresses settings by name.
type SettingHandler struct {
	svc *service.Settings
}

func NewSettingHandler(svc *service.Settings) *SettingHandler {
	return &SettingHandler{svc: svc}
}

func (h *SettingHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := httpx.ParsePage(r)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	settings, count, err := h.svc.List(r.Context(), page)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.NewList(count, mapAll(settings, toSettingResponse)))
}

func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.svc.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSettingResponse(setting))
}

func (h *SettingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Authorize(r.Context(), access.ActionCreate); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	var req SettingRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	setting, err := h.svc.Create(r.Context(), domain.Setting(req))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toSettingResponse(setting))
}

func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.svc.Check(r.Context(), access.ActionUpdate, name); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	var req SettingRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	setting, err := h.svc.Update(r.Context(), name, domain.Setting(req))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSettingResponse(setting))
}

func (h *SettingHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.svc.Check(r.Context(), access.ActionPartialUpdate, name); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	var req SettingPatchRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	setting, err := h.svc.PartialUpdate(r.Context(), name, service.SettingPatch(req))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSettingResponse(setting))
}

func (h *SettingHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Destroy(r.Context(), chi.URLParam(r, "name")); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}

	httpx.WriteNoContent(w)
}
