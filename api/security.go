package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/aionhq/gate/api/models"
	"github.com/aionhq/gate/apierror"
	"github.com/aionhq/gate/auth"
	"github.com/aionhq/gate/util"
)

func (a *ApplicationHandler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	var newKey models.CreateAPIKey
	if err := util.ReadJSON(r, &newKey); err != nil {
		a.A.Responder.Respond(w, r, apierror.Validation("", err.Error()))
		return
	}

	principal := auth.PrincipalFromContext(r.Context())

	resp, err := a.A.SecurityService.CreateAPIKey(r.Context(), principal, &newKey)
	if err != nil {
		a.A.Responder.Respond(w, r, err)
		return
	}

	_ = render.Render(w, r, util.NewServerResponse("API Key created successfully", resp, http.StatusCreated))
}

func (a *ApplicationHandler) RevokeAPIKey(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())

	err := a.A.SecurityService.RevokeAPIKey(r.Context(), principal, chi.URLParam(r, "keyID"))
	if err != nil {
		a.A.Responder.Respond(w, r, err)
		return
	}

	_ = render.Render(w, r, util.NewServerResponse("API Key revoked successfully", nil, http.StatusOK))
}
