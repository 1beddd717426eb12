package api

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/aionhq/gate/api/models"
	"github.com/aionhq/gate/apierror"
	"github.com/aionhq/gate/auth"
	"github.com/aionhq/gate/util"
)

func (a *ApplicationHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var newUser models.RegisterUser
	if err := util.ReadJSON(r, &newUser); err != nil {
		a.A.Responder.Respond(w, r, apierror.Validation("", err.Error()))
		return
	}

	user, token, err := a.A.UserService.RegisterUser(r.Context(), &newUser)
	if err != nil {
		a.A.Responder.Respond(w, r, err)
		return
	}

	resp := models.NewLoginUserResponse(user, *token)
	_ = render.Render(w, r, util.NewServerResponse("Registration successful", resp, http.StatusCreated))
}

func (a *ApplicationHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var loginUser models.LoginUser
	if err := util.ReadJSON(r, &loginUser); err != nil {
		a.A.Responder.Respond(w, r, apierror.Validation("", err.Error()))
		return
	}

	user, token, err := a.A.UserService.LoginUser(r.Context(), &loginUser)
	if err != nil {
		a.A.Responder.Respond(w, r, err)
		return
	}

	resp := models.NewLoginUserResponse(user, *token)
	_ = render.Render(w, r, util.NewServerResponse("Login successful", resp, http.StatusOK))
}

func (a *ApplicationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var refresh models.RefreshToken
	if err := util.ReadJSON(r, &refresh); err != nil {
		a.A.Responder.Respond(w, r, apierror.Validation("", err.Error()))
		return
	}

	token, err := a.A.UserService.RefreshToken(r.Context(), &refresh)
	if err != nil {
		a.A.Responder.Respond(w, r, err)
		return
	}

	_ = render.Render(w, r, util.NewServerResponse("Token refresh successful", token, http.StatusOK))
}

func (a *ApplicationHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	outcome := auth.OutcomeFromContext(r.Context())

	resp := models.NewCurrentUserResponse(outcome)
	_ = render.Render(w, r, util.NewServerResponse("Current user retrieved successfully", resp, http.StatusOK))
}
