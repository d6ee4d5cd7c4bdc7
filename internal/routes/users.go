package routes

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/cookbook/internal/apperrors"
	"github.com/haguru/cookbook/internal/models/dto"
)

// Register shows the signup form and creates the account on POST. A new
// account is logged in straight away.
func (r *Route) Register(w http.ResponseWriter, req *http.Request, rc RequestContext) {
	if req.Method != http.MethodPost {
		r.render(w, req, rc, http.StatusOK, ViewRegister, nil)
		return
	}

	r.incCounter(SignupRequestsTotal)

	signupRequest := &dto.UserSignupRequestDTO{}
	if err := r.decodeForm(w, req, signupRequest); err != nil {
		r.Logger.Warn("Invalid signup form", "error", err)
		r.incCounter(SignupErrorsTotal)
		r.redirectWithFlash(w, req, RegisterPath, MsgInvalidForm)
		return
	}

	if err := r.validator.Struct(signupRequest); err != nil {
		r.incCounter(SignupErrorsTotal)
		r.redirectWithFlash(w, req, RegisterPath, validationMessage(err))
		return
	}

	startTime := time.Now()
	user, err := r.UserService.RegisterUser(req.Context(), signupRequest.Username, signupRequest.Password)
	r.observeSince(SignupDurationSeconds, startTime)
	if err != nil {
		r.incCounter(SignupErrorsTotal)
		if errors.Is(err, apperrors.ErrDuplicateUser) {
			r.redirectWithFlash(w, req, RegisterPath, MsgUsernameExists)
			return
		}
		r.handleError(w, req, rc, err)
		return
	}

	if err := r.Sessions.Start(w, req, user.Username); err != nil {
		r.Logger.Error(ErrStartingSession, "user", user.Username, "error", err)
		r.handleError(w, req, rc, err)
		return
	}

	r.incCounter(SignupSuccessTotal)
	r.redirectWithFlash(w, req, profilePath(user.Username), MsgRegistered)
}

// Login shows the login form and starts a session on POST. Both failure
// kinds produce the same flash.
func (r *Route) Login(w http.ResponseWriter, req *http.Request, rc RequestContext) {
	if req.Method != http.MethodPost {
		r.render(w, req, rc, http.StatusOK, ViewLogin, nil)
		return
	}

	r.incCounter(LoginRequestsTotal)

	loginRequest := &dto.LoginRequestDTO{}
	if err := r.decodeForm(w, req, loginRequest); err != nil {
		r.Logger.Warn("Invalid login form", "error", err)
		r.incCounter(LoginFailedTotal)
		r.redirectWithFlash(w, req, LoginPath, MsgInvalidForm)
		return
	}

	if err := r.validator.Struct(loginRequest); err != nil {
		r.incCounter(LoginFailedTotal)
		r.redirectWithFlash(w, req, LoginPath, validationMessage(err))
		return
	}

	startTime := time.Now()
	user, err := r.UserService.AuthenticateUser(req.Context(), loginRequest.Username, loginRequest.Password)
	r.observeSince(LoginDurationSeconds, startTime)
	if err != nil {
		r.incCounter(LoginFailedTotal)
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			r.redirectWithFlash(w, req, LoginPath, MsgLoginFailed)
			return
		}
		r.handleError(w, req, rc, err)
		return
	}

	if err := r.Sessions.Start(w, req, user.Username); err != nil {
		r.Logger.Error(ErrStartingSession, "user", user.Username, "error", err)
		r.handleError(w, req, rc, err)
		return
	}

	r.incCounter(LoginSuccessTotal)
	r.redirectWithFlash(w, req, profilePath(user.Username), fmt.Sprintf(MsgWelcomeFormat, loginRequest.Username))
}

// Profile renders the session user's profile. The username in the path is
// not used for the lookup.
func (r *Route) Profile(w http.ResponseWriter, req *http.Request, rc RequestContext) {
	if !r.requireUser(w, req, rc) {
		return
	}

	user, err := r.UserService.GetProfile(req.Context(), rc.SessionUser)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// the account behind a still-valid token is gone
			r.Sessions.End(w, req)
			r.redirectWithFlash(w, req, LoginPath, MsgLoginRequired)
			return
		}
		r.handleError(w, req, rc, err)
		return
	}

	r.render(w, req, rc, http.StatusOK, ViewProfile, map[string]interface{}{
		"Username": user.Username,
	})
}

func (r *Route) Logout(w http.ResponseWriter, req *http.Request, rc RequestContext) {
	r.Sessions.End(w, req)
	r.redirectWithFlash(w, req, LoginPath, MsgLoggedOut)
}
