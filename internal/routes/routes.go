package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/haguru/cookbook/internal/apperrors"
	"github.com/haguru/cookbook/internal/interfaces"
	"github.com/haguru/cookbook/internal/models/dto"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/csrf"
)

// HealthTimeout bounds the data store ping behind /healthz.
var HealthTimeout = 2 * time.Second

// RequestContext is the per-request state every handler receives. It is
// resolved once from the session cookie before the handler runs.
type RequestContext struct {
	// SessionUser is empty when the client has no valid session.
	SessionUser string
}

func (rc RequestContext) Authenticated() bool {
	return rc.SessionUser != ""
}

// HandlerFunc is a handler that receives the resolved RequestContext.
type HandlerFunc func(w http.ResponseWriter, req *http.Request, rc RequestContext)

// Endpoint is one row of the routing table.
type Endpoint struct {
	Method  string
	Path    string
	Handler HandlerFunc
	// RateLimited endpoints are wrapped with the limiter passed to Register.
	RateLimited bool
}

type Route struct {
	Metrics       interfaces.Metrics
	UserService   interfaces.UserService
	RecipeService interfaces.RecipeService
	Sessions      interfaces.SessionManager
	Renderer      interfaces.Renderer
	Store         interfaces.DBConnector
	Logger        interfaces.Logger
	validator     *structValidator.Validate
}

// NewRoute creates a new Route instance. validator reports form fields by
// their form names, so it should not be shared with config validation.
func NewRoute(metrics interfaces.Metrics, userService interfaces.UserService,
	recipeService interfaces.RecipeService, sessions interfaces.SessionManager,
	renderer interfaces.Renderer, store interfaces.DBConnector,
	logger interfaces.Logger, validator *structValidator.Validate,
) *Route {
	validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := dto.RegisterValidations(validator); err != nil {
		logger.Error("failed to register form validations", "error", err)
	}

	return &Route{
		Metrics:       metrics,
		UserService:   userService,
		RecipeService: recipeService,
		Sessions:      sessions,
		Renderer:      renderer,
		Store:         store,
		Logger:        logger,
		validator:     validator,
	}
}

// Endpoints is the routing table.
func (r *Route) Endpoints() []Endpoint {
	return []Endpoint{
		{Method: http.MethodGet, Path: HomePath, Handler: r.Home},
		{Method: http.MethodGet, Path: RecipesPath, Handler: r.Recipes},
		{Method: http.MethodGet, Path: SearchPath, Handler: r.Search},
		{Method: http.MethodPost, Path: SearchPath, Handler: r.Search},
		{Method: http.MethodGet, Path: ShowRecipePath, Handler: r.ShowRecipe},
		{Method: http.MethodGet, Path: RegisterPath, Handler: r.Register},
		{Method: http.MethodPost, Path: RegisterPath, Handler: r.Register, RateLimited: true},
		{Method: http.MethodGet, Path: LoginPath, Handler: r.Login},
		{Method: http.MethodPost, Path: LoginPath, Handler: r.Login, RateLimited: true},
		{Method: http.MethodGet, Path: ProfilePath, Handler: r.Profile},
		{Method: http.MethodPost, Path: ProfilePath, Handler: r.Profile},
		{Method: http.MethodGet, Path: LogoutPath, Handler: r.Logout},
		{Method: http.MethodGet, Path: AddRecipePath, Handler: r.AddRecipe},
		{Method: http.MethodPost, Path: AddRecipePath, Handler: r.AddRecipe},
		{Method: http.MethodGet, Path: EditRecipePath, Handler: r.EditRecipe},
		{Method: http.MethodPost, Path: EditRecipePath, Handler: r.EditRecipe},
		{Method: http.MethodGet, Path: DeleteRecipePath, Handler: r.DeleteRecipe},
		{Method: http.MethodGet, Path: HealthPath, Handler: r.Health},
	}
}

// Mount adds every endpoint and the not-found page to srv. limit may be nil.
func (r *Route) Mount(srv interfaces.Server, limit func(http.Handler) http.Handler) error {
	for _, e := range r.Endpoints() {
		var h http.Handler = r.WithSession(e.Handler)
		if e.RateLimited && limit != nil {
			h = limit(h)
		}
		if err := srv.AddRoute(e.Method, e.Path, h.ServeHTTP); err != nil {
			return fmt.Errorf("failed to add route %s %s: %w", e.Method, e.Path, err)
		}
	}
	srv.NotFound(r.NotFound)
	return nil
}

// WithSession resolves the RequestContext and calls h with it.
func (r *Route) WithSession(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		user, _ := r.Sessions.Current(req)
		h(w, req, RequestContext{SessionUser: user})
	}
}

// Health reports whether the data store answers a ping.
func (r *Route) Health(w http.ResponseWriter, req *http.Request, _ RequestContext) {
	ctx, cancel := context.WithTimeout(req.Context(), HealthTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := r.Store.Ping(ctx); err != nil {
		r.Logger.Warn("Health check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprintln(w, MsgStoreUnhealthy)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintln(w, MsgHealthy)
}

// NotFound renders the error page for paths no endpoint matches.
func (r *Route) NotFound(w http.ResponseWriter, req *http.Request) {
	r.WithSession(func(w http.ResponseWriter, req *http.Request, rc RequestContext) {
		r.handleError(w, req, rc, apperrors.ErrNotFound)
	})(w, req)
}

// CSRFFailure renders the error page for a form post that failed CSRF validation.
func (r *Route) CSRFFailure(w http.ResponseWriter, req *http.Request) {
	r.Logger.Warn("CSRF validation failed", "path", req.URL.Path, "reason", csrf.FailureReason(req))
	user, _ := r.Sessions.Current(req)
	r.renderError(w, req, RequestContext{SessionUser: user}, http.StatusForbidden, MsgCSRFFailure)
}

// render fills in the layout data and writes view.
func (r *Route) render(w http.ResponseWriter, req *http.Request, rc RequestContext, status int, view string, data map[string]interface{}) {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["SessionUser"] = rc.SessionUser
	data["Flashes"] = r.Sessions.Flashes(w, req)
	data["CSRFField"] = csrf.TemplateField(req)

	if err := r.Renderer.Render(w, status, view, data); err != nil {
		r.Logger.Error(ErrRenderingView, "view", view, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (r *Route) redirectWithFlash(w http.ResponseWriter, req *http.Request, target, message string) {
	if err := r.Sessions.AddFlash(w, req, message); err != nil {
		r.Logger.Error(ErrSavingFlash, "error", err)
	}
	http.Redirect(w, req, target, http.StatusSeeOther)
}

// requireUser redirects anonymous clients to the login page. It reports
// whether the handler may continue.
func (r *Route) requireUser(w http.ResponseWriter, req *http.Request, rc RequestContext) bool {
	if rc.Authenticated() {
		return true
	}
	r.redirectWithFlash(w, req, LoginPath, MsgLoginRequired)
	return false
}

// handleError maps an error kind onto a response. Unauthenticated clients
// are sent to log in; everything else gets the error page.
func (r *Route) handleError(w http.ResponseWriter, req *http.Request, rc RequestContext, err error) {
	if errors.Is(err, apperrors.ErrUnauthenticated) {
		r.redirectWithFlash(w, req, LoginPath, MsgLoginRequired)
		return
	}

	status, message := StatusFor(err)
	if status >= http.StatusInternalServerError {
		r.Logger.Error("Request failed", "path", req.URL.Path, "status", status, "error", err)
	} else {
		r.Logger.Warn("Request rejected", "path", req.URL.Path, "status", status, "error", err)
	}
	r.renderError(w, req, rc, status, message)
}

func (r *Route) renderError(w http.ResponseWriter, req *http.Request, rc RequestContext, status int, message string) {
	if r.Metrics != nil {
		r.Metrics.IncCounterVec(ErrorResponsesTotal, strconv.Itoa(status))
	}
	r.render(w, req, rc, status, ViewError, map[string]interface{}{
		"Status":     status,
		"StatusText": http.StatusText(status),
		"Message":    message,
	})
}

// StatusFor maps an error kind to its HTTP status and user facing message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrMalformedIdentifier):
		return http.StatusBadRequest, MsgBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, MsgNotFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusForbidden, MsgForbidden
	case errors.Is(err, apperrors.ErrDataStoreUnavailable):
		return http.StatusServiceUnavailable, MsgServiceUnavailable
	default:
		return http.StatusInternalServerError, MsgInternalError
	}
}

// decodeForm reads the urlencoded body into dst by its mapstructure tags.
// Repeated fields keep their first value.
func (r *Route) decodeForm(w http.ResponseWriter, req *http.Request, dst interface{}) error {
	req.Body = http.MaxBytesReader(w, req.Body, MaxFormBytes)
	if err := req.ParseForm(); err != nil {
		return fmt.Errorf("failed to parse form: %w", err)
	}

	raw := make(map[string]interface{}, len(req.PostForm))
	for key, values := range req.PostForm {
		if len(values) > 0 {
			raw[key] = values[0]
		}
	}
	if err := mapstructure.Decode(raw, dst); err != nil {
		return fmt.Errorf("failed to decode form: %w", err)
	}
	return nil
}

// validationMessage describes the first failing field of err.
func validationMessage(err error) string {
	var verrs structValidator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return MsgInvalidForm
	}

	fe := verrs[0]
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf(MsgFieldRequired, label)
	case "min":
		return fmt.Sprintf(MsgFieldTooShort, label, fe.Param())
	case "max":
		return fmt.Sprintf(MsgFieldTooLong, label, fe.Param())
	case dto.MaxBytesTag:
		return fmt.Sprintf(MsgFieldTooManyBytes, label, fe.Param())
	case dto.SingleWordTag:
		return fmt.Sprintf(MsgFieldSingleWord, label)
	case "url":
		return fmt.Sprintf(MsgFieldURL, label)
	default:
		return fmt.Sprintf(MsgFieldInvalid, label)
	}
}

// fieldLabel turns a form name such as "recipe_name" into "Recipe name".
func fieldLabel(field string) string {
	label := strings.ReplaceAll(field, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func recipePath(pattern, id string) string {
	return strings.Replace(pattern, "{"+IDParam+"}", url.PathEscape(id), 1)
}

func profilePath(username string) string {
	return strings.Replace(ProfilePath, "{username}", url.PathEscape(username), 1)
}

func (r *Route) incCounter(name string) {
	if r.Metrics != nil {
		r.Metrics.IncCounter(name)
	}
}

func (r *Route) observeSince(name string, start time.Time) {
	if r.Metrics != nil {
		r.Metrics.ObserveHistogram(name, time.Since(start).Seconds())
	}
}
