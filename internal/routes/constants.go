package routes

var (
	SignupDurationSecondsBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
	LoginDurationSecondsBuckets  = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
)

const (
	// Paths
	HomePath         = "/"
	RecipesPath      = "/recipes"
	SearchPath       = "/search"
	ShowRecipePath   = "/show_recipe/{id}"
	RegisterPath     = "/register"
	LoginPath        = "/login"
	ProfilePath      = "/profile/{username}"
	LogoutPath       = "/logout"
	AddRecipePath    = "/add_recipe"
	EditRecipePath   = "/edit_recipe/{id}"
	DeleteRecipePath = "/delete_recipe/{id}"
	HealthPath       = "/healthz"
	MetricsRouteAPI  = "/metrics"

	// Views
	ViewIndex      = "index"
	ViewRecipes    = "recipes"
	ViewShowRecipe = "show_recipe"
	ViewRegister   = "register"
	ViewLogin      = "login"
	ViewProfile    = "profile"
	ViewAddRecipe  = "add_recipe"
	ViewEditRecipe = "edit_recipe"
	ViewError      = "error"

	// Form fields
	QueryParam = "query"
	IDParam    = "id"

	// MaxFormBytes caps a submitted form body.
	MaxFormBytes = 1 << 20

	// Flash messages
	MsgUsernameExists    = "Username already exists"
	MsgRegistered        = "Registration Successful!"
	MsgWelcomeFormat     = "Welcome, %s"
	MsgLoginFailed       = "Incorrect Username and/or Password"
	MsgLoggedOut         = "You have been logged out"
	MsgRecipeAdded       = "Recipe Successfully Added"
	MsgRecipeUpdated     = "Recipe Successfully Updated"
	MsgRecipeDeleted     = "Recipe Successfully Deleted"
	MsgLoginRequired     = "Please log in to continue"
	MsgInvalidForm       = "The form could not be read. Please try again."
	MsgFieldRequired     = "%s is required"
	MsgFieldTooShort     = "%s must be at least %s characters"
	MsgFieldTooLong      = "%s must be at most %s characters"
	MsgFieldTooManyBytes = "%s must be at most %s bytes"
	MsgFieldSingleWord   = "%s must not contain spaces"
	MsgFieldURL          = "%s must be a valid URL"
	MsgFieldInvalid      = "%s is invalid"
	MsgHealthy           = "ok"
	MsgStoreUnhealthy    = "data store unavailable"
	ErrRenderingView     = "failed to render view"
	ErrSavingFlash       = "failed to save flash message"
	ErrStartingSession   = "failed to start session"

	// Error page messages
	MsgBadRequest         = "That link is not valid."
	MsgNotFound           = "We could not find what you were looking for."
	MsgForbidden          = "You can only change recipes you created."
	MsgServiceUnavailable = "The recipe store is unavailable. Please try again shortly."
	MsgInternalError      = "Something went wrong on our side."
	MsgCSRFFailure        = "Your form expired. Please go back, reload the page and try again."

	// metrics constants
	SignupRequestsTotal       = "signup_requests_total"
	SignupRequestsTotalHelp   = "Total number of signup requests received"
	SignupSuccessTotal        = "signup_success_total"
	SignupSuccessTotalHelp    = "Total number of successful signup requests"
	SignupErrorsTotal         = "signup_errors_total"
	SignupErrorsTotalHelp     = "Total number of errors during signup requests"
	SignupDurationSeconds     = "signup_duration_seconds"
	SignupDurationSecondsHelp = "Duration of signup requests in seconds"
	LoginRequestsTotal        = "login_requests_total"
	LoginRequestsTotalHelp    = "Total number of login requests received"
	LoginSuccessTotal         = "login_success_total"
	LoginSuccessTotalHelp     = "Total number of successful login requests"
	LoginFailedTotal          = "login_failed_total"
	LoginFailedTotalHelp      = "Total number of failed login requests"
	LoginDurationSeconds      = "login_duration_seconds"
	LoginDurationSecondsHelp  = "Duration of login requests in seconds"
	RecipeCreatedTotal        = "recipe_created_total"
	RecipeCreatedTotalHelp    = "Total number of recipes added"
	RecipeUpdatedTotal        = "recipe_updated_total"
	RecipeUpdatedTotalHelp    = "Total number of recipes updated"
	RecipeDeletedTotal        = "recipe_deleted_total"
	RecipeDeletedTotalHelp    = "Total number of recipes deleted"
	RecipeViewsTotal          = "recipe_views_total"
	RecipeViewsTotalHelp      = "Total number of recipe detail views"
	RecipeSearchesTotal       = "recipe_searches_total"
	RecipeSearchesTotalHelp   = "Total number of recipe searches"
	ErrorResponsesTotal       = "error_responses_total"
	ErrorResponsesTotalHelp   = "Total number of rendered error pages by status"
)

var ErrorResponsesLabels = []string{"status"}
