package routes

import (
	"fmt"
	"net/http"

	"github.com/haguru/cookbook/internal/apperrors"
	"github.com/haguru/cookbook/internal/models"
	"github.com/haguru/cookbook/internal/models/dto"

	"github.com/go-chi/chi/v5"
)

func (r *Route) Home(w http.ResponseWriter, req *http.Request, rc RequestContext) {
	r.render(w, req, rc, http.StatusOK, ViewIndex, nil)
}

// Recipes lists every recipe, or searches when the query parameter is set.
func (r *Route) Recipes(w http.ResponseWriter, req *http.Request, rc RequestContext) {
	query := req.URL.Query().Get(QueryParam)
	if query != "" {
		r.incCounter(RecipeSearchesTotal)
	}

	recipes, err := r.RecipeService.ListRecipes(req.Context(), query)
	if err != nil {
		r.handleError(w, req, rc, err)
		return
	}

	r.render(w, req, rc, http.StatusOK, ViewRecipes, map[string]interface{}{
		"Recipes": recipes,
		"Query":   query,
	})
}

// Search runs the submitted query as is, including an empty one.
func (r *Route) Search(w http.ResponseWriter, req *http.Request, rc RequestContext) {
	req.Body = http.MaxBytesReader(w, req.Body, MaxFormBytes)
	query := req.FormValue(QueryParam)
	r.incCounter(RecipeSearchesTotal)

	recipes, err := r.RecipeService.SearchRecipes(req.Context(), query)
	if err != nil {
		r.handleError(w, req, rc, err)
		return
	}

	r.render(w, req, rc, http.StatusOK, ViewRecipes, map[string]interface{}{
		"Recipes": recipes,
		"Query":   query,
	})
}

// ShowRecipe renders one recipe and counts the view.
func (r *Route) ShowRecipe(w http.ResponseWriter, req *http.Request, rc RequestContext) {
	recipe, categories, err := r.RecipeService.ViewRecipe(req.Context(), chi.URLParam(req, IDParam))
	if err != nil {
		r.handleError(w, req, rc, err)
		return
	}
	r.incCounter(RecipeViewsTotal)

	r.render(w, req, rc, http.StatusOK, ViewShowRecipe, map[string]interface{}{
		"Recipe":     recipe,
		"Categories": categories,
	})
}

// AddRecipe shows the empty form and stores a new recipe on POST.
func (r *Route) AddRecipe(w http.ResponseWriter, req *http.Request, rc RequestContext) {
	if !r.requireUser(w, req, rc) {
		return
	}

	if req.Method != http.MethodPost {
		r.renderRecipeForm(w, req, rc, ViewAddRecipe, nil, models.RecipeInput{})
		return
	}

	form, ok := r.readRecipeForm(w, req, AddRecipePath)
	if !ok {
		return
	}

	if _, err := r.RecipeService.AddRecipe(req.Context(), rc.SessionUser, form.ToInput()); err != nil {
		r.handleError(w, req, rc, err)
		return
	}

	r.incCounter(RecipeCreatedTotal)
	r.redirectWithFlash(w, req, RecipesPath, MsgRecipeAdded)
}

// EditRecipe shows the prefilled form to the owner and replaces the recipe
// on POST, then returns to the form.
func (r *Route) EditRecipe(w http.ResponseWriter, req *http.Request, rc RequestContext) {
	if !r.requireUser(w, req, rc) {
		return
	}
	id := chi.URLParam(req, IDParam)

	if req.Method != http.MethodPost {
		recipe, err := r.RecipeService.GetRecipe(req.Context(), id)
		if err != nil {
			r.handleError(w, req, rc, err)
			return
		}
		if !recipe.OwnedBy(rc.SessionUser) {
			r.handleError(w, req, rc, fmt.Errorf("%w: recipe %s", apperrors.ErrUnauthorized, id))
			return
		}
		r.renderRecipeForm(w, req, rc, ViewEditRecipe, recipe, recipe.Input())
		return
	}

	editPath := recipePath(EditRecipePath, id)
	form, ok := r.readRecipeForm(w, req, editPath)
	if !ok {
		return
	}

	if err := r.RecipeService.UpdateRecipe(req.Context(), rc.SessionUser, id, form.ToInput()); err != nil {
		r.handleError(w, req, rc, err)
		return
	}

	r.incCounter(RecipeUpdatedTotal)
	r.redirectWithFlash(w, req, editPath, MsgRecipeUpdated)
}

// DeleteRecipe removes the owner's recipe. An already deleted recipe
// still reports success.
func (r *Route) DeleteRecipe(w http.ResponseWriter, req *http.Request, rc RequestContext) {
	if !r.requireUser(w, req, rc) {
		return
	}

	if err := r.RecipeService.DeleteRecipe(req.Context(), rc.SessionUser, chi.URLParam(req, IDParam)); err != nil {
		r.handleError(w, req, rc, err)
		return
	}

	r.incCounter(RecipeDeletedTotal)
	r.redirectWithFlash(w, req, RecipesPath, MsgRecipeDeleted)
}

// readRecipeForm decodes and validates the recipe form. On failure it has
// already redirected back to formPath.
func (r *Route) readRecipeForm(w http.ResponseWriter, req *http.Request, formPath string) (*dto.RecipeRequestDTO, bool) {
	form := &dto.RecipeRequestDTO{}
	if err := r.decodeForm(w, req, form); err != nil {
		r.Logger.Warn("Invalid recipe form", "error", err)
		r.redirectWithFlash(w, req, formPath, MsgInvalidForm)
		return nil, false
	}
	if err := r.validator.Struct(form); err != nil {
		r.redirectWithFlash(w, req, formPath, validationMessage(err))
		return nil, false
	}
	return form, true
}

func (r *Route) renderRecipeForm(w http.ResponseWriter, req *http.Request, rc RequestContext, view string, recipe *models.Recipe, form models.RecipeInput) {
	categories, err := r.RecipeService.ListCategories(req.Context())
	if err != nil {
		r.handleError(w, req, rc, err)
		return
	}

	data := map[string]interface{}{
		"Categories": categories,
		"Form":       form,
	}
	if recipe != nil {
		data["Recipe"] = recipe
	}
	r.render(w, req, rc, http.StatusOK, view, data)
}
