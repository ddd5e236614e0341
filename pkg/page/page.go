// Package page binds forms to controllers the way the recipe, ingredient and
// registration screens do: inputs are read by element id, failures are
// alerted and successful changes clear their inputs.
package page

import (
	"context"
	"errors"

	"github.com/goliatone/go-recipebook/pkg/controller"
	"github.com/goliatone/go-recipebook/pkg/model"
	"github.com/goliatone/go-recipebook/pkg/session"
)

// Route names used with a Navigator.
const (
	RouteLogin       = controller.LoginPage
	RouteRecipes     = "recipes"
	RouteIngredients = "ingredients"
	RouteRegister    = "register"
)

// Input ids shared by the pages.
const (
	InputSearch = "search-input"

	InputAddRecipeName            = "add-recipe-name-input"
	InputAddRecipeInstructions    = "add-recipe-instructions-input"
	InputUpdateRecipeName         = "update-recipe-name-input"
	InputUpdateRecipeInstructions = "update-recipe-instructions-input"
	InputDeleteRecipeName         = "delete-recipe-name-input"

	InputAddIngredientName    = "add-ingredient-name-input"
	InputDeleteIngredientName = "delete-ingredient-name-input"

	InputUsername       = "username-input"
	InputEmail          = "email-input"
	InputPassword       = "password-input"
	InputRepeatPassword = "repeat-password-input"
)

// MsgAccessDenied is alerted when an admin page is opened without rights.
const MsgAccessDenied = "Access denied. Admins only."

// Form reads and clears inputs by id.
type Form interface {
	Value(id string) string
	Clear(ids ...string)
}

// Alerter and Navigator are shared with the controller.
type (
	Alerter   = controller.Alerter
	Navigator = controller.Navigator
)

// collectionPage is the part common to the recipe and ingredient pages.
type collectionPage struct {
	ctrl  *controller.Controller
	form  Form
	store session.Store
	nav   Navigator
}

func (p collectionPage) search(ctx context.Context) ([]model.Item, error) {
	return p.ctrl.Search(ctx, p.form.Value(InputSearch))
}

func (p collectionPage) logout(ctx context.Context) error {
	return p.ctrl.Logout(ctx, p.store, p.nav)
}

// applied reports whether the server accepted a change, even when the read
// that followed it failed.
func applied(err error) bool {
	return err == nil || errors.Is(err, controller.ErrRefreshFailed)
}
