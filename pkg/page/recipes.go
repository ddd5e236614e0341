package page

import (
	"context"

	"github.com/goliatone/go-recipebook/pkg/controller"
	"github.com/goliatone/go-recipebook/pkg/model"
	"github.com/goliatone/go-recipebook/pkg/session"
)

// RecipesPage is open to everyone. The logout button and the admin link are
// only shown when the session allows them.
type RecipesPage struct {
	collectionPage
	controls session.Controls
}

// NewRecipesPage binds the recipe controller to a form.
func NewRecipesPage(ctrl *controller.Controller, form Form, store session.Store, nav Navigator) *RecipesPage {
	return &RecipesPage{collectionPage: collectionPage{ctrl: ctrl, form: form, store: store, nav: nav}}
}

// Load evaluates control visibility once and fetches the recipes.
func (p *RecipesPage) Load(ctx context.Context) (session.Controls, error) {
	p.controls = session.Visibility(p.store)
	return p.controls, p.ctrl.Read(ctx)
}

// Controls reports the visibility computed by the last Load.
func (p *RecipesPage) Controls() session.Controls {
	return p.controls
}

func (p *RecipesPage) Add(ctx context.Context) error {
	err := p.ctrl.Create(ctx, model.Fields{
		model.FieldName:         p.form.Value(InputAddRecipeName),
		model.FieldInstructions: p.form.Value(InputAddRecipeInstructions),
	})
	if applied(err) {
		p.form.Clear(InputAddRecipeName, InputAddRecipeInstructions)
	}
	return err
}

func (p *RecipesPage) Update(ctx context.Context) error {
	err := p.ctrl.Update(ctx, p.form.Value(InputUpdateRecipeName), model.Fields{
		model.FieldInstructions: p.form.Value(InputUpdateRecipeInstructions),
	})
	if applied(err) {
		p.form.Clear(InputUpdateRecipeName, InputUpdateRecipeInstructions)
	}
	return err
}

func (p *RecipesPage) Delete(ctx context.Context) error {
	err := p.ctrl.Delete(ctx, p.form.Value(InputDeleteRecipeName))
	if applied(err) {
		p.form.Clear(InputDeleteRecipeName)
	}
	return err
}

// Search filters the loaded recipes by the search input.
func (p *RecipesPage) Search(ctx context.Context) ([]model.Item, error) {
	return p.search(ctx)
}

func (p *RecipesPage) Logout(ctx context.Context) error {
	return p.logout(ctx)
}
