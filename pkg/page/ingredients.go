package page

import (
	"context"

	"github.com/goliatone/go-recipebook/pkg/controller"
	"github.com/goliatone/go-recipebook/pkg/model"
	"github.com/goliatone/go-recipebook/pkg/session"
)

// IngredientsPage is restricted to admins.
type IngredientsPage struct {
	collectionPage
	alerter Alerter
}

// NewIngredientsPage binds the ingredient controller to a form. alerter
// receives the access denied message.
func NewIngredientsPage(ctrl *controller.Controller, form Form, store session.Store, nav Navigator, alerter Alerter) *IngredientsPage {
	return &IngredientsPage{
		collectionPage: collectionPage{ctrl: ctrl, form: form, store: store, nav: nav},
		alerter:        alerter,
	}
}

// Load checks the admin guard once, before any fetch. Without admin rights it
// alerts, navigates to the recipes page and returns session.ErrAccessDenied.
func (p *IngredientsPage) Load(ctx context.Context) error {
	if err := session.RequireAdmin(p.store); err != nil {
		if p.alerter != nil {
			p.alerter.Alert(MsgAccessDenied)
		}
		if p.nav != nil {
			p.nav.Navigate(RouteRecipes)
		}
		return err
	}
	return p.ctrl.Read(ctx)
}

func (p *IngredientsPage) Add(ctx context.Context) error {
	err := p.ctrl.Create(ctx, model.Fields{
		model.FieldName: p.form.Value(InputAddIngredientName),
	})
	if applied(err) {
		p.form.Clear(InputAddIngredientName)
	}
	return err
}

func (p *IngredientsPage) Delete(ctx context.Context) error {
	err := p.ctrl.Delete(ctx, p.form.Value(InputDeleteIngredientName))
	if applied(err) {
		p.form.Clear(InputDeleteIngredientName)
	}
	return err
}

// Search filters the loaded ingredients by the search input.
func (p *IngredientsPage) Search(ctx context.Context) ([]model.Item, error) {
	return p.search(ctx)
}

func (p *IngredientsPage) Logout(ctx context.Context) error {
	return p.logout(ctx)
}
