package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-recipebook"
	"github.com/goliatone/go-recipebook/pkg/model"
	"github.com/goliatone/go-recipebook/pkg/page"
	"github.com/goliatone/go-recipebook/pkg/prompt"
	"github.com/goliatone/go-recipebook/pkg/render"
)

// collectionPage is the part of the recipe and ingredient pages both share.
type collectionPage interface {
	Add(ctx context.Context) error
	Delete(ctx context.Context) error
	Search(ctx context.Context) ([]model.Item, error)
	Logout(ctx context.Context) error
}

// screen is a loaded page plus the list it currently shows.
type screen struct {
	collectionPage
	recipes *page.RecipesPage
	inputs  inputIDs
	out     *render.Buffer
}

// Update is only offered by the recipe page.
func (s *screen) Update(ctx context.Context, col model.Collection, alerter page.Alerter) error {
	if s.recipes == nil {
		alerter.Alert(col.Messages.Unsupported)
		return errReported
	}
	return s.recipes.Update(ctx)
}

func (s *screen) flush(w io.Writer) {
	_, _ = io.WriteString(w, s.out.String())
}

type inputIDs struct {
	addName, addInstructions, updateName, updateInstructions, deleteName string
}

var recipeInputs = inputIDs{
	addName:            page.InputAddRecipeName,
	addInstructions:    page.InputAddRecipeInstructions,
	updateName:         page.InputUpdateRecipeName,
	updateInstructions: page.InputUpdateRecipeInstructions,
	deleteName:         page.InputDeleteRecipeName,
}

var ingredientInputs = inputIDs{
	addName:    page.InputAddIngredientName,
	deleteName: page.InputDeleteIngredientName,
}

// openScreen builds and loads the page of col. A failed load has already been
// alerted.
func openScreen(ctx context.Context, e *env, col model.Collection, form page.Form, nav page.Navigator) (*screen, error) {
	s := &screen{out: &render.Buffer{}, inputs: recipeInputs}
	if col.Name == model.Ingredients.Name {
		p, err := e.app.IngredientsPage(form, s.out, e.alerter, nav)
		if err != nil {
			return nil, err
		}
		s.collectionPage, s.inputs = p, ingredientInputs
		if err := p.Load(ctx); err != nil {
			return nil, reported(err)
		}
		return s, nil
	}

	p, err := e.app.RecipesPage(form, s.out, e.alerter, nav)
	if err != nil {
		return nil, err
	}
	s.collectionPage, s.recipes = p, p
	if _, err := p.Load(ctx); err != nil {
		return nil, reported(err)
	}
	return s, nil
}

func runCollection(name string) func(context.Context, *env, []string) error {
	return func(ctx context.Context, e *env, args []string) error {
		col, err := recipebook.Collection(name)
		if err != nil {
			return err
		}
		action := "list"
		if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
			action, args = args[0], args[1:]
		}

		fs := newFlagSet(name + " " + action)
		itemName := fs.String("name", "", "item name")
		instructions := fs.String("instructions", "", "recipe instructions")
		term := fs.String("q", "", "search term")
		if err := fs.Parse(args); err != nil {
			return err
		}

		form := prompt.NewMemoryForm(map[string]string{page.InputSearch: *term})
		s, err := openScreen(ctx, e, col, form, printNavigator{e: e})
		if err != nil {
			return err
		}
		defer s.flush(e.stdout)

		switch action {
		case "list":
			return nil
		case "add":
			form.Set(s.inputs.addName, *itemName)
			form.Set(s.inputs.addInstructions, *instructions)
			return reported(s.Add(ctx))
		case "update":
			form.Set(s.inputs.updateName, *itemName)
			form.Set(s.inputs.updateInstructions, *instructions)
			return reported(s.Update(ctx, col, e.alerter))
		case "delete":
			form.Set(s.inputs.deleteName, *itemName)
			return reported(s.Delete(ctx))
		case "search":
			_, err := s.Search(ctx)
			return err
		default:
			return fmt.Errorf("unknown action %q (want list, add, update, delete or search)", action)
		}
	}
}

// reported marks errors the pages already alerted.
func reported(err error) error {
	if err == nil || errors.Is(err, errReported) {
		return err
	}
	return errors.Join(errReported, err)
}
