package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-recipebook/pkg/model"
	"github.com/goliatone/go-recipebook/pkg/page"
	"github.com/goliatone/go-recipebook/pkg/prompt"
)

const (
	actionList   = "List"
	actionAdd    = "Add"
	actionUpdate = "Update"
	actionDelete = "Delete"
	actionSearch = "Search"
	actionLogout = "Logout"
	actionBack   = "Back"
)

func runInteractive(ctx context.Context, e *env, args []string) error {
	if err := newFlagSet("interactive").Parse(args); err != nil {
		return err
	}
	driver := prompt.NewSurveyDriver()
	nav := &prompt.Recorder{}
	next := page.RouteRecipes

	for {
		if next == "" {
			choice, err := prompt.Choose(ctx, driver, "Go to", "Recipes", "Ingredients", "Register", "Quit")
			if err != nil {
				return quitOnAbort(err)
			}
			switch choice {
			case "Recipes":
				next = page.RouteRecipes
			case "Ingredients":
				next = page.RouteIngredients
			case "Register":
				next = page.RouteRegister
			default:
				return nil
			}
		}

		var err error
		switch next {
		case page.RouteRecipes:
			err = collectionLoop(ctx, e, driver, nav, model.Recipes)
		case page.RouteIngredients:
			err = collectionLoop(ctx, e, driver, nav, model.Ingredients)
		case page.RouteRegister:
			form := prompt.NewPromptForm(driver)
			err = form.Fill(ctx,
				prompt.Field{ID: page.InputUsername, Label: "Username"},
				prompt.Field{ID: page.InputEmail, Label: "Email"},
				prompt.Field{ID: page.InputPassword, Label: "Password", Secret: true},
				prompt.Field{ID: page.InputRepeatPassword, Label: "Repeat password", Secret: true},
			)
			if err == nil {
				_ = e.app.RegisterPage(form, e.alerter, nav).Submit(ctx)
			}
		}
		if err != nil {
			return quitOnAbort(err)
		}

		// A page that navigated decides where to go next; otherwise return to
		// the menu.
		next = ""
		if target := nav.Current(); target != "" {
			nav = &prompt.Recorder{}
			if target == page.RouteLogin {
				printNavigator{e: e}.Navigate(target)
			} else {
				next = target
			}
		}
	}
}

func collectionLoop(ctx context.Context, e *env, driver prompt.PromptDriver, nav *prompt.Recorder, col model.Collection) error {
	form := prompt.NewPromptForm(driver)
	s, err := openScreen(ctx, e, col, form, nav)
	if err != nil {
		if errors.Is(err, errReported) {
			return nil
		}
		return err
	}
	s.flush(e.stdout)

	actions := []string{actionList, actionAdd}
	if col.Updatable() {
		actions = append(actions, actionUpdate)
	}
	actions = append(actions, actionDelete, actionSearch, actionLogout, actionBack)

	for {
		choice, err := prompt.Choose(ctx, driver, fmt.Sprintf("%s:", col.Name), actions...)
		if err != nil {
			return err
		}

		switch choice {
		case actionList:
			form.Set(page.InputSearch, "")
			_, err = s.Search(ctx)
		case actionAdd:
			fields := []prompt.Field{{ID: s.inputs.addName, Label: "Name"}}
			if col.ShowInstructions {
				fields = append(fields, prompt.Field{ID: s.inputs.addInstructions, Label: "Instructions", Multiline: true})
			}
			if err = form.Fill(ctx, fields...); err == nil {
				_ = s.Add(ctx)
			}
		case actionUpdate:
			err = form.Fill(ctx,
				prompt.Field{ID: s.inputs.updateName, Label: "Name"},
				prompt.Field{ID: s.inputs.updateInstructions, Label: "New instructions", Multiline: true},
			)
			if err == nil {
				_ = s.Update(ctx, col, e.alerter)
			}
		case actionDelete:
			if err = form.Fill(ctx, prompt.Field{ID: s.inputs.deleteName, Label: "Name"}); err == nil {
				_ = s.Delete(ctx)
			}
		case actionSearch:
			if err = form.Fill(ctx, prompt.Field{ID: page.InputSearch, Label: "Search"}); err == nil {
				_, err = s.Search(ctx)
			}
		case actionLogout:
			_ = s.Logout(ctx)
		default:
			return nil
		}
		if err != nil {
			return err
		}
		if nav.Current() != "" {
			return nil
		}
		s.flush(e.stdout)
	}
}

func quitOnAbort(err error) error {
	if errors.Is(err, prompt.ErrAborted) {
		return nil
	}
	return err
}
