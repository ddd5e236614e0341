package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-recipebook/pkg/model"
	"github.com/goliatone/go-recipebook/pkg/page"
	"github.com/goliatone/go-recipebook/pkg/prompt"
	"github.com/goliatone/go-recipebook/pkg/session"
)

// printNavigator reports page switches on the terminal.
type printNavigator struct {
	e *env
}

func (n printNavigator) Navigate(target string) {
	switch target {
	case page.RouteLogin:
		fmt.Fprintln(n.e.stderr, "Signed out. Log in again and store the token with `recipebook session set`.")
	default:
		fmt.Fprintf(n.e.stderr, "Continue with `recipebook %s`.\n", target)
	}
}

func runRegister(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("register")
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (prompted when empty)")
	repeat := fs.String("repeat-password", "", "repeated password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := prompt.NewPromptForm(prompt.NewSurveyDriver())
	form.Set(page.InputUsername, *username)
	form.Set(page.InputEmail, *email)
	form.Set(page.InputPassword, *password)
	form.Set(page.InputRepeatPassword, *repeat)

	var missing []prompt.Field
	if *username == "" {
		missing = append(missing, prompt.Field{ID: page.InputUsername, Label: "Username"})
	}
	if *email == "" {
		missing = append(missing, prompt.Field{ID: page.InputEmail, Label: "Email"})
	}
	if *password == "" {
		missing = append(missing,
			prompt.Field{ID: page.InputPassword, Label: "Password", Secret: true},
			prompt.Field{ID: page.InputRepeatPassword, Label: "Repeat password", Secret: true},
		)
	}
	if len(missing) > 0 {
		if err := form.Fill(ctx, missing...); err != nil {
			return err
		}
	}

	p := e.app.RegisterPage(form, e.alerter, printNavigator{e: e})
	return reported(p.Submit(ctx))
}

func runLogout(ctx context.Context, e *env, args []string) error {
	if err := newFlagSet("logout").Parse(args); err != nil {
		return err
	}
	ctrl, err := e.app.Controller(model.Recipes, nil, e.alerter)
	if err != nil {
		return err
	}
	err = ctrl.Logout(ctx, e.app.Store, printNavigator{e: e})
	if storeErr := sessionFileErr(e); storeErr != nil {
		return errors.Join(err, storeErr)
	}
	return reported(err)
}

func runSession(_ context.Context, e *env, args []string) error {
	action := "show"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		action, args = args[0], args[1:]
	}

	fs := newFlagSet("session " + action)
	token := fs.String("token", "", "bearer token obtained at login (read from $RECIPEBOOK_TOKEN when empty)")
	admin := fs.Bool("admin", false, "mark the session as admin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch action {
	case "set":
		value := strings.TrimSpace(*token)
		if value == "" {
			value = strings.TrimSpace(os.Getenv("RECIPEBOOK_TOKEN"))
		}
		if value == "" {
			return errors.New("a token is required")
		}
		return session.Save(e.app.Store, session.Credentials{Token: value, IsAdmin: *admin})
	case "show":
		creds := session.Read(e.app.Store)
		if err := sessionFileErr(e); err != nil {
			return fmt.Errorf("%w (run `session clear` or `session set` to replace it)", err)
		}
		if !creds.Authenticated() {
			fmt.Fprintln(e.stdout, "not signed in")
			return nil
		}
		fmt.Fprintf(e.stdout, "token: %s\nadmin: %t\n", mask(creds.Token), creds.IsAdmin)
		if fileStore, ok := e.app.Store.(*session.FileStore); ok {
			fmt.Fprintf(e.stdout, "file: %s\n", fileStore.Path())
		}
		return nil
	case "clear":
		return session.Clear(e.app.Store)
	default:
		return fmt.Errorf("unknown action %q (want set, show or clear)", action)
	}
}

// sessionFileErr reports a session file that could not be read on the last
// lookup.
func sessionFileErr(e *env) error {
	if fileStore, ok := e.app.Store.(*session.FileStore); ok {
		return fileStore.Err()
	}
	return nil
}

func mask(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
