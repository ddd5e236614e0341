package page

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-recipebook/pkg/api"
	"github.com/goliatone/go-recipebook/pkg/model"
)

// Registration messages.
const (
	MsgFillAllFields    = "Fill out all fields!"
	MsgPasswordMismatch = "Passwords do not match!"
	MsgUserExists       = "User already exists!"
	MsgRegisterFailed   = "Client or Server error! View console for more details!"
	MsgNetworkFailure   = "Network failure!"
)

var (
	// ErrIncomplete is returned when a registration field is empty.
	ErrIncomplete = errors.New("page: registration fields are required")
	// ErrPasswordMismatch is returned when the repeated password differs.
	ErrPasswordMismatch = errors.New("page: passwords do not match")
)

// Registrar creates accounts. *api.Client satisfies it.
type Registrar interface {
	Register(ctx context.Context, req model.RegisterRequest) error
}

// RegisterPage submits the registration form.
type RegisterPage struct {
	registrar Registrar
	form      Form
	alerter   Alerter
	nav       Navigator
	logger    *slog.Logger
}

// NewRegisterPage builds the page. A nil logger discards.
func NewRegisterPage(registrar Registrar, form Form, alerter Alerter, nav Navigator, logger *slog.Logger) *RegisterPage {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &RegisterPage{registrar: registrar, form: form, alerter: alerter, nav: nav, logger: logger}
}

// Submit validates the form, registers and navigates to the login page.
func (p *RegisterPage) Submit(ctx context.Context) error {
	req := model.RegisterRequest{
		Username: strings.TrimSpace(p.form.Value(InputUsername)),
		Email:    strings.TrimSpace(p.form.Value(InputEmail)),
		Password: strings.TrimSpace(p.form.Value(InputPassword)),
	}
	repeat := strings.TrimSpace(p.form.Value(InputRepeatPassword))

	if req.Username == "" || req.Email == "" || req.Password == "" {
		p.alert(MsgFillAllFields)
		return ErrIncomplete
	}
	if req.Password != repeat {
		p.alert(MsgPasswordMismatch)
		return ErrPasswordMismatch
	}

	err := p.registrar.Register(ctx, req)
	switch {
	case err == nil:
		if p.nav != nil {
			p.nav.Navigate(RouteLogin)
		}
		return nil
	case errors.Is(err, api.ErrConflict):
		p.alert(MsgUserExists)
	case api.IsTransport(err):
		p.logger.Error("registration failed", "error", err)
		p.alert(MsgNetworkFailure)
	default:
		p.logger.Error("registration rejected", "status", api.StatusCode(err), "error", err)
		p.alert(MsgRegisterFailed)
	}
	return err
}

func (p *RegisterPage) alert(msg string) {
	if p.alerter != nil {
		p.alerter.Alert(msg)
	}
}
