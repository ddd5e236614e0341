package prompt

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"
)

type stubDriver struct {
	inputs    []string
	passwords []string
	textAreas []string
	selectIdx []int
	defaults  []string
	infos     []string
	inputPos  int
	passPos   int
	textPos   int
	selectPos int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.defaults = append(s.defaults, cfg.Default)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	return false, errors.New("no confirm scripted")
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func TestPromptForm_FillsEveryKind(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Soup"},
		textAreas: []string{"boil\nserve"},
		passwords: []string{"hunter2"},
	}
	form := NewPromptForm(driver)

	err := form.Fill(context.Background(),
		Field{ID: "name", Label: "Name"},
		Field{ID: "instructions", Multiline: true},
		Field{ID: "password", Secret: true},
	)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	got := map[string]string{
		"name":         form.Value("name"),
		"instructions": form.Value("instructions"),
		"password":     form.Value("password"),
	}
	want := map[string]string{"name": "Soup", "instructions": "boil\nserve", "password": "hunter2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestPromptForm_OffersPreviousValueAsDefault(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Milk"}}
	form := NewPromptForm(driver)
	form.Set("name", "Eggs")

	if err := form.Fill(context.Background(), Field{ID: "name"}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff([]string{"Eggs"}, driver.defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if form.Value("name") != "Milk" {
		t.Fatalf("unexpected value %q", form.Value("name"))
	}
}

func TestPromptForm_PropagatesDriverErrors(t *testing.T) {
	form := NewPromptForm(&stubDriver{})
	if err := form.Fill(context.Background(), Field{ID: "name"}); err == nil {
		t.Fatalf("expected error when the driver has no answer")
	}
}

func TestMemoryForm_Clear(t *testing.T) {
	form := NewMemoryForm(map[string]string{"a": "1", "b": "2"})
	form.Clear("a")
	if form.Value("a") != "" || form.Value("b") != "2" {
		t.Fatalf("unexpected values after clear: %q %q", form.Value("a"), form.Value("b"))
	}
}

func TestAlerter_WritesLines(t *testing.T) {
	var buf bytes.Buffer
	alerter := NewAlerter(&buf, false)
	alerter.Alert("Recipe not found.")
	alerter.Alert("Failed to fetch recipes.")

	if got, want := buf.String(), "Recipe not found.\nFailed to fetch recipes.\n"; got != want {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	rec.Alert("one")
	rec.Navigate("recipes")
	rec.Navigate("login")

	if diff := cmp.Diff([]string{"one"}, rec.Alerts()); diff != "" {
		t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
	}
	if rec.Current() != "login" || len(rec.Pages()) != 2 {
		t.Fatalf("unexpected navigation %v", rec.Pages())
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	if !errors.Is(translateSurveyErr(terminal.InterruptErr), ErrAborted) {
		t.Fatalf("interrupt should map to ErrAborted")
	}
	other := errors.New("boom")
	if translateSurveyErr(other) != other {
		t.Fatalf("other errors pass through")
	}
}

func TestChoose(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1, 5}}
	got, err := Choose(context.Background(), driver, "Action", "list", "add")
	if err != nil || got != "add" {
		t.Fatalf("unexpected choice %q %v", got, err)
	}
	if _, err := Choose(context.Background(), driver, "Action", "list", "add"); err == nil {
		t.Fatalf("expected out of range error")
	}
}
