package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/seed"
	"github.com/goliatone/go-formstate/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	asked        []string
	infoMessages []string
	decline      bool
	confirmed    []ConfirmConfig
	inputPos     int
	passPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.asked = append(s.asked, cfg.Message)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	s.asked = append(s.asked, cfg.Message+" (secret)")
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.confirmed = append(s.confirmed, cfg)
	return !s.decline, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newSignupForm(t *testing.T) *form.Form {
	t.Helper()
	f, err := form.New("signup", seed.Declaration{
		Fields: []seed.FieldDeclaration{
			{Name: "user_name", Validate: []validation.FieldValidator{validation.Required(), validation.MinLength(3)}},
			{Name: "password", Validate: []validation.FieldValidator{validation.Required()}},
		},
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func TestSession_FillSanitisesAnswers(t *testing.T) {
	f := newSignupForm(t)
	driver := &stubDriver{
		inputs:    []string{"<b>Tom</b> & Jerry"},
		passwords: []string{"hunter2"},
	}

	session := NewSession(driver, WithSecretFields("password"), WithFieldOrder("user_name"))
	if err := session.Fill(context.Background(), f); err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := map[string]string{"user_name": "Tom & Jerry", "password": "hunter2"}
	if diff := cmp.Diff(want, f.FieldValues()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"User Name", "Password (secret)"}, driver.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_RunReasksInvalidFields(t *testing.T) {
	f := newSignupForm(t)
	driver := &stubDriver{
		inputs:    []string{"ab", "abc"},
		passwords: []string{"pw"},
	}

	session := NewSession(driver, WithSecretFields("password"), WithFieldOrder("user_name", "password"))
	if err := session.Run(context.Background(), f); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := f.Field("user_name").Value; got != "abc" {
		t.Fatalf("expected corrected value, got %q", got)
	}
	if diff := cmp.Diff([]string{"User Name", "Password (secret)", "User Name"}, driver.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Invalid user_name: min length 3"}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_RunGivesUp(t *testing.T) {
	f := newSignupForm(t)
	driver := &stubDriver{
		inputs:    []string{"", ""},
		passwords: []string{"pw"},
	}

	session := NewSession(driver, WithSecretFields("password"), WithMaxRounds(2))
	err := session.Run(context.Background(), f)
	if !errors.Is(err, ErrStillInvalid) {
		t.Fatalf("expected ErrStillInvalid, got %v", err)
	}
}

func TestSession_PropagatesDriverErrors(t *testing.T) {
	f := newSignupForm(t)
	session := NewSession(&stubDriver{})
	if err := session.Fill(context.Background(), f); err == nil {
		t.Fatalf("expected driver error")
	}
}

func TestSession_ConfirmSubmitMasksSecrets(t *testing.T) {
	f := newSignupForm(t)
	f.SetField("user_name", form.Value("ada"))
	f.SetField("password", form.Value("hunter2"))
	driver := &stubDriver{decline: true}

	session := NewSession(driver, WithSecretFields("password"), WithFieldOrder("user_name"))
	ok, err := session.ConfirmSubmit(context.Background(), f)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if ok {
		t.Fatalf("expected declined confirmation")
	}
	if diff := cmp.Diff([]string{"User Name: ada", "Password: ********"}, driver.infoMessages); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	if len(driver.confirmed) != 1 || !driver.confirmed[0].Default {
		t.Fatalf("expected one confirmation defaulting to yes, got %+v", driver.confirmed)
	}
}

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"user_name":   "User Name",
		"owner.email": "Owner Email",
		"x":           "X",
		"état_civil":  "État Civil",
		"__":          "__",
	}
	for in, want := range cases {
		if got := label(in); got != want {
			t.Fatalf("label(%q) = %q, want %q", in, got, want)
		}
	}
}
