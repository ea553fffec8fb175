package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/internal/config"
	"github.com/goliatone/go-formstate/pkg/prompt"
)

const signupSeed = `
fields:
  email:
    validate: [required, email]
  user_name:
    value: ada
    validate:
      - required
      - minLength:3
`

func newTestApp(t *testing.T) *app {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signup.yaml")
	if err := os.WriteFile(path, []byte(signupSeed), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return &app{
		cfg:    config.Config{Name: "signup", Seed: path, MaxRounds: 2, LogLevel: "info"},
		logger: zap.NewNop(),
	}
}

func TestValidateReportsFieldErrors(t *testing.T) {
	a := newTestApp(t)
	var out bytes.Buffer

	err := runValidate(context.Background(), a, []string{"email=not-an-address", "user_name=al"}, &out)
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}

	var got report
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out.String())
	}
	if got.Valid {
		t.Fatalf("expected invalid report")
	}
	wantValues := map[string]string{"email": "not-an-address", "user_name": "al"}
	if diff := cmp.Diff(wantValues, got.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(got.Fields["email"]) != 1 || len(got.Fields["user_name"]) != 1 {
		t.Fatalf("expected one error per field, got %#v", got.Fields)
	}
}

func TestValidateAcceptsValidValues(t *testing.T) {
	a := newTestApp(t)
	var out bytes.Buffer

	if err := runValidate(context.Background(), a, []string{"email=ada@example.com"}, &out); err != nil {
		t.Fatalf("validate: %v\n%s", err, out.String())
	}

	var got report
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	want := report{
		Valid:  true,
		Values: map[string]string{"email": "ada@example.com", "user_name": "ada"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAssignmentsRejectsMissingName(t *testing.T) {
	if _, err := parseAssignments([]string{"=value"}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := parseAssignments([]string{"flag"}); err == nil {
		t.Fatalf("expected error for missing '='")
	}
}

type scriptedDriver struct {
	answers  []string
	info     []string
	decline  bool
	confirms int
}

func (d *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	if len(d.answers) == 0 {
		return "", prompt.ErrAborted
	}
	next := d.answers[0]
	d.answers = d.answers[1:]
	return next, nil
}

func (d *scriptedDriver) Password(ctx context.Context, cfg prompt.InputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	d.confirms++
	return !d.decline, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.info = append(d.info, msg)
	return nil
}

func TestFillWritesSubmittedValues(t *testing.T) {
	a := newTestApp(t)
	driver := &scriptedDriver{answers: []string{"<b>ada@example.com</b>", "lovelace"}}
	var out bytes.Buffer

	if err := runFill(context.Background(), a, driver, &out); err != nil {
		t.Fatalf("fill: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	want := map[string]string{"email": "ada@example.com", "user_name": "lovelace"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestFillWritesOutputFile(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Output = filepath.Join(t.TempDir(), "values.json")
	driver := &scriptedDriver{answers: []string{"ada@example.com", "lovelace"}}

	if err := runFill(context.Background(), a, driver, &bytes.Buffer{}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if _, err := os.Stat(a.cfg.Output); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if len(driver.info) == 0 || driver.info[len(driver.info)-1] != "Values written to "+a.cfg.Output {
		t.Fatalf("expected written message, got %v", driver.info)
	}
}

func TestFillDeclinedWritesNothing(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Output = filepath.Join(t.TempDir(), "values.json")
	driver := &scriptedDriver{answers: []string{"ada@example.com", "lovelace"}, decline: true}

	err := runFill(context.Background(), a, driver, &bytes.Buffer{})
	if !errors.Is(err, errDeclined) {
		t.Fatalf("expected errDeclined, got %v", err)
	}
	if driver.confirms != 1 {
		t.Fatalf("expected one confirmation, got %d", driver.confirms)
	}
	if _, err := os.Stat(a.cfg.Output); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat err %v", err)
	}
}

func TestFillAssumeYesSkipsConfirmation(t *testing.T) {
	a := newTestApp(t)
	a.cfg.AssumeYes = true
	driver := &scriptedDriver{answers: []string{"ada@example.com", "lovelace"}, decline: true}
	var out bytes.Buffer

	if err := runFill(context.Background(), a, driver, &out); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if driver.confirms != 0 {
		t.Fatalf("expected no confirmation, got %d", driver.confirms)
	}
	if out.Len() == 0 {
		t.Fatalf("expected values on stdout")
	}
}

func TestFillGivesUpAfterMaxRounds(t *testing.T) {
	a := newTestApp(t)
	driver := &scriptedDriver{answers: []string{"nope", "lovelace", "still-nope"}}

	err := runFill(context.Background(), a, driver, &bytes.Buffer{})
	if !errors.Is(err, prompt.ErrStillInvalid) {
		t.Fatalf("expected ErrStillInvalid, got %v", err)
	}
}

const contactDoc = `{
  "openapi": "3.0.3",
  "info": {"title": "contacts", "version": "1.0.0"},
  "paths": {
    "/contacts": {
      "post": {
        "operationId": "createContact",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email"],
                "properties": {
                  "email": {"type": "string", "format": "email"}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

func TestValidateFromOpenAPIOperation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")
	if err := os.WriteFile(path, []byte(contactDoc), 0o600); err != nil {
		t.Fatalf("write document: %v", err)
	}
	a := &app{
		cfg:    config.Config{Name: "contact", OpenAPI: path, Operation: "createContact"},
		logger: zap.NewNop(),
	}

	var out bytes.Buffer
	err := runValidate(context.Background(), a, nil, &out)
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid for missing required email, got %v", err)
	}

	out.Reset()
	if err := runValidate(context.Background(), a, []string{"email=ada@example.com"}, &out); err != nil {
		t.Fatalf("validate: %v\n%s", err, out.String())
	}
}
