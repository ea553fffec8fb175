package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formstate/pkg/form"
)

// errInvalid is returned after the report is printed so the process exits non-zero.
var errInvalid = errors.New("form is invalid")

type report struct {
	Valid    bool                `json:"valid"`
	Values   map[string]string   `json:"values"`
	Fields   map[string][]string `json:"fields,omitempty"`
	Warnings map[string][]string `json:"warnings,omitempty"`
	Errors   []string            `json:"errors,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	var assignments []string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate supplied field values and print a JSON report",
		Long: `validate seeds the form, applies every --set name=value pair,
runs the declared validators and prints the result. The exit status is
non-zero when any field or form level error remains.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), a, assignments, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "field assignment as name=value (repeatable)")
	return cmd
}

func runValidate(ctx context.Context, a *app, assignments []string, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	values, err := parseAssignments(assignments)
	if err != nil {
		return err
	}

	f, err := a.newForm(ctx)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, kv := range values {
		f.SetField(kv[0], form.Value(kv[1]))
	}
	f.ClearErrors()
	valid := f.Validate()

	out := report{
		Valid:    valid,
		Values:   f.FieldValues(),
		Fields:   nonEmpty(f.FieldErrors()),
		Warnings: nonEmpty(f.FieldWarnings()),
		Errors:   f.Errors(),
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if !valid {
		return errInvalid
	}
	return nil
}

// parseAssignments keeps flag order so later assignments win.
func parseAssignments(raw []string) ([][2]string, error) {
	out := make([][2]string, 0, len(raw))
	for _, item := range raw {
		name, value, ok := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected name=value", item)
		}
		out = append(out, [2]string{name, value})
	}
	return out, nil
}

func nonEmpty(in map[string][]string) map[string][]string {
	out := make(map[string][]string)
	for name, msgs := range in {
		if len(msgs) > 0 {
			out[name] = msgs
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
