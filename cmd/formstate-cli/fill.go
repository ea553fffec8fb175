package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/binding"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/prompt"
)

// errDeclined is returned when the user answers no to the submit question.
var errDeclined = errors.New("submit declined")

func newFillCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Prompt for every field and write the submitted values as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			driver := prompt.NewSurveyDriver(cmd.ErrOrStderr())
			return runFill(cmd.Context(), a, driver, cmd.OutOrStdout())
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&a.cfg.Output, "output", "o", a.cfg.Output, "output file (stdout if empty)")
	flags.StringSliceVar(&a.cfg.SecretFields, "secret", a.cfg.SecretFields, "fields read without echo")
	flags.IntVar(&a.cfg.MaxRounds, "max-rounds", a.cfg.MaxRounds, "prompt rounds before giving up on invalid input")
	flags.BoolVarP(&a.cfg.AssumeYes, "yes", "y", a.cfg.AssumeYes, "submit without asking for confirmation")
	return cmd
}

func runFill(ctx context.Context, a *app, driver prompt.Driver, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	f, err := a.newForm(ctx)
	if err != nil {
		return err
	}
	defer f.Close()

	watch := binding.Connect(f, changeLogger(a.logger))
	defer watch.Close()

	session := prompt.NewSession(driver,
		prompt.WithSecretFields(a.cfg.SecretFields...),
		prompt.WithMaxRounds(a.cfg.MaxRounds),
	)
	if err := session.Run(ctx, f); err != nil {
		return err
	}
	if !a.cfg.AssumeYes {
		ok, err := session.ConfirmSubmit(ctx, f)
		if err != nil {
			return err
		}
		if !ok {
			return errDeclined
		}
	}

	if _, err := f.Submit(ctx, writeValues(f, a.cfg.Output, stdout)); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if a.cfg.Output != "" {
		return driver.Info(ctx, fmt.Sprintf("Values written to %s", a.cfg.Output))
	}
	return nil
}

// writeValues encodes the form values as indented JSON to path, or to
// stdout when path is empty.
func writeValues(f *form.Form, path string, stdout io.Writer) form.Operation {
	return func(context.Context) (any, error) {
		values := f.FieldValues()
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode values: %w", err)
		}
		data = append(data, '\n')
		if path == "" {
			if _, err := stdout.Write(data); err != nil {
				return nil, err
			}
			return values, nil
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write output: %w", err)
		}
		return values, nil
	}
}

// changeLogger logs the names of fields whose value changed. Values are left
// out so secret answers stay out of the log.
func changeLogger(logger *zap.Logger) binding.View {
	var last map[string]string
	return func(name string, values map[string]string) {
		if last != nil {
			var changed []string
			for field, value := range values {
				if prev, ok := last[field]; !ok || prev != value {
					changed = append(changed, field)
				}
			}
			if len(changed) > 0 {
				sort.Strings(changed)
				logger.Debug("fields changed", zap.String("form", name), zap.Strings("fields", changed))
			}
		}
		last = values
	}
}
