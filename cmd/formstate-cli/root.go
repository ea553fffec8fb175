package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/internal/config"
	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/seed"
	"github.com/goliatone/go-formstate/pkg/store"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// app carries the resolved configuration shared by every subcommand.
type app struct {
	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cfg, loadErr := config.Load()
	if loadErr != nil {
		cfg = config.Config{Name: "form", MaxRounds: 3, LogLevel: "info"}
	}
	a.cfg = cfg

	root := &cobra.Command{
		Use:   "formstate",
		Short: "Fill and validate forms from seed files or OpenAPI operations",
		Long: `formstate builds a form from a YAML seed file or an OpenAPI request body,
then prompts for its fields or validates supplied values against the declared rules.

Every flag can also be set through FORMSTATE_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if loadErr != nil {
				return loadErr
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			logger, err := a.cfg.Logger()
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.Name, "name", a.cfg.Name, "form name")
	flags.StringVar(&a.cfg.Seed, "seed", a.cfg.Seed, "YAML seed file")
	flags.StringVar(&a.cfg.OpenAPI, "openapi", a.cfg.OpenAPI, "OpenAPI document path or URL")
	flags.StringVar(&a.cfg.Operation, "operation", a.cfg.Operation, "operation id whose request body seeds the form")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&a.cfg.Dev, "dev", a.cfg.Dev, "human readable development logging")

	root.AddCommand(newFillCmd(a), newValidateCmd(a))
	return root
}

func (a *app) declaration(ctx context.Context) (seed.Declaration, error) {
	catalog := validation.NewCatalog()

	if location := strings.TrimSpace(a.cfg.OpenAPI); location != "" {
		src, err := openapi.ParseSource(location)
		if err != nil {
			return seed.Declaration{}, err
		}
		reader := openapi.NewReader(
			openapi.WithHTTPClient(http.DefaultClient),
			openapi.WithRequestTimeout(30*time.Second),
		)
		raw, err := reader.Read(ctx, src)
		if err != nil {
			return seed.Declaration{}, err
		}
		return openapi.DeclarationFromOperation(ctx, raw, a.cfg.Operation, catalog)
	}

	raw, err := os.ReadFile(strings.TrimSpace(a.cfg.Seed))
	if err != nil {
		return seed.Declaration{}, fmt.Errorf("read seed file: %w", err)
	}
	return seed.Decode(raw, catalog)
}

func (a *app) newForm(ctx context.Context, options ...form.Option) (*form.Form, error) {
	decl, err := a.declaration(ctx)
	if err != nil {
		return nil, err
	}
	st := store.New(
		store.WithLogger(a.logger),
		store.WithMiddleware(store.LoggingMiddleware(a.logger)),
	)
	options = append([]form.Option{form.WithStore(st), form.WithLogger(a.logger)}, options...)
	return form.New(a.cfg.Name, decl, options...)
}
