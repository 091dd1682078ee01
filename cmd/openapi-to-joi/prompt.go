package main

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/truepill/openapi-to-joi/internal/config"
)

var errAborted = errors.New("aborted by user")

// prompter задаёт вопросы пользователю, в тестах подменяется
type prompter interface {
	Input(ctx context.Context, message, def string, required bool) (string, error)
	Confirm(ctx context.Context, message string, def bool) (bool, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Input(ctx context.Context, message, def string, required bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var opts []survey.AskOpt
	if required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}
	var out string
	if err := survey.AskOne(&survey.Input{Message: message, Default: def}, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}

// promptMissing спрашивает только то, что не задано флагами и конфигом
func promptMissing(ctx context.Context, p prompter, cfg *config.Config) error {
	var err error
	if cfg.Source == "" {
		if cfg.Source, err = p.Input(ctx, "OpenAPI document (path or URL):", "", true); err != nil {
			return err
		}
	}
	if cfg.Output == "" {
		if cfg.Output, err = p.Input(ctx, "Output file:", "schemas.ts", true); err != nil {
			return err
		}
	}
	if cfg.PrettierConfigPath == "" {
		if cfg.PrettierConfigPath, err = p.Input(ctx, "Prettier config (empty for defaults):", "", false); err != nil {
			return err
		}
	}
	if !cfg.SkipDescriptions {
		if cfg.SkipDescriptions, err = p.Confirm(ctx, "Skip descriptions?", false); err != nil {
			return err
		}
	}
	return nil
}
