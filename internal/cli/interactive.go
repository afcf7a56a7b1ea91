package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/garyjia/docsynth/internal/config"
	"github.com/garyjia/docsynth/internal/models"
)

// askGenerateOptions prompts for the batch surface, prefilled from cfg
func askGenerateOptions(opts *generateOptions, cfg *config.Config) error {
	classNames := make([]string, len(models.AllClasses))
	for i, c := range models.AllClasses {
		classNames[i] = string(c)
	}

	var selected []string
	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Document classes:",
		Options: classNames,
		Default: classNames,
	}, &selected, survey.WithValidator(survey.MinItems(1))); err != nil {
		return fmt.Errorf("failed to read classes: %w", err)
	}

	var countStr string
	if err := survey.AskOne(&survey.Input{
		Message: "Documents per class:",
		Default: strconv.Itoa(defaultCount(cfg)),
	}, &countStr, survey.WithValidator(nonNegativeInt)); err != nil {
		return fmt.Errorf("failed to read count: %w", err)
	}

	output := cfg.Output.Dir
	if err := survey.AskOne(&survey.Input{
		Message: "Output directory:",
		Default: output,
	}, &output, survey.WithValidator(survey.Required)); err != nil {
		return fmt.Errorf("failed to read output directory: %w", err)
	}

	seedStr := strconv.FormatUint(cfg.Generator.Seed, 10)
	if err := survey.AskOne(&survey.Input{
		Message: "Random seed (0 for a fresh one):",
		Default: seedStr,
	}, &seedStr, survey.WithValidator(validSeed)); err != nil {
		return fmt.Errorf("failed to read seed: %w", err)
	}

	opts.count, _ = strconv.Atoi(strings.TrimSpace(countStr))
	opts.seed, _ = strconv.ParseUint(strings.TrimSpace(seedStr), 10, 64)
	opts.output = output
	opts.class = models.ClassAll
	if len(selected) == 1 {
		opts.class = selected[0]
	} else if len(selected) < len(classNames) {
		// two of three: generate them and zero the third
		return selectSubset(opts, cfg, selected)
	}
	return nil
}

func selectSubset(opts *generateOptions, cfg *config.Config, selected []string) error {
	counts := make(map[string]int, len(models.AllClasses))
	for _, c := range models.AllClasses {
		counts[string(c)] = 0
	}
	for _, name := range selected {
		counts[name] = opts.count
	}
	cfg.Generator.Counts = counts
	opts.class = ""
	opts.count = -1
	return nil
}

func defaultCount(cfg *config.Config) int {
	for _, c := range models.AllClasses {
		if n, ok := cfg.Generator.Counts[string(c)]; ok {
			return n
		}
	}
	return 0
}

func nonNegativeInt(ans interface{}) error {
	s, _ := ans.(string)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n < 0 {
		return errors.New("count must not be negative")
	}
	return nil
}

func validSeed(ans interface{}) error {
	s, _ := ans.(string)
	if _, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64); err != nil {
		return errors.New("enter a non-negative whole number")
	}
	return nil
}
