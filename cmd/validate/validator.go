package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/tour-guide/pkg/dialogue"
	"github.com/jwebster45206/tour-guide/pkg/scene"
	"github.com/jwebster45206/tour-guide/pkg/textfilter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TourValidator checks a tour file. Errors fail validation; warnings point at
// content the guide will trim or that players will find awkward.
type TourValidator struct {
	errors   []string
	warnings []string
	opts     scene.Options
}

var (
	validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
	titleCaser         = cases.Title(language.English)
)

func (v *TourValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(baseName))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("tour file must have .json, .yaml or .yml extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	if !isValidTourFilename(nameWithoutExt) {
		return fmt.Errorf("tour filename '%s' must be lowercase snake_case (e.g., temple_walk.yaml, not Temple-Walk.yaml)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	t, err := scene.ParseTour(data, ext)
	if err != nil {
		return fmt.Errorf("file %s is not a valid tour: %w", filename, err)
	}

	v.validateTour(t)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *TourValidator) validateTour(t *scene.Tour) {
	v.errors = nil
	v.warnings = nil
	if v.opts == (scene.Options{}) {
		v.opts = scene.DefaultOptions()
	}

	if strings.TrimSpace(t.Name) == "" {
		v.addError("tour name is required")
	}
	if strings.TrimSpace(t.Guide) == "" {
		v.addWarning("guide name is empty, the default guide will be used")
	}

	scrubber := textfilter.NewLeakScrubber(t.LeakPhrases...)
	for i, loc := range t.Locations {
		label := fmt.Sprintf("location %d (%s)", i, loc.Name)

		if loc.Name == strings.ToLower(loc.Name) {
			v.addWarning(fmt.Sprintf("%s name is shown in the HUD as written, consider %q", label, titleCaser.String(loc.Name)))
		}
		v.validateIntroduction(label, loc.Introduction, scrubber)

		if i == 0 {
			continue
		}
		prev := t.Locations[i-1]
		if d := prev.Coordinates.Distance(loc.Coordinates); d <= v.opts.TransitionDistance {
			v.addWarning(fmt.Sprintf("%s is %.1f units from %s, inside the %g unit transition distance",
				label, d, prev.Name, v.opts.TransitionDistance))
		}
	}

	if t.Opening != nil {
		for i, r := range t.Opening.Responses {
			if n := textfilter.CountWords(r.Option); n > v.opts.MaxOptionWords {
				v.addWarning(fmt.Sprintf("opening response %d option has %d words, limit is %d", i, n, v.opts.MaxOptionWords))
			}
			if scrubber.ContainsLeak(r.Response) {
				v.addWarning(fmt.Sprintf("opening response %d mentions question numbering", i))
			}
		}
	}
}

func (v *TourValidator) validateIntroduction(label, intro string, scrubber *textfilter.LeakScrubber) {
	turn := dialogue.ParseTurn(intro)
	if turn.Body == "" {
		v.addError(fmt.Sprintf("%s introduction has no body text", label))
	}
	if !turn.HasOptions() {
		v.addError(fmt.Sprintf("%s introduction has no A) to D) options", label))
	}
	if n := textfilter.CountWords(turn.Body); n > v.opts.MaxQuestionWords {
		v.addWarning(fmt.Sprintf("%s introduction has %d words, limit is %d", label, n, v.opts.MaxQuestionWords))
	}
	for _, opt := range turn.Options {
		if opt == "" {
			continue
		}
		if n := textfilter.CountWords(opt); n > v.opts.MaxOptionWords {
			v.addWarning(fmt.Sprintf("%s option %q has %d words, limit is %d", label, opt, n, v.opts.MaxOptionWords))
		}
	}
	if scrubber.ContainsLeak(intro) {
		v.addWarning(fmt.Sprintf("%s introduction mentions question numbering", label))
	}
}

func (v *TourValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func (v *TourValidator) addWarning(msg string) {
	v.warnings = append(v.warnings, "  ! "+msg)
}

func isValidTourFilename(name string) bool {
	// Allow 'x.' prefix for experimental tours
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}
