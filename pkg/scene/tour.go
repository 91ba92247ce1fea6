package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/tour-guide/pkg/feedback"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyTour   = errors.New("tour has no locations")
	ErrInvalidTour = errors.New("invalid tour")
)

// MaxScriptedResponses is the number of option slots in the dialogue panel.
const MaxScriptedResponses = 4

// Tour is the fixed route a guide walks with the player. Location order is
// the canonical visit order.
type Tour struct {
	Name      string         `json:"name" yaml:"name"`
	Guide     string         `json:"guide" yaml:"guide"`     // NPC display name
	Persona   string         `json:"persona" yaml:"persona"` // Opening line of the system prompt
	Focus     []string       `json:"focus,omitempty" yaml:"focus,omitempty"`
	Locations []Location     `json:"locations" yaml:"locations"`
	Opening   *OpeningScript `json:"opening,omitempty" yaml:"opening,omitempty"`

	Feedback    *feedback.Classifier `json:"feedback,omitempty" yaml:"feedback,omitempty"`
	LeakPhrases []string             `json:"leak_phrases,omitempty" yaml:"leak_phrases,omitempty"`
}

// OpeningScript is a canned first exchange that bypasses the model.
type OpeningScript struct {
	Question  string             `json:"question" yaml:"question"`
	Responses []ScriptedResponse `json:"responses" yaml:"responses"`
}

// ScriptedResponse is one canned option with the guide's reply to it.
type ScriptedResponse struct {
	Option   string        `json:"option" yaml:"option"`
	Response string        `json:"response" yaml:"response"`
	Feedback feedback.Kind `json:"feedback" yaml:"feedback"`
}

// Options returns the option slots of the script; unused slots are blank.
func (o *OpeningScript) Options() [MaxScriptedResponses]string {
	var opts [MaxScriptedResponses]string
	if o == nil {
		return opts
	}
	for i := 0; i < len(o.Responses) && i < MaxScriptedResponses; i++ {
		opts[i] = o.Responses[i].Option
	}
	return opts
}

// Validate reports every problem found in the tour, wrapped in ErrInvalidTour.
func (t *Tour) Validate() error {
	if len(t.Locations) == 0 {
		return ErrEmptyTour
	}

	var errs []error
	seen := make(map[string]int)
	for i, loc := range t.Locations {
		if strings.TrimSpace(loc.Name) == "" {
			errs = append(errs, fmt.Errorf("location %d: name is required", i))
		} else if prev, dup := seen[strings.ToLower(loc.Name)]; dup {
			errs = append(errs, fmt.Errorf("location %d: name %q duplicates location %d", i, loc.Name, prev))
		} else {
			seen[strings.ToLower(loc.Name)] = i
		}
		if loc.TargetQuestions < 0 {
			errs = append(errs, fmt.Errorf("location %d (%s): target_questions must not be negative", i, loc.Name))
		}
		if strings.TrimSpace(loc.Introduction) == "" {
			errs = append(errs, fmt.Errorf("location %d (%s): introduction is required", i, loc.Name))
		}
	}

	if t.Opening != nil {
		if strings.TrimSpace(t.Opening.Question) == "" {
			errs = append(errs, errors.New("opening: question is required"))
		}
		if n := len(t.Opening.Responses); n == 0 || n > MaxScriptedResponses {
			errs = append(errs, fmt.Errorf("opening: expected 1 to %d responses, got %d", MaxScriptedResponses, n))
		}
		for i, r := range t.Opening.Responses {
			if strings.TrimSpace(r.Option) == "" || strings.TrimSpace(r.Response) == "" {
				errs = append(errs, fmt.Errorf("opening response %d: option and response are required", i))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTour, errors.Join(errs...))
	}
	return nil
}

// Clone returns a deep copy so an engine can mutate completion flags freely.
func (t Tour) Clone() Tour {
	out := t
	out.Focus = append([]string(nil), t.Focus...)
	out.Locations = append([]Location(nil), t.Locations...)
	out.LeakPhrases = append([]string(nil), t.LeakPhrases...)
	if t.Opening != nil {
		op := *t.Opening
		op.Responses = append([]ScriptedResponse(nil), t.Opening.Responses...)
		out.Opening = &op
	}
	if t.Feedback != nil {
		fb := *t.Feedback
		out.Feedback = &fb
	}
	return out
}

// LoadTour reads a tour from a .json, .yaml or .yml file and validates it.
func LoadTour(path string) (*Tour, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tour file: %w", err)
	}

	t, err := ParseTour(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse tour %s: %w", path, err)
	}
	return t, nil
}

// ParseTour decodes tour data; ext selects the format (".json", ".yaml", ".yml").
func ParseTour(data []byte, ext string) (*Tour, error) {
	var t Tour
	switch strings.ToLower(ext) {
	case ".json":
		decoder := json.NewDecoder(strings.NewReader(string(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tour json: %w", err)
		}
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(strings.NewReader(string(data)))
		decoder.KnownFields(true)
		if err := decoder.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tour yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported tour format %q", ext)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}
