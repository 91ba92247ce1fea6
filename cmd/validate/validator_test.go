package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwebster45206/tour-guide/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `name: Temple Walk
guide: Master Lin
persona: You are Master Lin, a temple historian.
locations:
  - name: Gate
    description: The front gate
    coordinates: {x: 0, y: 0}
    target_questions: 2
    introduction: |
      Welcome to the gate.

      A) The roof
      B) The doors
  - name: Hall
    description: The main hall
    coordinates: {x: 50, y: 0}
    target_questions: 1
    introduction: |
      This is the hall.

      A) The pillars
`

func writeTour(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateFile(t *testing.T) {
	v := &TourValidator{}
	require.NoError(t, v.validateFile(writeTour(t, "temple_walk.yaml", validYAML)))
	assert.Empty(t, v.warnings)
}

func TestValidateFileRejectsNames(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"wrong extension", "temple.txt", "extension"},
		{"not snake case", "Temple-Walk.yaml", "snake_case"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &TourValidator{}
			err := v.validateFile(writeTour(t, tt.filename, validYAML))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateFileExperimentalPrefix(t *testing.T) {
	v := &TourValidator{}
	assert.NoError(t, v.validateFile(writeTour(t, "x.temple_walk.yaml", validYAML)))
}

func TestValidateFileParseErrors(t *testing.T) {
	v := &TourValidator{}
	err := v.validateFile(writeTour(t, "broken.yaml", "name: Broken\nlocations: []\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, scene.ErrEmptyTour)

	err = v.validateFile(writeTour(t, "unknown.yaml", validYAML+"extra: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid tour")
}

func TestValidateTourIntroductionErrors(t *testing.T) {
	v := &TourValidator{}
	v.validateTour(&scene.Tour{
		Name: "Walk",
		Locations: []scene.Location{
			{Name: "Gate", Introduction: "Only a body."},
			{Name: "Hall", Coordinates: scene.Vec2{X: 100}, Introduction: "A) only an option"},
		},
	})
	require.Len(t, v.errors, 2)
	assert.Contains(t, v.errors[0], "no A) to D) options")
	assert.Contains(t, v.errors[1], "no body text")
}

func TestValidateTourWarnings(t *testing.T) {
	v := &TourValidator{}
	long := strings.Repeat("word ", 12)
	v.validateTour(&scene.Tour{
		Name:  "Walk",
		Guide: "Lin",
		Locations: []scene.Location{
			{Name: "gate", Introduction: "This is question 2 of the tour.\n\nA) " + long},
			{Name: "Hall", Coordinates: scene.Vec2{X: 3, Y: 4}, Introduction: "Hall.\n\nA) Pillars"},
		},
	})
	assert.Empty(t, v.errors)

	joined := strings.Join(v.warnings, "\n")
	assert.Contains(t, joined, `consider "Gate"`)
	assert.Contains(t, joined, "mentions question numbering")
	assert.Contains(t, joined, "limit is 10")
	assert.Contains(t, joined, "5.0 units from gate")
}

func TestDefaultTourHasNoErrors(t *testing.T) {
	v := &TourValidator{}
	tour := scene.DefaultTour()
	v.validateTour(&tour)
	assert.Empty(t, v.errors)
}
