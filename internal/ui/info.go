package ui

import (
	"fmt"
	"strings"

	"github.com/jumpedia/jumpedia/internal/model"
)

// Info renders a single jump as a short multi-line message:
// name and kingdom, difficulty, the people involved, server, extras, links.
func Info(rec *model.Record) string {
	var lines []string

	location := strings.Join(rec.Location, ", ")
	lines = append(lines, fmt.Sprintf("%s - %s", rec.Name, location))

	if rec.Type != "" {
		lines = append(lines, "Jump Type: "+rec.Type)
	} else {
		lines = append(lines, "Difficulty: "+rec.Diff)
	}

	people := peopleLine(rec)
	if people != "" {
		lines = append(lines, people)
	}

	lines = append(lines, "From the "+rec.Server)
	lines = append(lines, rec.Extra...)
	lines = append(lines, rec.Links...)

	return strings.Join(lines, "\n")
}

func peopleLine(rec *model.Record) string {
	var parts []string
	if len(rec.Finder) > 0 {
		parts = append(parts, "Found by "+strings.Join(rec.Finder, ", "))
	}
	if len(rec.Taser) > 0 {
		parts = append(parts, "TASed by "+strings.Join(rec.Taser, ", "))
	}
	if len(rec.Prover) > 0 {
		parts = append(parts, "Proven by "+strings.Join(rec.Prover, ", "))
	}
	return strings.Join(parts, " / ")
}
