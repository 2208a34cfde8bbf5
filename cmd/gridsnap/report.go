package main

import (
	"io"
	"text/template"

	"github.com/plus3/buildgrid/building"
	"github.com/plus3/buildgrid/grid"
	"github.com/plus3/buildgrid/placement"
	"github.com/plus3/buildgrid/session"
)

type Report struct {
	Level   string
	Steps   []StepResult
	Economy placement.Economy

	Buildable, Occupied, Influence, Claimed int

	Buildings []*building.Building
	Goals     []grid.Cell
	Reached   []bool
	Won       bool
	Image     string
}

// NewReport collects the final state of s.
func NewReport(s *session.Session, steps []StepResult) *Report {
	r := &Report{
		Level:   s.Level.Name,
		Steps:   steps,
		Economy: s.Placement.Economy(),
		Won:     s.Won(),
	}
	r.Buildable, r.Occupied, r.Influence, r.Claimed = s.Grid.Sizes()
	for b := range s.Buildings.All() {
		r.Buildings = append(r.Buildings, b)
	}
	r.Goals, r.Reached = s.Goals()
	return r
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `# {{.Level}}

## Steps
{{- range .Steps}}
{{printf "%3d" .Index}}. {{printf "%-16s" .Step}} {{.State}} available={{.Available}} buildings={{.Buildings}}{{if .Won}} WON{{end}}
{{- else}}
(none)
{{- end}}

## Economy
- Starting:  {{.Economy.Starting}}
- Collected: {{.Economy.Collected}}
- Spent:     {{.Economy.Spent}}
- Available: {{.Economy.Available}}

## Grid
- Buildable: {{.Buildable}}
- Occupied:  {{.Occupied}}
- Influence: {{.Influence}}
- Claimed:   {{.Claimed}}

## Buildings
{{- range .Buildings}}
- {{.}} {{.Footprint.Area}}
{{- end}}

## Goals
{{- range $i, $c := .Goals}}
- {{$c}} {{if index $.Reached $i}}reached{{else}}open{{end}}
{{- end}}
{{if .Won}}
Level complete.
{{end}}
{{- if .Image}}
Image written to {{.Image}}
{{end}}`

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
