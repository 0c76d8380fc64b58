// Package render implements the rendering surfaces for results and racecards.
package render

import (
	htmltemplate "html/template"
	"io"
	"sync"
	"text/template"

	"github.com/rotisserie/eris"

	"dcrhub/internal/models"
	"dcrhub/internal/view"
)

// Display records are escaped by the projector, so the results template is a
// text template and must not escape again.
var resultsTemplate = template.Must(template.New("results").Funcs(template.FuncMap{
	"escape": view.EscapeHTML,
}).Parse(`<div class="status">{{escape .Status}}</div>
{{- if not .Records}}
<div class="text-sm opacity-70">{{escape .Empty}}</div>
{{- end}}
{{- range .Records}}
<div class="p-4 rounded-2xl shadow mb-3">
  <div class="text-sm opacity-70">{{.Date}}{{if .OffTime}} • {{.OffTime}}{{end}}{{if .Course}} • {{.Course}}{{end}}</div>
  <div class="font-semibold mt-1">{{if .RaceNumber}}R{{.RaceNumber}} {{end}}{{if .Title}}{{.Title}}{{else}}(untitled race){{end}}{{if .Handicap}} <span class="pill">Handicap</span>{{end}}</div>
  <div class="mt-1">🏇 <span class="font-medium">{{if .Horse}}{{.Horse}}{{else}}-{{end}}</span>{{if .Position}} (<span>{{.Position}}</span>){{end}}{{if .StartingPrice}} SP {{.StartingPrice}}{{end}}</div>
  {{- if .Note}}
  <div class="mt-1 text-sm">{{.Note}}</div>
  {{- end}}
  {{- if .Links}}
  <div class="mt-2 text-sm">{{range $i, $l := .Links}}{{if $i}} · {{end}}<a class="inline-block underline" href="{{$l.URL}}" target="_blank" rel="noopener">{{$l.Label}}</a>{{end}}</div>
  {{- end}}
</div>
{{- end}}
`))

var errorTemplate = template.Must(template.New("error").Funcs(template.FuncMap{
	"escape": view.EscapeHTML,
}).Parse(`<div class="p-4 rounded-2xl border border-red-300 bg-red-50 text-red-900">{{escape .}}</div>
`))

// Racecards are plain text, so html/template escapes every field.
var cardsTemplate = htmltemplate.Must(htmltemplate.New("cards").Parse(`<div class="status">{{.Status}}</div>
{{- range .Meetings}}
<div class="cardcard">
  <div class="font-semibold">{{.Course}} — {{.Date}}</div>
  {{- range .Races}}
  <div class="mt-2">
    <div class="opacity-70 text-sm">{{.OffTime}} • {{.Title}}</div>
    <table class="cardtable">
      <thead><tr><th>No</th><th>Horse</th><th>Jockey</th><th>Trainer</th><th>Age</th><th>Wgt</th><th>Dr</th><th>Odds</th></tr></thead>
      <tbody>
      {{- range .Runners}}
        <tr><td>{{.No}}</td><td>{{.Horse}}</td><td>{{.Jockey}}</td><td>{{.Trainer}}</td><td>{{.Age}}</td><td>{{.Weight}}</td><td>{{.Draw}}</td><td>{{.Odds}}</td></tr>
      {{- end}}
      </tbody>
    </table>
  </div>
  {{- end}}
</div>
{{- end}}
`))

// WriteResults writes the results fragment.
func WriteResults(w io.Writer, records []models.DisplayRecord, status string) error {
	err := resultsTemplate.Execute(w, struct {
		Status  string
		Empty   string
		Records []models.DisplayRecord
	}{Status: status, Empty: view.EmptyMessage, Records: records})

	return eris.Wrap(err, "render results")
}

// WriteError writes the error fragment shown in place of the result list.
func WriteError(w io.Writer, message string) error {
	return eris.Wrap(errorTemplate.Execute(w, message), "render error")
}

// WriteCards writes the racecards fragment.
func WriteCards(w io.Writer, meetings []models.Meeting, status string) error {
	err := cardsTemplate.Execute(w, struct {
		Status   string
		Meetings []models.Meeting
	}{Status: status, Meetings: meetings})

	return eris.Wrap(err, "render cards")
}

// HTMLRenderer writes each render as an HTML fragment to w.
type HTMLRenderer struct {
	w   io.Writer
	err error
	mu  sync.Mutex
}

// NewHTMLRenderer creates a renderer writing to w.
func NewHTMLRenderer(w io.Writer) *HTMLRenderer {
	return &HTMLRenderer{w: w}
}

// Render writes the result list.
func (r *HTMLRenderer) Render(records []models.DisplayRecord, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.keep(WriteResults(r.w, records, status))
}

// RenderError writes the error message.
func (r *HTMLRenderer) RenderError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.keep(WriteError(r.w, message))
}

// Err returns the first write error.
func (r *HTMLRenderer) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.err
}

func (r *HTMLRenderer) keep(err error) {
	if r.err == nil {
		r.err = err
	}
}
