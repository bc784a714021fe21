// Package view renders the catalog page and its card grid with
// html/template. Templates and static assets are embedded in the binary.
package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"io/fs"

	"github.com/agentstation/retroshelf/internal/controller"
	"github.com/agentstation/retroshelf/internal/form"
	"github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/items"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed static
var static embed.FS

// DefaultTitle is the page heading.
const DefaultTitle = "Galeria de Jogos Retrô"

// Page is everything the page template needs.
type Page struct {
	Title    string
	State    controller.State
	Form     form.Values
	Feedback form.Feedback

	// Alert is shown above the form, e.g. after a failed delete.
	Alert string

	// StaticPrefix is where the embedded assets are served.
	StaticPrefix string

	// UpdatesURL and FragmentURL enable live reload of the grid when both
	// are set.
	UpdatesURL  string
	FragmentURL string
}

// Loading reports whether the loading indicator is shown.
func (p Page) Loading() bool {
	return p.State.Status == controller.StatusLoading || p.State.Status == controller.StatusIdle
}

// LoadingText is the text of the loading indicator.
func (p Page) LoadingText() string {
	return constants.MsgLoading
}

// Grid returns the grid view-model of the page.
func (p Page) Grid() GridData {
	return GridData{
		Items:  p.State.View,
		Failed: p.State.Status == controller.StatusLoadError,
	}
}

// GridData is the view-model of the card grid.
type GridData struct {
	Items  []items.Item
	Failed bool
}

// EmptyText is shown when no card matches.
func (GridData) EmptyText() string {
	return constants.MsgEmpty
}

// FailedText is shown when the catalog could not be loaded.
func (GridData) FailedText() string {
	return constants.MsgLoadFailed
}

// Renderer renders pages and fragments.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("retroshelf").Funcs(template.FuncMap{
		"cover":       Cover,
		"unavailable": func() string { return constants.PlaceholderUnavailable },
	}).ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, errors.WrapParse("template", "templates", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustNew is like New but panics on error.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Page renders the full page. Output is buffered so a failing template
// never leaves a half-written response.
func (r *Renderer) Page(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.StaticPrefix == "" {
		p.StaticPrefix = "/static"
	}
	return r.execute(w, "page", p)
}

// Grid renders the card grid fragment for the given records.
func (r *Renderer) Grid(w io.Writer, list []items.Item) error {
	return r.execute(w, "grid", GridData{Items: list})
}

// GridState renders the card grid fragment for a state, including the
// load failure panel.
func (r *Renderer) GridState(w io.Writer, s controller.State) error {
	return r.execute(w, "grid", Page{State: s}.Grid())
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.WrapIO("render", name, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return errors.WrapIO("write", name, err)
	}
	return nil
}

// Cover returns the image URL to show for a record, using the cover
// placeholder when the record has none.
func Cover(image string) string {
	if image == "" {
		return constants.PlaceholderCover
	}
	return image
}

// Static returns the embedded assets (style.css, app.js).
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
