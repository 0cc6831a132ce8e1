package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/myrjola/bayescalc/internal/contexthelpers"
	"github.com/myrjola/bayescalc/internal/errors"
	"github.com/myrjola/bayescalc/internal/report"
	"github.com/myrjola/bayescalc/internal/ssr"
	"github.com/myrjola/bayescalc/ui"
)

// pageTemplates holds one parsed template set per directory in ui/templates/pages.
type pageTemplates struct {
	pages map[string]*template.Template
}

type BaseTemplateData struct {
	Flash string
}

func (app *application) newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		Flash: app.sessionManager.PopString(r.Context(), flashSessionKey),
	}
}

// templateFuncs are overridden per request with [requestFuncs]. They have to exist before parsing.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"nonce": func() template.HTMLAttr {
			panic("not implemented")
		},
		"csrf": func() template.HTML {
			panic("not implemented")
		},
		"columns": func() []string {
			return report.Columns
		},
		"itemsData": newItemsView,
	}
}

func requestFuncs(r *http.Request) template.FuncMap {
	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=%q", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf(`<input type="hidden" name="csrf_token" value="%s"/>`,
		template.HTMLEscapeString(contexthelpers.CSRFToken(ctx)))
	return template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // the nonce is not user input
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // the token is escaped
		},
	}
}

// parsePageTemplates parses base.gohtml together with the templates of each page directory.
//
// Every page directory has to define a template named "page".
func parsePageTemplates() (*pageTemplates, error) {
	dirs, err := fs.ReadDir(ui.Files, "templates/pages")
	if err != nil {
		return nil, errors.Wrap(err, "read pages directory")
	}
	pages := make(map[string]*template.Template, len(dirs))
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		name := dir.Name()
		var t *template.Template
		if t, err = template.New(name).Funcs(templateFuncs()).ParseFS(ui.Files,
			"templates/base.gohtml",
			fmt.Sprintf("templates/pages/%s/*.gohtml", name),
		); err != nil {
			return nil, errors.Wrap(err, "parse page", slog.String("page", name))
		}
		pages[name] = t
	}
	return &pageTemplates{pages: pages}, nil
}

// execute runs the named template of page and expands the custom elements of the output.
func (p *pageTemplates) execute(r *http.Request, page string, name string, data any) (*bytes.Buffer, error) {
	base, ok := p.pages[page]
	if !ok {
		return nil, errors.New("page template not found", slog.String("page", page))
	}
	t, err := base.Clone()
	if err != nil {
		return nil, errors.Wrap(err, "clone template", slog.String("page", page))
	}
	t.Funcs(requestFuncs(r))

	var raw bytes.Buffer
	if err = t.ExecuteTemplate(&raw, name, data); err != nil {
		return nil, errors.Wrap(err, "execute template", slog.String("page", page), slog.String("template", name))
	}
	out := new(bytes.Buffer)
	if name == "base" {
		err = ssr.ExpandDocument(out, &raw)
	} else {
		err = ssr.ExpandCustomElements(out, &raw)
	}
	if err != nil {
		return nil, errors.Wrap(err, "expand custom elements", slog.String("page", page))
	}
	return out, nil
}

// render writes a full page.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	app.renderTemplate(w, r, status, page, "base", data)
}

// renderTemplate writes a single named template of page, for example an htmx fragment.
func (app *application) renderTemplate(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	page string,
	name string,
	data any,
) {
	buf, err := app.pages.execute(r, page, name, data)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
