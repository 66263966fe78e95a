// Package view renders the embedded HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

var tplCache = struct {
	sync.RWMutex
	m map[string]*template.Template
}{m: map[string]*template.Template{}}

// Funcs returns the standard helper map shared by all pages.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money": func(f float64) string { return fmt.Sprintf("%.2f", f) },
		"year":  func() int { return time.Now().Year() },
	}
}

// Render executes the named template into w. Templates are parsed once and
// cached; rendering goes through a buffer so a failed execute never leaves a
// partial body behind.
func Render(w io.Writer, name string, data any) error {
	tplCache.RLock()
	t := tplCache.m[name]
	tplCache.RUnlock()
	if t == nil {
		parsed, err := template.New(name).Funcs(Funcs()).ParseFS(templatesFS, "templates/"+name)
		if err != nil {
			return err
		}
		tplCache.Lock()
		tplCache.m[name] = parsed
		tplCache.Unlock()
		t = parsed
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
