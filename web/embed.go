// Package web holds the browser viewer served next to the JSON API.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.tmpl static/*
var Assets embed.FS

// StaticFS serves the files under static/ at /static.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(Assets, "static")
	if err != nil {
		return http.FS(embed.FS{})
	}
	return http.FS(sub)
}

var funcs = template.FuncMap{
	"families": func() []string { return []string{"soma", "pentomino"} },
	"angles":   func() []string { return []string{"up-left", "left-right", "up"} },
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(Assets, "templates/*.tmpl"))
}
