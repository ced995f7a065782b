package handler

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

//go:embed templates/*
var templateFiles embed.FS

var pageTemplates = template.Must(
	template.ParseFS(mustTemplatesFS(), "*.html"),
)

func mustTemplatesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("failed to create templates sub filesystem: " + err.Error())
	}

	return subFS
}

// renderPage executes one embedded page template into the response.
func renderPage(c echo.Context, name string, data any) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.Wrapf(err, "failed to render template %s", name)
	}

	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
