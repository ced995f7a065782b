package handler

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var staticFiles embed.FS

// StaticFilesFS exposes the embedded static assets rooted at their own
// directory so the router can mount them under /static.
func StaticFilesFS() fs.FS {
	subFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic("failed to create static sub filesystem: " + err.Error())
	}

	return subFS
}
