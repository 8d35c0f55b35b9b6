// Package web provides the embedded dashboard and provisioning pages.
package web

import (
	"embed"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
)

//go:embed static/*
var staticFiles embed.FS

// GetFileSystem returns the embedded filesystem with the static folder as root.
func GetFileSystem() (fs.FS, error) {
	return fs.Sub(staticFiles, "static")
}

// Page returns the contents of a named embedded page.
func Page(name string) ([]byte, error) {
	staticFS, err := GetFileSystem()
	if err != nil {
		return nil, err
	}

	f, err := staticFS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// RegisterStaticRoutes registers the shared assets (stylesheet, dashboard
// script) with Echo. Mode-specific root pages are registered by the API
// layer before calling this, so the explicit "/" routes win over the
// wildcard.
func RegisterStaticRoutes(e *echo.Echo) error {
	staticFS, err := GetFileSystem()
	if err != nil {
		return err
	}

	e.StaticFS("/", staticFS)
	return nil
}
