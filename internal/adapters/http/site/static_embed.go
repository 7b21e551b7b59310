package site

import (
	"embed"
)

//go:embed static/*
var staticFS embed.FS

// Index returns the landing page markup.
func Index() ([]byte, error) {
	return staticFS.ReadFile("static/index.html")
}
