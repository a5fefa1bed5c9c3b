// Package web holds the page markup and the browser script that mirrors the
// server-side document.
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html
var page []byte

//go:embed static
var static embed.FS

// Page returns the markup every visitor starts from.
func Page() []byte {
	return page
}

// Static returns the script and stylesheet served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
