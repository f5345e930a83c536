// Package templates provides embedded HTML templates for the public site
// and the admin dashboard.
package templates

import "embed"

//go:embed *.html partials/*.html
var FS embed.FS
