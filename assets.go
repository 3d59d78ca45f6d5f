// Package batisuivi embeds the server-rendered page templates.
package batisuivi

import "embed"

// TemplateFS holds one layout and one content template per page.
//
//go:embed web/templates/*.gohtml
var TemplateFS embed.FS
