// Package templates embeds the default HTML template pool, one directory per document class.
package templates

import "embed"

// FS holds <class>/*.html for every document class
//
//go:embed tax-form/*.html pay-statement/*.html miscellaneous/*.html
var FS embed.FS
