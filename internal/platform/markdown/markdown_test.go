// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: hello@inkwell.press

package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwellhq/inkwell/internal/platform/markdown"
)

/*
TestRender_Basics verifies common markdown constructs survive rendering.
*/
func TestRender_Basics(t *testing.T) {
	html := markdown.Render("# Title\n\nSome **bold** and *italic* text.")

	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, "<em>italic</em>")
}

/*
TestRender_StripsScripts verifies user-supplied HTML cannot smuggle script
into the rendered output.
*/
func TestRender_StripsScripts(t *testing.T) {
	html := markdown.Render("hello <script>alert('xss')</script> world")

	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "alert(")
	assert.Contains(t, html, "hello")
}

/*
TestRender_StripsEventHandlers verifies inline handlers are sanitized away.
*/
func TestRender_StripsEventHandlers(t *testing.T) {
	html := markdown.Render(`<img src="x" onerror="alert(1)">`)

	assert.NotContains(t, html, "onerror")
}

/*
TestRender_GFMTables verifies the GFM extension is active.
*/
func TestRender_GFMTables(t *testing.T) {
	html := markdown.Render("| a | b |\n|---|---|\n| 1 | 2 |")

	assert.Contains(t, html, "<table")
}
