// Package prompt renders system prompt templates. It lives in internal to
// avoid committing to public API stability prematurely.
package prompt

import (
	"bytes"
	"strings"
	"text/template"
)

// Render replaces template variables using Go's text/template package.
// Prompts without template markers are returned unchanged without parsing.
func Render(text string, vars map[string]any) (string, error) {
	if !strings.Contains(text, "{{") { // fast path: no template markers
		return text, nil
	}

	tmpl, err := template.New("prompt").Option("missingkey=zero").Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", err
	}

	return buf.String(), nil
}
