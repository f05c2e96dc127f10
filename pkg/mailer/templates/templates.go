package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

// subjects per template name
var subjects = map[string]string{
	"welcome": "Welcome to movielog!",
}

// WelcomeData carries the fields the welcome template renders.
type WelcomeData struct {
	Name    string `json:"Name"`
	Email   string `json:"Email"`
	AppName string `json:"AppName"`
}

// ToMap converts WelcomeData into the loosely typed EmailJob.Data form.
func (d WelcomeData) ToMap() map[string]any {
	return map[string]any{
		"Name":    d.Name,
		"Email":   d.Email,
		"AppName": d.AppName,
	}
}

// Render renders the named template with data and returns subject and HTML body.
func Render(name string, data map[string]any) (subject, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	t, err := htmpl.ParseFS(FS, name+".tmpl")
	if err != nil {
		return "", "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
