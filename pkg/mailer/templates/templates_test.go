package templates

import (
	"strings"
	"testing"
)

func TestRenderWelcome(t *testing.T) {
	data := WelcomeData{Name: "Alice", Email: "a@x.com", AppName: "movielog"}

	subject, html, err := Render("welcome", data.ToMap())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if subject != "Welcome to movielog!" {
		t.Errorf("subject = %q", subject)
	}
	for _, want := range []string{"Alice", "a@x.com", "movielog"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	data := map[string]any{"Name": "<script>x</script>", "Email": "a@x.com", "AppName": "movielog"}
	_, html, err := Render("welcome", data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("template did not escape user input")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, err := Render("nope", nil); err == nil {
		t.Error("expected error for unknown template")
	}
}
