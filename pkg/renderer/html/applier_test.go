package html

import (
	"strings"
	"testing"

	"github.com/recera/mission-control/pkg/vango/vdom"
)

func TestHTMLApplier_TextNodes(t *testing.T) {
	tests := []struct {
		name     string
		node     *vdom.VNode
		expected string
	}{
		{
			name:     "simple text",
			node:     vdom.NewText("Hello World"),
			expected: "Hello World",
		},
		{
			name:     "text with HTML entities",
			node:     vdom.NewText("<script>alert('xss')</script>"),
			expected: "&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;",
		},
		{
			name:     "text with quotes",
			node:     vdom.NewText(`"Hello" & 'World'`),
			expected: "&#34;Hello&#34; &amp; &#39;World&#39;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("RenderToString() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestHTMLApplier_Elements(t *testing.T) {
	tests := []struct {
		name     string
		node     *vdom.VNode
		expected string
	}{
		{
			name:     "empty div",
			node:     vdom.NewElement("div", nil),
			expected: "<div></div>",
		},
		{
			name:     "div with text",
			node:     vdom.NewElement("div", nil, vdom.NewText("Hello")),
			expected: "<div>Hello</div>",
		},
		{
			name: "attributes sorted by name",
			node: vdom.NewElement("div", vdom.Props{
				"id":    "main",
				"class": "container",
			}),
			expected: `<div class="container" id="main"></div>`,
		},
		{
			name: "nested elements",
			node: vdom.NewElement("div", nil,
				vdom.NewElement("p", nil, vdom.NewText("Paragraph 1")),
				vdom.NewElement("p", nil, vdom.NewText("Paragraph 2")),
			),
			expected: "<div><p>Paragraph 1</p><p>Paragraph 2</p></div>",
		},
		{
			name: "void element",
			node: vdom.NewElement("img", vdom.Props{
				"src": "image.jpg",
				"alt": "Test Image",
			}),
			expected: `<img alt="Test Image" src="image.jpg">`,
		},
		{
			name: "boolean attributes",
			node: vdom.NewElement("input", vdom.Props{
				"type":     "checkbox",
				"checked":  true,
				"disabled": false,
			}),
			expected: `<input checked type="checkbox">`,
		},
		{
			name:     "nil attribute skipped",
			node:     vdom.NewElement("span", vdom.Props{"title": nil}),
			expected: "<span></span>",
		},
		{
			name:     "numeric attribute",
			node:     vdom.NewElement("li", vdom.Props{"data-index": 3}),
			expected: `<li data-index="3"></li>`,
		},
		{
			name:     "nil children skipped",
			node:     vdom.NewElement("ul", nil, nil, vdom.NewElement("li", nil), nil),
			expected: "<ul><li></li></ul>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("RenderToString() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestHTMLApplier_Keys(t *testing.T) {
	node := vdom.NewElement("li", vdom.Props{"class": "crumb"}).WithKey("2")

	result, err := RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `<li data-key="2" class="crumb"></li>`
	if result != expected {
		t.Errorf("RenderToString() = %q, want %q", result, expected)
	}
}

func TestHTMLApplier_Fragments(t *testing.T) {
	node := vdom.NewFragment(
		vdom.NewElement("h1", nil, vdom.NewText("Title")),
		vdom.NewElement("p", nil, vdom.NewText("Content")),
	)

	expected := "<h1>Title</h1><p>Content</p>"
	result, err := RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result != expected {
		t.Errorf("RenderToString() = %q, want %q", result, expected)
	}
}

func TestHTMLApplier_RawText(t *testing.T) {
	node := vdom.NewElement("script", nil, vdom.NewText("if (a < b) { go(); }"))

	result, err := RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "<script>if (a < b) { go(); }</script>" {
		t.Errorf("Script content should not be escaped: %q", result)
	}
}

func TestHTMLApplier_XSSPrevention(t *testing.T) {
	tests := []struct {
		name    string
		node    *vdom.VNode
		notWant string // should NOT contain this
	}{
		{
			name: "script in text",
			node: vdom.NewElement("div", nil,
				vdom.NewText("<script>alert('xss')</script>"),
			),
			notWant: "<script>",
		},
		{
			name: "script in attribute",
			node: vdom.NewElement("div", vdom.Props{
				"title": `<script>alert('xss')</script>`,
			}),
			notWant: "<script>",
		},
		{
			name: "javascript URL",
			node: vdom.NewElement("a", vdom.Props{
				"href": "javascript:alert('xss')",
			}, vdom.NewText("Link")),
			notWant: "javascript:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if strings.Contains(result, tt.notWant) {
				t.Errorf("Result should not contain %q, got: %q", tt.notWant, result)
			}
		})
	}
}

func TestRenderDocument(t *testing.T) {
	var buf strings.Builder
	err := RenderDocument(&buf, "Mission Control",
		vdom.NewElement("style", nil, vdom.NewText("body{margin:0}")),
		vdom.NewElement("main", nil, vdom.NewText("cockpit")),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := buf.String()
	expectedContains := []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		`<meta charset="utf-8">`,
		"<title>Mission Control</title>",
		"<style>body{margin:0}</style>",
		"<body><main>cockpit</main></body>",
	}
	for _, expected := range expectedContains {
		if !strings.Contains(result, expected) {
			t.Errorf("Result should contain %q, got: %q", expected, result)
		}
	}
}

func TestVNode_FindAndTextContent(t *testing.T) {
	tree := vdom.NewElement("nav", nil,
		vdom.NewElement("span", vdom.Props{"class": "crumb"}, vdom.NewText("Cockpit")),
		vdom.NewElement("span", vdom.Props{"aria-current": "page"}, vdom.NewText("Organization")),
	)

	current := tree.Find(func(n *vdom.VNode) bool {
		return n.Props["aria-current"] == "page"
	})
	if current == nil {
		t.Fatal("Expected to find current crumb")
	}
	if got := current.TextContent(); got != "Organization" {
		t.Errorf("Expected Organization, got %q", got)
	}
	if got := tree.TextContent(); got != "CockpitOrganization" {
		t.Errorf("Expected concatenated text, got %q", got)
	}
}
