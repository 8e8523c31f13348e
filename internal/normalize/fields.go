package normalize

import (
	"fmt"

	"o365-calendar/pkg/outlook"
)

const DefaultContentType = "Text"

// Body sets body content and content type, creating the body structure on
// first use. An empty contentType means DefaultContentType.
func Body(p outlook.Payload, content, contentType string) {
	if contentType == "" {
		contentType = DefaultContentType
	}
	body := ensureObject(p, "body")
	body["content"] = content
	body["contentType"] = contentType
}

// Location stores a mapping verbatim, or any other value as the display name
// of the location structure.
func Location(p outlook.Payload, loc any) {
	switch v := loc.(type) {
	case map[string]any:
		p["location"] = v
	case outlook.Payload:
		p["location"] = map[string]any(v)
	default:
		ensureObject(p, "location")["displayName"] = fmt.Sprint(v)
	}
}

// Categories converts a category list to its wire form.
func Categories(cats []string) []any {
	out := make([]any, len(cats))
	for i, c := range cats {
		out[i] = c
	}
	return out
}

func ensureObject(p outlook.Payload, key string) map[string]any {
	if m, ok := p[key].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	p[key] = m
	return m
}
