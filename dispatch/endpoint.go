package dispatch

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// BodyKind says how an endpoint's request body is encoded.
type BodyKind int

const (
	// BodyNone sends no body.
	BodyNone BodyKind = iota
	// BodyJSON sends an application/json body.
	BodyJSON
	// BodyMultipart sends a multipart/form-data body with one file part.
	BodyMultipart
)

func (k BodyKind) String() string {
	switch k {
	case BodyNone:
		return "none"
	case BodyJSON:
		return "json"
	case BodyMultipart:
		return "multipart"
	default:
		return fmt.Sprintf("BodyKind(%d)", int(k))
	}
}

// Endpoint statically describes one remote operation.
// Endpoints are defined once as package-level values and shared by all calls.
type Endpoint struct {
	Name   string
	Method string
	Path   string
	Body   BodyKind

	placeholders []string
}

// PathParams maps placeholder names to their values.
type PathParams map[string]string

// MustEndpoint builds an Endpoint and panics if the definition is invalid:
// an unsupported verb, an unbalanced or empty placeholder, or a body kind
// that does not fit the verb.
func MustEndpoint(name, method, path string, body BodyKind) Endpoint {
	switch method {
	case http.MethodGet, http.MethodDelete:
		if body != BodyNone {
			panic(fmt.Sprintf("dispatch: endpoint %s: %s cannot carry a %s body", name, method, body))
		}
	case http.MethodPost, http.MethodPatch, http.MethodPut:
	default:
		panic(fmt.Sprintf("dispatch: endpoint %s: unsupported method %q", name, method))
	}

	names, err := parsePlaceholders(path)
	if err != nil {
		panic(fmt.Sprintf("dispatch: endpoint %s: %v", name, err))
	}

	return Endpoint{
		Name:         name,
		Method:       method,
		Path:         path,
		Body:         body,
		placeholders: names,
	}
}

// Placeholders returns the placeholder names in template order.
func (e Endpoint) Placeholders() []string {
	out := make([]string, len(e.placeholders))
	copy(out, e.placeholders)
	return out
}

// ResolvePath substitutes every placeholder with its path-escaped value.
// A missing value is a programming error and panics.
func (e Endpoint) ResolvePath(params PathParams) string {
	if !strings.ContainsRune(e.Path, '{') {
		return e.Path
	}

	var b strings.Builder
	rest := e.Path
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			panic(fmt.Sprintf("dispatch: endpoint %s: unterminated placeholder in %q", e.Name, e.Path))
		}
		closing := open + end
		name := rest[open+1 : closing]

		value, ok := params[name]
		if !ok || value == "" {
			panic(fmt.Sprintf("dispatch: endpoint %s: missing path parameter %q", e.Name, name))
		}

		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(value))
		rest = rest[closing+1:]
	}
	return b.String()
}

func (e Endpoint) String() string {
	return e.Method + " " + e.Path
}

func parsePlaceholders(path string) ([]string, error) {
	var names []string
	depth := 0
	start := 0
	for i, r := range path {
		switch r {
		case '{':
			if depth != 0 {
				return nil, fmt.Errorf("nested placeholder in %q", path)
			}
			depth = 1
			start = i + 1
		case '}':
			if depth != 1 {
				return nil, fmt.Errorf("unbalanced '}' in %q", path)
			}
			depth = 0
			if i == start {
				return nil, fmt.Errorf("empty placeholder in %q", path)
			}
			names = append(names, path[start:i])
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unterminated placeholder in %q", path)
	}
	return names, nil
}
