package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/petal-labs/albert-go/core"
)

// Content types attached to uploaded files.
const (
	ContentTypeAudio = "audio/mpeg"
	ContentTypePDF   = "application/pdf"
)

const contentTypeJSON = "application/json"

// HeaderRequestID carries the client-generated request identifier.
const HeaderRequestID = "X-Request-Id"

// Query holds optional query parameters. Absent values (nil, nil pointers)
// are left out of the encoded query entirely.
type Query map[string]any

// FileSpec names a local file to upload as the single file part of a
// multipart request.
type FileSpec struct {
	// Field is the form field name. Defaults to "file".
	Field string
	// Path is the local file path. The part's file name is its base name.
	Path string
	// ContentType is the fixed content type declared for the part.
	ContentType string
}

// Call carries the per-call arguments for one endpoint.
type Call struct {
	Path  PathParams
	Query Query
	// JSON is the body of a BodyJSON endpoint.
	JSON *core.Payload
	// Form holds the scalar fields of a BodyMultipart endpoint.
	Form *core.Payload
	// File is the uploaded file of a BodyMultipart endpoint.
	File *FileSpec
}

// Part describes one file part of an encoded multipart body.
type Part struct {
	Field       string
	FileName    string
	ContentType string
	Size        int64
}

// Request is a fully built outgoing request. It is created fresh for each
// call and owned by that call.
type Request struct {
	Endpoint Endpoint
	Method   string
	URL      *url.URL
	Header   http.Header
	JSON     *core.Payload
	Form     *core.Payload
	Parts    []Part
	Body     []byte
}

// ID returns the client-generated request identifier.
func (r *Request) ID() string {
	return r.Header.Get(HeaderRequestID)
}

// Build resolves an endpoint and its call arguments into a Request.
//
// Handing a body to an endpoint whose BodyKind does not accept it is a
// programming error and panics. The only runtime failures are a missing
// upload file (*core.FileNotFoundError) and encoding failures.
func Build(base *url.URL, ep Endpoint, call Call) (*Request, error) {
	checkBodyKind(ep, call)

	u, err := JoinURL(base, ep.ResolvePath(call.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to build URL for %s: %w", ep.Name, err)
	}
	u.RawQuery = encodeQuery(call.Query)

	req := &Request{
		Endpoint: ep,
		Method:   ep.Method,
		URL:      u,
		Header:   make(http.Header),
	}
	req.Header.Set(HeaderRequestID, uuid.NewString())

	switch ep.Body {
	case BodyJSON:
		payload := call.JSON
		if payload == nil {
			payload = core.NewPayload()
		}
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		req.JSON = payload
		req.Body = body
		req.Header.Set("Content-Type", contentTypeJSON)

	case BodyMultipart:
		body, contentType, part, err := encodeMultipart(call.File, call.Form)
		if err != nil {
			return nil, err
		}
		req.Form = call.Form
		req.Parts = []Part{part}
		req.Body = body
		req.Header.Set("Content-Type", contentType)
	}

	return req, nil
}

// JoinURL appends an already-escaped relative path to base with exactly one
// separating slash, whatever slashes either side carries.
func JoinURL(base *url.URL, path string) (*url.URL, error) {
	b := *base
	b.RawQuery = ""
	b.Fragment = ""
	return url.Parse(strings.TrimRight(b.String(), "/") + "/" + strings.TrimLeft(path, "/"))
}

func checkBodyKind(ep Endpoint, call Call) {
	switch ep.Body {
	case BodyNone:
		if call.JSON != nil || call.Form != nil || call.File != nil {
			panic(fmt.Sprintf("dispatch: endpoint %s takes no body", ep.Name))
		}
	case BodyJSON:
		if call.Form != nil || call.File != nil {
			panic(fmt.Sprintf("dispatch: endpoint %s takes a JSON body, not a form", ep.Name))
		}
	case BodyMultipart:
		if call.JSON != nil {
			panic(fmt.Sprintf("dispatch: endpoint %s takes a multipart body, not JSON", ep.Name))
		}
		if call.File == nil {
			panic(fmt.Sprintf("dispatch: endpoint %s requires a file", ep.Name))
		}
	}
}

// encodeMultipart writes the file part and the form fields. The file handle
// is opened and released here; nothing outlives the call.
func encodeMultipart(spec *FileSpec, form *core.Payload) ([]byte, string, Part, error) {
	f, err := os.Open(spec.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", Part{}, &core.FileNotFoundError{Path: spec.Path, Err: err}
		}
		return nil, "", Part{}, fmt.Errorf("failed to open %s: %w", spec.Path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, "", Part{}, fmt.Errorf("failed to stat %s: %w", spec.Path, err)
	}
	if info.IsDir() {
		return nil, "", Part{}, &core.FileNotFoundError{Path: spec.Path, Err: fs.ErrNotExist}
	}

	field := spec.Field
	if field == "" {
		field = "file"
	}
	contentType := spec.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	part := Part{
		Field:       field,
		FileName:    filepath.Base(spec.Path),
		ContentType: contentType,
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	var werr error
	form.Each(func(key string, value any) {
		if werr != nil {
			return
		}
		werr = writeFormField(w, key, value)
	})
	if werr != nil {
		return nil, "", Part{}, werr
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(part.Field), escapeQuotes(part.FileName)))
	h.Set("Content-Type", part.ContentType)
	pw, err := w.CreatePart(h)
	if err != nil {
		return nil, "", Part{}, fmt.Errorf("failed to create form file: %w", err)
	}
	n, err := io.Copy(pw, f)
	if err != nil {
		return nil, "", Part{}, fmt.Errorf("failed to copy file content: %w", err)
	}
	part.Size = n

	if err := w.Close(); err != nil {
		return nil, "", Part{}, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return buf.Bytes(), w.FormDataContentType(), part, nil
}

func writeFormField(w *multipart.Writer, key string, value any) error {
	values, err := formValues(value)
	if err != nil {
		return fmt.Errorf("failed to encode form field %s: %w", key, err)
	}
	for _, v := range values {
		if err := w.WriteField(key, v); err != nil {
			return fmt.Errorf("failed to write %s field: %w", key, err)
		}
	}
	return nil
}

// formValues renders a form field. Slices repeat the field; maps and nested
// payloads have no form representation and are sent as JSON text.
func formValues(value any) ([]string, error) {
	switch v := value.(type) {
	case *core.Payload, map[string]any, core.Extras:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return []string{string(b)}, nil
	}
	if list, ok := listValues(value); ok {
		return list, nil
	}
	return []string{scalarString(value)}, nil
}

func encodeQuery(q Query) string {
	if len(q) == 0 {
		return ""
	}
	values := make(url.Values, len(q))
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := q[k]
		if core.IsAbsent(v) {
			continue
		}
		if list, ok := listValues(v); ok {
			values[k] = list
			continue
		}
		values.Set(k, scalarString(v))
	}
	return values.Encode()
}

// listValues renders slices element by element, skipping absent elements.
// []byte is treated as a scalar.
func listValues(value any) ([]string, bool) {
	if _, ok := value.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if core.IsAbsent(elem) {
			continue
		}
		out = append(out, scalarString(elem))
	}
	return out, true
}

func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return scalarString(rv.Elem().Interface())
	}
	return fmt.Sprint(value)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
