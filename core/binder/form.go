package binder

import (
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/dmitrymomot/relay/core/handler"
)

// DefaultMaxMemory bounds the in-memory portion of multipart parsing (10MB);
// larger file parts spill to disk.
const DefaultMaxMemory = 10 << 20

// Form creates a binder for application/x-www-form-urlencoded and
// multipart/form-data payloads. Value fields bind by `form` tag, uploaded
// files by `file` tag onto *multipart.FileHeader or []*multipart.FileHeader
// fields.
func Form() Func {
	return func(ctx handler.Context, v any) error {
		r := ctx.Request()

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected urlencoded or multipart form", ErrMissingContentType)
		}
		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: malformed content type", ErrFailedToParseForm)
		}

		var values map[string][]string
		var files map[string][]*multipart.FileHeader

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.Form

		case "multipart/form-data":
			if !validBoundary(params["boundary"]) {
				return fmt.Errorf("%w: invalid multipart boundary", ErrFailedToParseForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.MultipartForm.Value
			files = r.MultipartForm.File

		default:
			return fmt.Errorf("%w: got %s, expected urlencoded or multipart form", ErrUnsupportedMediaType, mediaType)
		}

		return bindForm(v, values, files)
	}
}

func bindForm(v any, values map[string][]string, files map[string][]*multipart.FileHeader) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToParseForm)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParseForm)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		fieldType := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		if fileTag := fieldType.Tag.Get("file"); fileTag != "" && fileTag != "-" {
			if headers, ok := files[fileTag]; ok && len(headers) > 0 {
				if err := setFileField(field, fieldType.Type, headers); err != nil {
					return fmt.Errorf("%w: field %s: %v", ErrFailedToParseForm, fieldType.Name, err)
				}
			}
			continue
		}

		name, skip := parseFieldTag(fieldType, "form")
		if skip {
			continue
		}
		if fieldValues, ok := values[name]; ok && len(fieldValues) > 0 {
			if err := setFieldValue(field, fieldType.Type, fieldValues); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrFailedToParseForm, fieldType.Name, err)
			}
		}
	}

	return nil
}

var fileHeaderType = reflect.TypeOf((*multipart.FileHeader)(nil))

func setFileField(field reflect.Value, fieldType reflect.Type, headers []*multipart.FileHeader) error {
	for _, fh := range headers {
		fh.Filename = sanitizeFilename(fh.Filename)
	}

	switch {
	case fieldType == fileHeaderType:
		field.Set(reflect.ValueOf(headers[0]))
	case fieldType.Kind() == reflect.Slice && fieldType.Elem() == fileHeaderType:
		slice := reflect.MakeSlice(fieldType, len(headers), len(headers))
		for i, fh := range headers {
			slice.Index(i).Set(reflect.ValueOf(fh))
		}
		field.Set(slice)
	default:
		return fmt.Errorf("unsupported file field type %v", fieldType)
	}
	return nil
}

// sanitizeFilename strips directory components and NUL bytes from uploaded
// filenames to prevent path traversal.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\x00", "")
	if name == "." || name == ".." || name == "" || name == "/" {
		name = "unnamed"
	}
	return name
}

// validBoundary rejects boundary values that would break multipart parsing.
func validBoundary(boundary string) bool {
	if boundary == "" || len(boundary) > 100 {
		return false
	}
	return !strings.ContainsAny(boundary, "\x00\r\n")
}
