package reader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	apierrors "github.com/olgasafonova/jina-reader-mcp-server/internal/errors"
)

// ParseArgs decodes and validates raw read_url arguments.
// All type and shape checks happen here; on success the returned args can
// be turned into headers without further checks.
func ParseArgs(raw json.RawMessage) (ReadURLArgs, error) {
	var args ReadURLArgs

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return args, invalid(apierrors.NewValidationError("url", "", "is required"))
	}
	if trimmed[0] != '{' {
		return args, invalid(apierrors.NewValidationError("", "", "arguments must be a JSON object"))
	}

	// Keys match exactly; encoding/json would otherwise fold case.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return ReadURLArgs{}, invalid(apierrors.NewValidationError("", "", "malformed arguments: "+err.Error()))
	}

	targets := []struct {
		key string
		dst any
	}{
		{"url", &args.URL},
		{"no_cache", &args.NoCache},
		{"format", &args.Format},
		{"timeout", &args.Timeout},
		{"target_selector", &args.TargetSelector},
		{"wait_for_selector", &args.WaitForSelector},
		{"remove_selector", &args.RemoveSelector},
		{"with_links_summary", &args.WithLinksSummary},
		{"with_images_summary", &args.WithImagesSummary},
		{"with_generated_alt", &args.WithGeneratedAlt},
		{"with_iframe", &args.WithIframe},
	}
	for _, target := range targets {
		value, ok := fields[target.key]
		if !ok {
			continue
		}
		if err := decodeField(target.key, value, target.dst); err != nil {
			return ReadURLArgs{}, err
		}
	}

	if err := ValidateURL(args.URL); err != nil {
		return ReadURLArgs{}, err
	}

	for field, v := range map[string]*string{
		"target_selector":   args.TargetSelector,
		"wait_for_selector": args.WaitForSelector,
		"remove_selector":   args.RemoveSelector,
	} {
		if v != nil && strings.ContainsAny(*v, "\r\n") {
			return ReadURLArgs{}, invalid(apierrors.NewValidationError(field, "", "must not contain line breaks"))
		}
	}

	return args, nil
}

// decodeField decodes one argument value, reporting type mismatches
// against the argument's name.
func decodeField(key string, value json.RawMessage, dst any) error {
	err := json.Unmarshal(value, dst)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return invalid(apierrors.NewValidationError(
			key, "",
			fmt.Sprintf("expected %s, got %s", jsonTypeName(typeErr.Type), typeErr.Value),
		))
	}
	return invalid(apierrors.NewValidationError(key, "", "malformed value: "+err.Error()))
}

// ValidateURL checks that s is an absolute URL with a scheme and a host.
func ValidateURL(s string) error {
	if s == "" {
		return invalid(apierrors.NewValidationError("url", "", "is required"))
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalid(apierrors.NewValidationError("url", s, "must be an absolute URL with scheme and host"))
	}
	return nil
}

func invalid(ve *apierrors.ValidationError) error {
	return apierrors.NewInvalidArgumentsError(ToolName, ve)
}

// jsonTypeName maps a Go decode target to the JSON Schema type name.
func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return "number"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return t.String()
	}
}
