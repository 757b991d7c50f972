package commands

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/petal-labs/albert-go/core"
)

// extrasValue collects repeated --set key=value flags into core.Extras.
// Values parse as int, float, bool or JSON array/object before falling
// back to a plain string. Only JSON number syntax counts as a number, so
// "007", "inf" and "0x10" stay strings.
type extrasValue struct {
	extras core.Extras
}

var _ pflag.Value = (*extrasValue)(nil)

func newExtrasValue() *extrasValue {
	return &extrasValue{extras: core.Extras{}}
}

func (v *extrasValue) String() string {
	if v == nil || len(v.extras) == 0 {
		return ""
	}
	keys := v.extras.Keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v.extras[k]))
	}
	return strings.Join(parts, ",")
}

func (v *extrasValue) Set(s string) error {
	key, raw, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	v.extras[key] = parseExtraValue(raw)
	return nil
}

func (v *extrasValue) Type() string {
	return "key=value"
}

// Extras returns the collected values, or nil when none were set.
func (v *extrasValue) Extras() core.Extras {
	if len(v.extras) == 0 {
		return nil
	}
	return v.extras
}

var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

func parseExtraValue(raw string) any {
	if jsonNumber.MatchString(raw) {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) {
			return f
		}
	}
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		var decoded any
		if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
			return decoded
		}
	}
	return raw
}
