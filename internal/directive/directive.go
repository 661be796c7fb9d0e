package directive

import (
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strings"
)

// Directive keys.
const (
	KeySkip     = "skip"
	KeyFlatten  = "flatten"
	KeyRename   = "rename"
	KeyCallback = "callback"
)

// Keys lists every known directive key.
var Keys = []string{KeySkip, KeyFlatten, KeyRename, KeyCallback}

var (
	// ErrMalformed reports tag text that cannot be split into directives.
	ErrMalformed = errors.New("malformed directive")
	// ErrUnknownKey reports a directive key that is not recognized.
	ErrUnknownKey = errors.New("unknown directive")
	// ErrEmptyValue reports rename or callback without a value.
	ErrEmptyValue = errors.New("empty directive value")
	// ErrConflict reports directives that cannot be combined.
	ErrConflict = errors.New("conflicting directives")
)

// KeyError carries the directive key an error is about.
type KeyError struct {
	Key string
	Err error
}

func (e *KeyError) Error() string { return fmt.Sprintf("%v: %q", e.Err, e.Key) }
func (e *KeyError) Unwrap() error { return e.Err }

// Directives is the parsed form of one field's directives.
type Directives struct {
	Skip     bool
	Flatten  bool
	Rename   string
	Callback string
}

// ExternalName returns the name the field is exposed under.
func (d Directives) ExternalName(goName string) string {
	if d.Rename != "" {
		return d.Rename
	}

	return goName
}

// IsZero reports whether no directive is set.
func (d Directives) IsZero() bool {
	return d == Directives{}
}

// String renders the directives in tag syntax.
func (d Directives) String() string {
	var parts []string
	if d.Skip {
		parts = append(parts, KeySkip)
	}
	if d.Flatten {
		parts = append(parts, KeyFlatten)
	}
	if d.Rename != "" {
		parts = append(parts, KeyRename+"="+quote(d.Rename))
	}
	if d.Callback != "" {
		parts = append(parts, KeyCallback+"="+d.Callback)
	}

	return strings.Join(parts, ",")
}

func quote(v string) string {
	if strings.ContainsAny(v, ", ") {
		return "'" + v + "'"
	}

	return v
}

// Parse parses directive text. The empty string yields zero Directives, and
// "-" is shorthand for skip.
func Parse(text string) (Directives, error) {
	var d Directives

	text = strings.TrimSpace(text)
	if text == "" {
		return d, nil
	}
	if text == "-" {
		d.Skip = true
		return d, nil
	}

	parts, err := split(text)
	if err != nil {
		return d, err
	}

	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		if !IsKnownKey(p.key) {
			return d, &KeyError{Key: p.key, Err: ErrUnknownKey}
		}
		if seen[p.key] {
			return d, fmt.Errorf("%w: %q repeated", ErrMalformed, p.key)
		}
		seen[p.key] = true

		if err := d.set(p); err != nil {
			return d, err
		}
	}

	if err := d.Validate(); err != nil {
		return d, err
	}
	// flatten already keeps the field out of direct dispatch
	if d.Flatten {
		d.Skip = false
	}

	return d, nil
}

func (d *Directives) set(p part) error {
	switch p.key {
	case KeySkip, KeyFlatten:
		if p.hasValue {
			return fmt.Errorf("%w: %q takes no value", ErrMalformed, p.key)
		}
		if p.key == KeySkip {
			d.Skip = true
		} else {
			d.Flatten = true
		}

	case KeyRename:
		if p.value == "" {
			return fmt.Errorf("%w: %q needs a name", ErrEmptyValue, p.key)
		}
		d.Rename = p.value

	case KeyCallback:
		if p.value == "" {
			return fmt.Errorf("%w: %q needs a function name", ErrEmptyValue, p.key)
		}
		if !token.IsIdentifier(p.value) {
			return fmt.Errorf("%w: callback %q is not a Go identifier", ErrMalformed, p.value)
		}
		d.Callback = p.value
	}

	return nil
}

// Validate checks that the set directives can be combined. Skip excludes
// naming and rendering, and may only be paired with flatten; a flattened
// field has no name of its own, so it cannot be renamed or rendered by a
// callback.
func (d Directives) Validate() error {
	if d.Skip && (d.Rename != "" || d.Callback != "") {
		return fmt.Errorf("%w: skip cannot be combined with rename or callback", ErrConflict)
	}
	if d.Flatten && d.Rename != "" {
		return fmt.Errorf("%w: flatten cannot be combined with rename", ErrConflict)
	}
	if d.Flatten && d.Callback != "" {
		return fmt.Errorf("%w: flatten cannot be combined with callback", ErrConflict)
	}

	return nil
}

type part struct {
	key      string
	value    string
	hasValue bool
}

// split breaks text at commas outside single quotes.
func split(text string) ([]part, error) {
	var (
		parts   []part
		current strings.Builder
		inQuote bool
	)

	flush := func() error {
		raw := strings.TrimSpace(current.String())
		current.Reset()
		if raw == "" {
			return fmt.Errorf("%w: empty element", ErrMalformed)
		}
		p, err := parsePart(raw)
		if err != nil {
			return err
		}
		parts = append(parts, p)
		return nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			current.WriteByte(c)
		case c == ',' && !inQuote:
			if err := flush(); err != nil {
				return nil, err
			}
		default:
			current.WriteByte(c)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("%w: unterminated quote", ErrMalformed)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return parts, nil
}

func parsePart(raw string) (part, error) {
	key, value, hasValue := strings.Cut(raw, "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return part{}, fmt.Errorf("%w: missing key in %q", ErrMalformed, raw)
	}
	if strings.ContainsAny(key, " '") {
		return part{}, fmt.Errorf("%w: invalid key %q", ErrMalformed, key)
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'' {
		value = value[1 : len(value)-1]
	} else if strings.Contains(value, "'") {
		return part{}, fmt.Errorf("%w: stray quote in %q", ErrMalformed, raw)
	}

	return part{key: key, value: value, hasValue: hasValue}, nil
}

// IsKnownKey reports whether key is a directive key.
func IsKnownKey(key string) bool {
	return slices.Contains(Keys, key)
}
