// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Value is the set of types supported by Get and Set. Each type has a
// canonical text encoding:
//
//	bool           "true" or "false" (read case-insensitively)
//	int, int64     base 10
//	uint64         base 10
//	float64        shortest representation, as strconv.FormatFloat(v, 'g', -1, 64)
//	string         verbatim (trimmed when stored)
//	time.Time      RFC 3339 with nanoseconds, as time.RFC3339Nano
//	time.Duration  as time.Duration.String, e.g. "1m30s"
type Value interface {
	bool | int | int64 | uint64 | float64 | string | time.Time | time.Duration
}

// Get looks up a value and converts it to T.
//
// If the lookup or the conversion fails, Get returns a *ConversionError.
// Such errors match ErrSectionNotFound regardless of cause; use errors.Is with
// ErrKeyNotFound or errors.As with the conversion error's type to tell the
// causes apart. Empty section names or keys are reported as
// ErrInvalidArgument.
func Get[T Value](d *Document, section, key string) (T, error) {
	var zero T
	if normalize(section) == "" || normalize(key) == "" {
		return zero, fmt.Errorf("ini: get %s: empty section name or key: %w", typeName[T](), ErrInvalidArgument)
	}
	raw, err := d.Get(section, key)
	if err != nil {
		return zero, &ConversionError{
			Section: normalize(section),
			Key:     normalize(key),
			Type:    typeName[T](),
			Err:     err,
		}
	}
	v, err := parseValue[T](raw)
	if err != nil {
		return zero, &ConversionError{
			Section: normalize(section),
			Key:     normalize(key),
			Value:   raw,
			Type:    typeName[T](),
			Err:     err,
		}
	}
	return v, nil
}

// Set stores value in its canonical text encoding and returns it. A missing
// key is created. A missing section is created only if the document's syntax
// allows dynamic sections; otherwise Set returns an error wrapping
// ErrKeyNotFound. Empty section names or keys are reported as
// ErrInvalidArgument.
func Set[T Value](d *Document, section, key string, value T) (T, error) {
	s, err := d.sectionForSet(section, key, ErrKeyNotFound)
	if err != nil {
		var zero T
		return zero, err
	}
	s.Set(key, FormatValue(value))
	return value, nil
}

// FormatValue returns the canonical text encoding of v.
func FormatValue[T Value](v T) string {
	switch v := any(v).(type) {
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case time.Duration:
		return v.String()
	default:
		panic("unreachable")
	}
}

func parseValue[T Value](s string) (T, error) {
	var v T
	var err error
	switch p := any(&v).(type) {
	case *bool:
		*p, err = parseBool(s)
	case *int:
		*p, err = strconv.Atoi(s)
	case *int64:
		*p, err = strconv.ParseInt(s, 10, 64)
	case *uint64:
		*p, err = strconv.ParseUint(s, 10, 64)
	case *float64:
		*p, err = strconv.ParseFloat(s, 64)
	case *string:
		*p = s
	case *time.Time:
		*p, err = time.Parse(time.RFC3339Nano, s)
	case *time.Duration:
		*p, err = time.ParseDuration(s)
	default:
		panic("unreachable")
	}
	return v, err
}

func parseBool(s string) (bool, error) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, nil
	case strings.EqualFold(s, "false"):
		return false, nil
	default:
		return false, &strconv.NumError{Func: "ParseBool", Num: s, Err: strconv.ErrSyntax}
	}
}

func typeName[T Value]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
