package env

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var ErrNotStruct = errors.New("env: expected a pointer to a struct")

// MarshalEnv renders the env-tagged fields of a struct pointer as .env lines,
// in field order. Zero values and values equal to their envDefault tag are
// omitted.
func MarshalEnv(c any) (string, error) {
	v := reflect.ValueOf(c)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return "", ErrNotStruct
	}
	v = v.Elem()
	t := v.Type()

	var b strings.Builder
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		// "KEY,required,notEmpty" or "KEY"
		key, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if key == "" {
			continue
		}

		val := v.Field(i)
		if val.IsZero() {
			continue
		}
		s, err := formatValue(val)
		if err != nil {
			return "", fmt.Errorf("%s: %w", key, err)
		}
		if def, ok := field.Tag.Lookup("envDefault"); ok && def == s {
			continue
		}

		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(quote(s))
		b.WriteByte('\n')
	}

	return b.String(), nil
}

// quote wraps values that godotenv would otherwise split or expand.
func quote(s string) string {
	if !strings.ContainsAny(s, " \t#\"'$\\\n=") {
		return s
	}
	if !strings.ContainsAny(s, "'\n") {
		return "'" + s + "'"
	}
	return strconv.Quote(s)
}

func formatValue(v reflect.Value) (string, error) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if d, ok := v.Interface().(fmt.Stringer); ok {
			return d.String(), nil
		}
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits()), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Slice:
		parts := make([]string, v.Len())
		for i := range parts {
			s, err := formatValue(v.Index(i))
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, ","), nil
	default:
		return "", fmt.Errorf("unsupported kind %s", v.Kind())
	}
}
