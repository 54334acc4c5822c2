package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// Path binds fields tagged `path:"name"` using extractor, typically chi.URLParam.
//
//	type tenantRequest struct {
//		ID string `path:"id"`
//	}
//
//	r.Get("/tenants/{id}", handler.Wrap(get,
//		handler.WithBinders[handler.Context, tenantRequest](binder.Path(chi.URLParam)),
//	))
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}
		return bindTagged(v, "path", func(name string) (string, bool) {
			s := extractor(r, name)
			return s, s != ""
		}, ErrFailedToParsePath)
	}
}

// Query binds fields tagged `query:"name"` from the URL query string.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		return bindTagged(v, "query", func(name string) (string, bool) {
			if !q.Has(name) {
				return "", false
			}
			return q.Get(name), true
		}, ErrFailedToParseQuery)
	}
}

func bindTagged(v any, tag string, lookup func(name string) (string, bool), bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
		if !field.CanSet() || name == "" || name == "-" {
			continue
		}
		value, ok := lookup(name)
		if !ok {
			continue
		}
		if err := setField(field, value); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}

func setField(field reflect.Value, value string) error {
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setField(field.Elem(), value)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool value %q", value)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type %s", field.Kind())
	}
	return nil
}
