package models

import (
	"reflect"
	"strings"
)

// UppercaseFields uppercases every string field of a struct (pointer)
// at the persistence boundary, skipping the named fields. Pointer
// string fields are normalized in place; nils are left alone.
func UppercaseFields(entity interface{}, exclude ...string) {
	skip := map[string]bool{}
	for _, f := range exclude {
		skip[f] = true
	}

	v := reflect.ValueOf(entity)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if skip[t.Field(i).Name] || !f.CanSet() {
			continue
		}
		switch {
		case f.Kind() == reflect.String:
			f.SetString(strings.ToUpper(f.String()))
		case f.Kind() == reflect.Ptr && f.Type().Elem().Kind() == reflect.String && !f.IsNil():
			up := strings.ToUpper(f.Elem().String())
			f.Elem().SetString(up)
		}
	}
}
