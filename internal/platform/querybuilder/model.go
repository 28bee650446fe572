package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT from a struct's db tags, with an optional
// suffix (ON CONFLICT clauses and the like).
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := taggedColumns(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// taggedColumns walks the struct's exported fields and collects every column
// named by a db tag, in declaration order.
func taggedColumns(model any) ([]string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	var cols []string
	var vals []any
	for _, field := range reflect.VisibleFields(v.Type()) {
		if field.PkgPath != "" || field.Anonymous {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, v.FieldByIndex(field.Index).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
