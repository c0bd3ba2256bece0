package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT for a row struct, reading column names
// from `db` tags. The week repositories persist whole documents, so
// every tagged field is written; suffix carries the upsert clause.
func InsertModel(table string, row any, suffix string) (string, []any, error) {
	cols, vals, err := taggedColumns(row)
	if err != nil {
		return "", nil, fmt.Errorf("insert into %s: %w", table, err)
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// taggedColumns walks the struct's exported fields and pairs each `db`
// tag with the field value. Untagged fields and `db:"-"` are skipped.
func taggedColumns(row any) ([]string, []any, error) {
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, fmt.Errorf("nil row")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("row must be a struct, got %s", v.Kind())
	}

	t := v.Type()
	var cols []string
	var vals []any
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		col := dbColumn(f)
		if col == "" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, v.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("row %s has no db-tagged fields", t.Name())
	}
	return cols, vals, nil
}

// dbColumn returns the column name from a field's `db` tag, or "" when
// the field is untagged or excluded. Tag options after the first comma
// are ignored.
func dbColumn(f reflect.StructField) string {
	tag := f.Tag.Get("db")
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	tag = strings.TrimSpace(tag)
	if tag == "-" {
		return ""
	}
	return tag
}
