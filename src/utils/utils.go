// Package utils reads the parquet struct tags that describe export rows.
package utils

import (
	"fmt"
	"reflect"
	"strings"
)

func GetFields(t any) []reflect.StructField {
	typeOf := reflect.TypeOf(t)
	var result []reflect.StructField
	for i := 0; i < typeOf.NumField(); i++ {
		result = append(result, typeOf.Field(i))
	}
	return result
}

// ParquetTagToKeyValue splits "name=id, type=INT32" into its properties.
// Entries without a value map to "".
func ParquetTagToKeyValue(tag string) map[string]string {
	result := make(map[string]string)
	for _, entry := range strings.Split(tag, ",") {
		key, value, _ := strings.Cut(strings.TrimSpace(entry), "=")
		if key == "" {
			continue
		}
		result[key] = value
	}
	return result
}

// ColumnNames returns the parquet column name of every field, falling back to the Go name.
func ColumnNames(fields []reflect.StructField) []string {
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		name := ParquetTagToKeyValue(field.Tag.Get("parquet"))["name"]
		if name == "" {
			name = field.Name
		}
		names = append(names, name)
	}
	return names
}

// FieldStrings formats the given fields of v in order.
func FieldStrings(v any, fields []reflect.StructField) []string {
	value := reflect.ValueOf(v)
	converted := make([]string, 0, len(fields))
	for _, field := range fields {
		converted = append(converted, fmt.Sprint(value.FieldByIndex(field.Index).Interface()))
	}
	return converted
}
