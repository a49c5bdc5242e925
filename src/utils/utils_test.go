package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	Id    int32  `parquet:"name=id, type=INT32"`
	Label string `parquet:"name=label, type=BYTE_ARRAY, convertedtype=UTF8"`
	Extra bool
}

func TestParquetTagToKeyValue(t *testing.T) {
	assert.Equal(t, map[string]string{"name": "label", "type": "BYTE_ARRAY", "convertedtype": "UTF8"},
		ParquetTagToKeyValue("name=label, type=BYTE_ARRAY, convertedtype=UTF8"))
	assert.Equal(t, map[string]string{"flag": ""}, ParquetTagToKeyValue("flag,"))
	assert.Empty(t, ParquetTagToKeyValue(""))
}

func TestColumnNamesAndValues(t *testing.T) {
	fields := GetFields(row{})
	assert.Equal(t, []string{"id", "label", "Extra"}, ColumnNames(fields))
	assert.Equal(t, []string{"7", "seven", "true"}, FieldStrings(row{Id: 7, Label: "seven", Extra: true}, fields))
}
