package reader

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/grpagg/frame"
)

// SchemaInfo describes one leaf column of a parquet file.
type SchemaInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	PhysicalType string `json:"physical_type"`
	LogicalType  string `json:"logical_type"`
	Required     bool   `json:"required"`
	Optional     bool   `json:"optional"`
	Repeated     bool   `json:"repeated"`
}

// ExtractSchemaInfo lists the leaf columns of a parquet file. Nested fields
// are named with dot notation ("address.street") and inherit the repeated
// flag of their parents.
func ExtractSchemaInfo(path string) ([]SchemaInfo, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = r.Close() }()

	var infos []SchemaInfo
	for _, field := range r.Schema().Fields() {
		infos = appendFieldInfo(infos, field, "", false)
	}
	return infos, nil
}

// SchemaTable renders schema infos as a table with one row per column.
func SchemaTable(infos []SchemaInfo) *frame.Table {
	records := make([][]interface{}, len(infos))
	for i, info := range infos {
		records[i] = []interface{}{
			info.Name, info.Type, info.PhysicalType, info.LogicalType,
			info.Required, info.Optional, info.Repeated,
		}
	}
	return frame.MustNew(
		[]string{"name", "type", "physical_type", "logical_type", "required", "optional", "repeated"},
		records...,
	)
}

func appendFieldInfo(infos []SchemaInfo, field parquet.Field, prefix string, parentRepeated bool) []SchemaInfo {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}
	repeated := parentRepeated || field.Repeated()

	// groups contribute only their leaves
	if children := field.Fields(); len(children) > 0 {
		for _, child := range children {
			infos = appendFieldInfo(infos, child, name, repeated)
		}
		return infos
	}

	return append(infos, SchemaInfo{
		Name:         name,
		Type:         friendlyType(field),
		PhysicalType: physicalType(field),
		LogicalType:  logicalType(field),
		Required:     field.Required(),
		Optional:     field.Optional(),
		Repeated:     repeated,
	})
}

var physicalNames = map[parquet.Kind]string{
	parquet.Boolean:           "BOOLEAN",
	parquet.Int32:             "INT32",
	parquet.Int64:             "INT64",
	parquet.Int96:             "INT96",
	parquet.Float:             "FLOAT",
	parquet.Double:            "DOUBLE",
	parquet.ByteArray:         "BYTE_ARRAY",
	parquet.FixedLenByteArray: "FIXED_LEN_BYTE_ARRAY",
}

func physicalType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}
	if name, ok := physicalNames[field.Type().Kind()]; ok {
		return name
	}
	return "UNKNOWN"
}

func logicalType(field parquet.Field) string {
	if field.Type() == nil || field.Type().LogicalType() == nil {
		return ""
	}
	return field.Type().LogicalType().String()
}

// friendlyType prefers the logical type and falls back to the physical one,
// spelling floating point kinds by width.
func friendlyType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}

	switch lt := logicalType(field); lt {
	case "STRING", "UTF8":
		return "STRING"
	case "ENUM", "UUID", "DATE", "TIME", "TIMESTAMP", "DECIMAL", "JSON", "BSON":
		return lt
	}

	switch field.Type().Kind() {
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	}
	return physicalType(field)
}
