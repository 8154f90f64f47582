package reader

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestExtractSchemaInfo_PrimitiveTypes(t *testing.T) {
	type Row struct {
		ID       int64   `parquet:"id"`
		Name     string  `parquet:"name"`
		Age      int32   `parquet:"age"`
		Score    float64 `parquet:"score"`
		Ratio    float32 `parquet:"ratio"`
		Active   bool    `parquet:"active"`
		Optional *string `parquet:"optional,optional"`
	}
	path := writeParquet(t, t.TempDir(), "types.parquet", []Row{{ID: 1, Name: "Alice"}})

	infos, err := ExtractSchemaInfo(path)
	if err != nil {
		t.Fatalf("ExtractSchemaInfo() error = %v", err)
	}
	if len(infos) != 7 {
		t.Fatalf("ExtractSchemaInfo() returned %d fields, want 7", len(infos))
	}

	byName := make(map[string]SchemaInfo)
	for _, info := range infos {
		byName[info.Name] = info
	}

	tests := []struct {
		column   string
		wantType string
		wantPhys string
	}{
		{"id", "INT64", "INT64"},
		{"name", "STRING", "BYTE_ARRAY"},
		{"age", "INT32", "INT32"},
		{"score", "FLOAT64", "DOUBLE"},
		{"ratio", "FLOAT32", "FLOAT"},
		{"active", "BOOLEAN", "BOOLEAN"},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			info, ok := byName[tt.column]
			if !ok {
				t.Fatalf("%s field not found in schema", tt.column)
			}
			if info.Type != tt.wantType {
				t.Errorf("%s type = %s, want %s", tt.column, info.Type, tt.wantType)
			}
			if info.PhysicalType != tt.wantPhys {
				t.Errorf("%s physical type = %s, want %s", tt.column, info.PhysicalType, tt.wantPhys)
			}
			if !info.Required {
				t.Errorf("%s should be required", tt.column)
			}
		})
	}

	if !byName["optional"].Optional {
		t.Error("optional field should be optional")
	}
}

func TestExtractSchemaInfo_NestedAndRepeated(t *testing.T) {
	type Address struct {
		Street string `parquet:"street"`
		City   string `parquet:"city"`
	}
	type Row struct {
		ID      int64     `parquet:"id"`
		Address Address   `parquet:"address"`
		Tags    []string  `parquet:"tags"`
		Visits  []Address `parquet:"visits"`
	}
	path := writeParquet(t, t.TempDir(), "nested.parquet", []Row{{ID: 1, Tags: []string{"x"}}})

	infos, err := ExtractSchemaInfo(path)
	if err != nil {
		t.Fatalf("ExtractSchemaInfo() error = %v", err)
	}

	byName := make(map[string]SchemaInfo)
	for _, info := range infos {
		byName[info.Name] = info
	}

	for _, name := range []string{"address.street", "address.city", "visits.street", "visits.city"} {
		if _, ok := byName[name]; !ok {
			t.Errorf("%s field not found in schema", name)
		}
	}
	if _, ok := byName["address"]; ok {
		t.Error("group field should not be listed")
	}
	if !byName["tags"].Repeated {
		t.Error("tags should be repeated")
	}
	if !byName["visits.city"].Repeated {
		t.Error("children of a repeated group should be repeated")
	}
	if byName["address.city"].Repeated {
		t.Error("address.city should not be repeated")
	}
}

func TestSchemaTable(t *testing.T) {
	tbl := SchemaTable([]SchemaInfo{
		{Name: "id", Type: "INT64", PhysicalType: "INT64", Required: true},
	})

	want := []string{"name", "type", "physical_type", "logical_type", "required", "optional", "repeated"}
	if got := tbl.Columns(); !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
	_, rows := tbl.Records()
	if wantRow := []interface{}{"id", "INT64", "INT64", "", true, false, false}; !reflect.DeepEqual(rows[0], wantRow) {
		t.Errorf("row = %v, want %v", rows[0], wantRow)
	}
}

func TestExtractSchemaInfo_MissingFile(t *testing.T) {
	if _, err := ExtractSchemaInfo(filepath.Join(t.TempDir(), "missing.parquet")); err == nil {
		t.Error("ExtractSchemaInfo() expected error, got nil")
	}
}
