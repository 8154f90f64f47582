package reader

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadMultipleFiles_SingleFile(t *testing.T) {
	path := writeParquet(t, t.TempDir(), "sales.parquet", []saleRow{
		{Shop: "A", Amount: 1},
		{Shop: "B", Amount: 2},
	})

	tbl, err := ReadMultipleFiles(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("ReadMultipleFiles() error = %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
	if _, ok := tbl.Column(FileColumn); ok {
		t.Errorf("single file read should not add %s column", FileColumn)
	}
}

func TestReadMultipleFiles_GlobPattern(t *testing.T) {
	dir := t.TempDir()
	// written out of order to check the sorted concatenation
	for _, name := range []string{"c.parquet", "a.parquet", "b.parquet"} {
		writeParquet(t, dir, name, []saleRow{{Shop: name, Amount: 1}})
	}

	for _, concurrency := range []int{0, 1, 2} {
		t.Run(fmt.Sprintf("concurrency=%d", concurrency), func(t *testing.T) {
			tbl, err := ReadMultipleFiles(context.Background(), filepath.Join(dir, "*.parquet"), concurrency)
			if err != nil {
				t.Fatalf("ReadMultipleFiles() error = %v", err)
			}
			if tbl.Len() != 3 {
				t.Fatalf("Len() = %d, want 3", tbl.Len())
			}

			shops, _ := tbl.Column("shop")
			if want := []interface{}{"a.parquet", "b.parquet", "c.parquet"}; !reflect.DeepEqual(shops, want) {
				t.Errorf("shop = %v, want %v", shops, want)
			}

			files, ok := tbl.Column(FileColumn)
			if !ok {
				t.Fatalf("%s column missing", FileColumn)
			}
			for i, name := range []string{"a.parquet", "b.parquet", "c.parquet"} {
				if files[i] != filepath.Join(dir, name) {
					t.Errorf("%s[%d] = %v, want %s", FileColumn, i, files[i], filepath.Join(dir, name))
				}
			}
		})
	}
}

func TestReadMultipleFiles_SpecificPattern(t *testing.T) {
	dir := t.TempDir()
	writeParquet(t, dir, "data-2024.parquet", []saleRow{{Shop: "A"}})
	writeParquet(t, dir, "data-2025.parquet", []saleRow{{Shop: "B"}})
	writeParquet(t, dir, "other-2024.parquet", []saleRow{{Shop: "C"}})

	tbl, err := ReadMultipleFiles(context.Background(), filepath.Join(dir, "data-*.parquet"), 4)
	if err != nil {
		t.Fatalf("ReadMultipleFiles() error = %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}

func TestReadMultipleFiles_Errors(t *testing.T) {
	dir := t.TempDir()
	writeParquet(t, dir, "good.parquet", []saleRow{{Shop: "A"}})
	if err := writeFile(filepath.Join(dir, "bad.parquet"), "not parquet"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		pattern string
	}{
		{"no match", filepath.Join(dir, "*.missing")},
		{"bad pattern", filepath.Join(dir, "[.parquet")},
		{"unreadable match", filepath.Join(dir, "*.parquet")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadMultipleFiles(context.Background(), tt.pattern, 2); err == nil {
				t.Error("ReadMultipleFiles() expected error, got nil")
			}
		})
	}
}

func TestReadMultipleFiles_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeParquet(t, dir, "a.parquet", []saleRow{{Shop: "A"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ReadMultipleFiles(ctx, filepath.Join(dir, "*.parquet"), 1); err == nil {
		t.Error("ReadMultipleFiles() expected error for cancelled context, got nil")
	}
}
