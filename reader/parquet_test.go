package reader

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/parquet-go/parquet-go"
)

type saleRow struct {
	Shop   string  `parquet:"shop"`
	Amount int64   `parquet:"amount"`
	Price  float64 `parquet:"price"`
}

// writeParquet writes rows to dir/name and returns the file path.
func writeParquet[T any](t *testing.T, dir, name string, rows []T) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	writer := parquet.NewGenericWriter[T](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
	return path
}

func TestReader_ReadAll(t *testing.T) {
	path := writeParquet(t, t.TempDir(), "sales.parquet", []saleRow{
		{Shop: "A", Amount: 10, Price: 1.5},
		{Shop: "A", Amount: 20, Price: 2.5},
		{Shop: "B", Amount: 5, Price: 3.0},
	})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	tbl, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}
	if got := tbl.Columns(); !reflect.DeepEqual(got, r.Columns()) {
		t.Errorf("Columns() = %v, want schema order %v", got, r.Columns())
	}

	amounts, ok := tbl.Column("amount")
	if !ok {
		t.Fatal("amount column missing")
	}
	if want := []interface{}{int64(10), int64(20), int64(5)}; !reflect.DeepEqual(amounts, want) {
		t.Errorf("amount = %v, want %v", amounts, want)
	}

	shops, _ := tbl.Column("shop")
	if want := []interface{}{"A", "A", "B"}; !reflect.DeepEqual(shops, want) {
		t.Errorf("shop = %v, want %v", shops, want)
	}
}

func TestReader_CloseTwice(t *testing.T) {
	path := writeParquet(t, t.TempDir(), "sales.parquet", []saleRow{{Shop: "A"}})

	r, err := NewReader(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestNewReader_Errors(t *testing.T) {
	dir := t.TempDir()
	notParquet := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(notParquet, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.parquet")},
		{"not parquet", notParquet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewReader(tt.path); err == nil {
				t.Error("NewReader() expected error, got nil")
			}
		})
	}
}
