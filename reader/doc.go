// Package reader loads tables from parquet, CSV and Excel files.
//
// # Parquet
//
// A single file is read with NewReader and ReadAll; columns keep the order
// of the file schema:
//
//	r, err := reader.NewReader("sales.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	t, err := r.ReadAll()
//
// ReadMultipleFiles expands a glob pattern, reads the matches concurrently
// and stacks them in path order. Each row carries the source path in the
// "_file" column:
//
//	t, err := reader.ReadMultipleFiles(ctx, "data/2024-*.parquet", 4)
//
// ExtractSchemaInfo lists the leaf columns of a file with their physical and
// logical types; SchemaTable turns that listing into a table for printing.
//
// # CSV and Excel
//
// ReadCSV and ReadXLSX treat the first row as the header and infer cell
// types with InferValue: integers become int64, other numbers float64,
// "true"/"false" bool, empty cells nil, and everything else stays a string.
//
// Load picks the right reader from the file extension.
package reader
