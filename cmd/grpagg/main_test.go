package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/grpagg/groupagg"
)

type saleRow struct {
	Shop   string `parquet:"shop"`
	Amount int64  `parquet:"amount"`
}

var sales = []saleRow{
	{Shop: "A", Amount: 10},
	{Shop: "A", Amount: 20},
	{Shop: "B", Amount: 5},
}

// createTestParquetFile writes rows to dir/name and returns the path
func createTestParquetFile(t *testing.T, dir, name string, rows []saleRow) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	require.NoError(t, err)

	writer := parquet.NewGenericWriter[saleRow](f)
	_, err = writer.Write(rows)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, f.Close())
	return path
}

// runCLI runs the command and returns exit code, stdout and stderr
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// decodeLines parses JSON Lines output
func decodeLines(t *testing.T, out string) []map[string]interface{} {
	t.Helper()
	var rows []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var row map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &row), "line %q", line)
		rows = append(rows, row)
	}
	return rows
}

func TestRun_Rename(t *testing.T) {
	path := createTestParquetFile(t, t.TempDir(), "sales.parquet", sales)

	code, stdout, stderr := runCLI(t, "-by", "shop", "-agg", "amount=sum,mean", path)
	require.Equal(t, 0, code, stderr)

	assert.Equal(t, []map[string]interface{}{
		{"shop": "A", "amount_sum": 30.0, "amount_mean": 15.0},
		{"shop": "B", "amount_sum": 5.0, "amount_mean": 5.0},
	}, decodeLines(t, stdout))
	assert.True(t, strings.HasPrefix(stdout, `{"shop":"A","amount_sum":30,`), "key column first: %s", stdout)
}

func TestRun_Merge(t *testing.T) {
	path := createTestParquetFile(t, t.TempDir(), "sales.parquet", sales)

	code, stdout, stderr := runCLI(t, "-by", "shop", "-agg", "amount=[sum]", "-agg", "amount=mean", "-merge", path)
	// amount appears twice in the spec
	require.Equal(t, 1, code)
	assert.Contains(t, stderr, "more than once")
	assert.Empty(t, stdout)

	code, stdout, stderr = runCLI(t, "-by", "shop", "-agg", "amount=sum,mean", "-merge", path)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, []map[string]interface{}{
		{"shop": "A", "amount": 10.0, "amount_sum": 30.0, "amount_mean": 15.0},
		{"shop": "A", "amount": 20.0, "amount_sum": 30.0, "amount_mean": 15.0},
		{"shop": "B", "amount": 5.0, "amount_sum": 5.0, "amount_mean": 5.0},
	}, decodeLines(t, stdout))
}

func TestRun_CSVAndLimit(t *testing.T) {
	path := createTestParquetFile(t, t.TempDir(), "sales.parquet", sales)

	code, stdout, stderr := runCLI(t, "-by", "shop", "-agg", "amount=max", "-f", "csv", "-limit", "1", "-no-index", path)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "shop,amount_max\nA,20\n", stdout)
}

func TestRun_GlobInput(t *testing.T) {
	dir := t.TempDir()
	createTestParquetFile(t, dir, "part-1.parquet", sales[:2])
	createTestParquetFile(t, dir, "part-2.parquet", sales[2:])

	code, stdout, stderr := runCLI(t, "-by", "_file", "-agg", "amount=count", filepath.Join(dir, "*.parquet"))
	require.Equal(t, 0, code, stderr)

	rows := decodeLines(t, stdout)
	require.Len(t, rows, 2)
	assert.Equal(t, 2.0, rows[0]["amount_count"])
	assert.Equal(t, 1.0, rows[1]["amount_count"])
}

func TestRun_SpecFile(t *testing.T) {
	dir := t.TempDir()
	path := createTestParquetFile(t, dir, "sales.parquet", sales)
	job := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(job, []byte(
		"input: "+path+"\nby: [shop]\nagg:\n  amount: [sum]\nformat: csv\n"), 0o644))

	code, stdout, stderr := runCLI(t, "-spec", job)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "shop,amount_sum\nA,30\nB,5\n", stdout)

	// explicit -f overrides the job file
	code, stdout, stderr = runCLI(t, "-spec", job, "-f", "jsonl")
	require.Equal(t, 0, code, stderr)
	assert.Len(t, decodeLines(t, stdout), 2)
}

func TestRun_CSVInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("shop,amount\nA,10\nA,20\nB,5\n"), 0o644))

	code, stdout, stderr := runCLI(t, "-by", "shop", "-agg", "amount=sum", "-f", "csv", path)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "shop,amount_sum\nA,30\nB,5\n", stdout)
}

func TestRun_Schema(t *testing.T) {
	path := createTestParquetFile(t, t.TempDir(), "sales.parquet", sales)

	code, stdout, stderr := runCLI(t, "-schema", path)
	require.Equal(t, 0, code, stderr)

	rows := decodeLines(t, stdout)
	require.Len(t, rows, 2)
	names := []interface{}{rows[0]["name"], rows[1]["name"]}
	assert.ElementsMatch(t, []interface{}{"shop", "amount"}, names)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	path := createTestParquetFile(t, dir, "sales.parquet", sales)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no by", []string{path}, "missing -by"},
		{"negative limit", []string{"-by", "shop", "-limit", "-1", path}, "non-negative"},
		{"schema with by", []string{"-schema", "-by", "shop", path}, "-schema cannot be combined"},
		{"schema without file", []string{"-schema"}, "missing parquet file"},
		{"spec with agg", []string{"-spec", "job.yaml", "-agg", "a=sum", path}, "-spec cannot be combined"},
		{"merge without index", []string{"-by", "shop", "-merge", "-no-index", path}, "cannot be used together"},
		{"missing input", []string{"-by", "shop"}, "missing input"},
		{"bad agg", []string{"-by", "shop", "-agg", "amount", path}, "invalid -agg"},
		{"unknown function", []string{"-by", "shop", "-agg", "amount=mode", path}, "unknown aggregation function"},
		{"unknown column", []string{"-by", "region", path}, "not found"},
		{"missing file", []string{"-by", "shop", filepath.Join(dir, "nope.parquet")}, "not found"},
		{"bad format", []string{"-by", "shop", "-f", "xml", path}, "oneof"},
		{"two files", []string{"-by", "shop", path, path}, "one input file"},
		{"unknown flag", []string{"-q", "select", path}, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestAggEntries(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []groupagg.Entry
	}{
		{"single", []string{"amount=sum"}, []groupagg.Entry{{Column: "amount", Funcs: "sum"}}},
		{"list", []string{"amount=sum, mean"}, []groupagg.Entry{{Column: "amount", Funcs: []string{"sum", "mean"}}}},
		{"bracketed", []string{"amount=[sum]"}, []groupagg.Entry{{Column: "amount", Funcs: []string{"sum"}}}},
		{"several", []string{"a=min", "b=max"}, []groupagg.Entry{{Column: "a", Funcs: "min"}, {Column: "b", Funcs: "max"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := aggEntries(tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"amount", "=sum", "amount=", "amount=[]", "amount=,"} {
		_, err := aggEntries([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestAggMapSlice_DecodesLikeJobFile(t *testing.T) {
	entries, err := aggEntries([]string{"amount=sum,mean", "qty=max"})
	require.NoError(t, err)

	spec, err := groupagg.ParseSpecMapSlice(aggMapSlice(entries))
	require.NoError(t, err)
	assert.Equal(t, 2, spec.Levels())
	assert.Len(t, spec.Aggregations(), 3)
}
