package output

import (
	"io"
	"math"

	jsoniter "github.com/json-iterator/go"

	"github.com/vegasq/grpagg/frame"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONFormatter outputs rows as JSON Lines, one object per row with keys in
// column order.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes t as JSON Lines
func (j *JSONFormatter) Format(t *frame.Table) error {
	header, rows := t.Records()

	stream := json.BorrowStream(j.writer)
	defer json.ReturnStream(stream)

	for _, row := range rows {
		writeObject(stream, header, row)
		stream.WriteRaw("\n")
		if err := stream.Flush(); err != nil {
			return err
		}
	}
	return stream.Error
}

// JSONArrayFormatter outputs the whole table as a single JSON array of
// objects.
type JSONArrayFormatter struct {
	writer io.Writer
}

// NewJSONArrayFormatter creates a new JSON array formatter
func NewJSONArrayFormatter(w io.Writer) *JSONArrayFormatter {
	return &JSONArrayFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONArrayFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes t as a JSON array
func (j *JSONArrayFormatter) Format(t *frame.Table) error {
	header, rows := t.Records()

	stream := json.BorrowStream(j.writer)
	defer json.ReturnStream(stream)

	stream.WriteArrayStart()
	for i, row := range rows {
		if i > 0 {
			stream.WriteMore()
		}
		writeObject(stream, header, row)
	}
	stream.WriteArrayEnd()
	stream.WriteRaw("\n")

	if err := stream.Flush(); err != nil {
		return err
	}
	return stream.Error
}

func writeObject(stream *jsoniter.Stream, header []string, row []interface{}) {
	stream.WriteObjectStart()
	for c, name := range header {
		if c > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(name)
		stream.WriteVal(jsonValue(row[c]))
	}
	stream.WriteObjectEnd()
}

// jsonValue maps values JSON cannot carry: NaN and infinities become null.
func jsonValue(v interface{}) interface{} {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil
		}
	}
	return v
}
