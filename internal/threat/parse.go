package threat

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"threatingest/internal/metrics"
)

// Format identifies the record parser selected for an object.
type Format string

const (
	FormatJSON        Format = "json"
	FormatCSV         Format = "csv"
	FormatUnsupported Format = "unsupported"
)

// FormatForKey selects a parser from the object key suffix, ignoring case.
func FormatForKey(key string) Format {
	k := strings.ToLower(key)
	switch {
	case strings.HasSuffix(k, ".json"):
		return FormatJSON
	case strings.HasSuffix(k, ".csv"):
		return FormatCSV
	default:
		return FormatUnsupported
	}
}

// ParseObject parses body with the parser matching key. Unsupported keys
// produce no records and no error.
func ParseObject(key string, body []byte) ([]Fields, error) {
	var (
		records []Fields
		err     error
	)
	format := FormatForKey(key)
	switch format {
	case FormatJSON:
		records, err = ParseJSON(body)
	case FormatCSV:
		records, err = ParseCSV(body)
	default:
		slog.Warn("unsupported file type", "key", key)
		return []Fields{}, nil
	}
	if err != nil {
		return nil, err
	}
	metrics.RecordsParsed.WithLabelValues(string(format)).Add(float64(len(records)))
	return records, nil
}

// ParseJSON accepts either a top-level array of objects or an object whose
// "indicators" key holds such an array. Any other shape yields no records.
func ParseJSON(body []byte) ([]Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(body, utf8BOM)))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrDecode, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: json: trailing data after top-level value", ErrDecode)
	}

	var items []any
	switch v := payload.(type) {
	case []any:
		items = v
	case map[string]any:
		items, _ = v["indicators"].([]any)
	}

	out := make([]Fields, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			out = append(out, Fields{})
			continue
		}
		out = append(out, fieldsFromObject(obj))
	}
	return out, nil
}

func fieldsFromObject(obj map[string]any) Fields {
	f := make(Fields, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case nil:
		case string:
			f[k] = val
		case json.Number:
			f[k] = val.String()
		case bool:
			if val {
				f[k] = "true"
			} else {
				f[k] = "false"
			}
		default:
			raw, err := json.Marshal(val)
			if err == nil {
				f[k] = string(raw)
			}
		}
	}
	return f
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV reads a header row followed by data rows. Rows may be shorter or
// longer than the header: missing columns are absent, extra ones dropped.
// Stray quotes inside unquoted fields are kept as literal characters.
func ParseCSV(body []byte) ([]Fields, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(body, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []Fields{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: csv header: %v", ErrDecode, err)
	}

	out := []Fields{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv: %v", ErrDecode, err)
		}
		f := make(Fields, len(header))
		for i, name := range header {
			if i >= len(row) {
				break
			}
			f[name] = row[i]
		}
		out = append(out, f)
	}
	return out, nil
}
