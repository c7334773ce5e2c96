package data

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrMissingColumn is returned when a required column is absent from a table.
	ErrMissingColumn = errors.New("missing column")
	// ErrNoRows is returned for a file that has a header but no records.
	ErrNoRows = errors.New("no data rows")
)

// Supported source encodings.
const (
	EncodingUTF8 = "utf-8"
	EncodingBig5 = "big5"
)

// LoadOptions controls how a transaction file is parsed.
type LoadOptions struct {
	// Delimiter between fields. Zero means ','.
	Delimiter rune
	// Encoding of the file: EncodingUTF8 (default) or EncodingBig5.
	Encoding string
	// TextColumns are read as strings regardless of what their values look like.
	TextColumns []string
}

// LoadCSV opens path and reads it with ReadCSV.
func LoadCSV(path string, opts LoadOptions) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	df, err := ReadCSV(bufio.NewReader(file), opts)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return df, nil
}

// ReadCSV parses a delimited table with a header row. Column names and row
// order are kept as they appear in the source.
func ReadCSV(r io.Reader, opts LoadOptions) (dataframe.DataFrame, error) {
	dec, err := decoder(opts.Encoding)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = ','
	}

	types := make(map[string]series.Type, len(opts.TextColumns))
	for _, name := range opts.TextColumns {
		types[name] = series.String
	}

	df := dataframe.ReadCSV(
		transform.NewReader(r, dec),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithDelimiter(delim),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse csv: %w", df.Err)
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, ErrNoRows
	}
	return df, nil
}

// decoder strips a UTF-8 byte order mark in either case, since spreadsheet
// exports of the open-data files usually carry one.
func decoder(name string) (transform.Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case EncodingBig5:
		return unicode.BOMOverride(traditionalchinese.Big5.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// HasColumns reports the first name in want that df lacks, wrapped in ErrMissingColumn.
func HasColumns(df dataframe.DataFrame, want ...string) error {
	have := make(map[string]struct{}, df.Ncol())
	for _, n := range df.Names() {
		have[n] = struct{}{}
	}
	for _, n := range want {
		if _, ok := have[n]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, n)
		}
	}
	return nil
}
