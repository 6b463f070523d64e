package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/pocketbook/internal/encoding"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

// Result is what a parse produced: the accepted rows plus a count of the rows it skipped.
type Result struct {
	Rows    []transaction.CreateParams
	Skipped int
	Charset enc.Charset
}

// Parser reads the Date,Category,Amount,Note export format. The first record is taken
// as the header and dropped. Rows that cannot be read as a positive expense are skipped
// without failing the whole file.
//
// Quoted notes may span lines, but an open quote never swallows a following line that
// is a complete row on its own; the record holding the stray quote is skipped instead.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) (*Result, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	res := &Result{Charset: charset}
	header := true

	for _, chunk := range splitRecords(string(data)) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		if header {
			header = false
			continue
		}

		fields, ok := tokenize(chunk)
		if !ok {
			res.Skipped++
			continue
		}

		params, ok := parseRecord(fields)
		if !ok {
			res.Skipped++
			continue
		}

		res.Rows = append(res.Rows, params)
	}

	return res, nil
}

// splitRecords groups physical lines into records. A record with an unbalanced quote
// takes the next line as a continuation unless that line starts a row of its own.
func splitRecords(text string) []string {
	lines := strings.Split(text, "\n")
	records := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		rec := strings.TrimSuffix(lines[i], "\r")

		for openQuote(rec) && i+1 < len(lines) {
			next := strings.TrimSuffix(lines[i+1], "\r")
			if startsRow(next) {
				break
			}

			rec += "\n" + next
			i++
		}

		records = append(records, rec)
	}

	return records
}

func openQuote(s string) bool {
	return strings.Count(s, `"`)%2 == 1
}

// startsRow reports whether line is a valid row without any help from the lines around it.
func startsRow(line string) bool {
	fields := strings.SplitN(line, ",", 4)
	if len(fields) < 4 || strings.ContainsRune(strings.Join(fields[:3], ""), '"') {
		return false
	}

	_, ok := parseRecord(fields)

	return ok
}

// tokenize reads exactly one RFC 4180 record out of chunk.
func tokenize(chunk string) ([]string, bool) {
	if openQuote(chunk) {
		return nil, false
	}

	reader := csv.NewReader(strings.NewReader(chunk))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	fields, err := reader.Read()
	if err != nil {
		return nil, false
	}

	if _, err := reader.Read(); err != io.EOF {
		return nil, false
	}

	return fields, true
}

// parseRecord maps one record onto CreateParams. Notes containing unquoted commas
// arrive split over several fields and are joined back together.
func parseRecord(fields []string) (transaction.CreateParams, bool) {
	if len(fields) < 4 {
		return transaction.CreateParams{}, false
	}

	for _, f := range fields[:3] {
		if f == "" {
			return transaction.CreateParams{}, false
		}
	}

	date := strings.TrimSpace(fields[0])
	if date == "" {
		return transaction.CreateParams{}, false
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
	if err != nil || amount.Sign() <= 0 {
		return transaction.CreateParams{}, false
	}

	category := strings.TrimSpace(fields[1])
	if category == "" {
		category = transaction.CategoryGeneral
	}

	return transaction.CreateParams{
		Amount:   amount,
		Category: category,
		Note:     strings.TrimSpace(strings.Join(fields[3:], ",")),
		Date:     date,
	}, true
}
