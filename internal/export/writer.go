package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

const header = "Date,Category,Amount,Note"

// WriteCSV writes records in the order given. The note is always quoted; the other
// columns are written bare. Lines are separated by "\n" with no trailing newline.
func WriteCSV(w io.Writer, records []*transaction.Transaction) error {
	var sb strings.Builder

	sb.WriteString(header)

	for _, tx := range records {
		sb.WriteByte('\n')
		sb.WriteString(tx.Date)
		sb.WriteByte(',')
		sb.WriteString(tx.Category)
		sb.WriteByte(',')
		sb.WriteString(tx.Amount.String())
		sb.WriteByte(',')
		sb.WriteString(quote(tx.Note))
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}

	return nil
}

// Filename is the download name for an export taken at now.
func Filename(now time.Time) string {
	return "expenses_" + now.Format(time.DateOnly) + ".csv"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
