package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeLedgerToken creates a base64 encoded token from a ledger position.
// The token is opaque to clients and points just past the given entry.
func EncodeLedgerToken(cursor domain.LedgerCursor) string {
	tokenStr := strings.Join([]string{
		cursor.Date.String(),
		cursor.CreatedAt.UTC().Format(timeFormat),
		cursor.TransactionID,
	}, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeLedgerToken parses a token produced by EncodeLedgerToken.
func DecodeLedgerToken(token string) (domain.LedgerCursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return domain.LedgerCursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return domain.LedgerCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := domain.ParseDate(parts[0])
	if err != nil {
		return domain.LedgerCursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return domain.LedgerCursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return domain.LedgerCursor{Date: date, CreatedAt: createdAt, TransactionID: parts[2]}, nil
}

// CursorLess orders a cursor against a transaction using ledger order.
func CursorLess(c domain.LedgerCursor, t domain.Transaction) bool {
	return domain.LedgerLess(
		domain.Transaction{TransactionID: c.TransactionID, Date: c.Date, AuditFields: domain.AuditFields{CreatedAt: c.CreatedAt}},
		t,
	)
}
