package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Cursor is the page boundary of a transaction listing: the sort key of the
// last row served, from which the next page resumes.
type Cursor struct {
	TransactionDate time.Time `json:"txnDate"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Encode renders the cursor as an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw, err := json.Marshal(c)
	if err != nil {
		// two time.Time fields cannot fail to marshal
		panic(fmt.Sprintf("pagination: encode cursor: %v", err))
	}
	return base64.URLEncoding.EncodeToString(raw)
}

// DecodeCursor parses a listing token back into a cursor.
func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token (cursor decode): %w", err)
	}
	return c, nil
}
