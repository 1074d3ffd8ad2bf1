package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCursorRoundTrip(t *testing.T) {
	cursor := Cursor{
		TransactionDate: time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:       time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC),
	}

	token := cursor.Encode()
	assert.NotEmpty(t, token)

	decoded, err := DecodeCursor(token)
	assert.NoError(t, err)
	assert.True(t, cursor.TransactionDate.Equal(decoded.TransactionDate))
	assert.True(t, cursor.CreatedAt.Equal(decoded.CreatedAt))

	// Zero values round-trip too.
	zero, err := DecodeCursor(Cursor{}.Encode())
	assert.NoError(t, err)
	assert.True(t, zero.TransactionDate.IsZero())
	assert.True(t, zero.CreatedAt.IsZero())
}

func TestDecodeCursorError(t *testing.T) {
	_, err := DecodeCursor("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	// Valid base64, but the payload is not a cursor.
	_, err = DecodeCursor("bm90IGpzb24=")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cursor decode")
}
