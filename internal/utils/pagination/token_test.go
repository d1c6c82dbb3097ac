package pagination_test

import (
	"testing"
	"time"

	"github.com/finbooks/ledger_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 4, 1, 10, 30, 15, 123456789, time.UTC)

	token := pagination.EncodeToken(entryDate, createdAt)
	require.NotEmpty(t, token)

	gotDate, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, entryDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeTokenInvalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("aGVsbG8=") // "hello", no separator
	assert.Error(t, err)
}

func TestDateBasedToken(t *testing.T) {
	date := time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)
	token := pagination.EncodeDateBasedToken(date)

	got, err := pagination.DecodeDateBasedToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(got))
}
