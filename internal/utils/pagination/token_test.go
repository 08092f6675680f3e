package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionTokenRoundTrip(t *testing.T) {
	txnDate := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, time.January, 15, 10, 30, 0, 123456789, time.UTC)
	id := "3a15f6a0-9f57-4f2e-8f52-8f0f5f9e1a11"

	token := EncodeTransactionToken(txnDate, createdAt, id)
	gotDate, gotCreated, gotID, err := DecodeTransactionToken(token)
	require.NoError(t, err)
	assert.True(t, txnDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
	assert.Equal(t, id, gotID)
}

func TestDecodeTransactionTokenInvalid(t *testing.T) {
	_, _, _, err := DecodeTransactionToken("not-base64!!!")
	assert.Error(t, err)

	// Valid base64 but wrong shape.
	_, _, _, err = DecodeTransactionToken("aGVsbG8=")
	assert.Error(t, err)
}

func TestDateBasedTokenRoundTrip(t *testing.T) {
	d := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	token := EncodeDateBasedToken(d)
	got, err := DecodeDateBasedToken(token)
	require.NoError(t, err)
	assert.True(t, d.Equal(got))
}
