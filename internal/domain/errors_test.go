package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFoundf("battery %s not found", "b1")))
	assert.Equal(t, KindCapacityExceeded, KindOf(CapacityExceeded("s1", 5, 5)))

	wrapped := fmt.Errorf("handling request: %w", InvalidStatef("battery in use"))
	assert.Equal(t, KindInvalidState, KindOf(wrapped))

	assert.Equal(t, KindStorageUnavailable, KindOf(errors.New("connection refused")))
}

func TestCapacityExceededDetails(t *testing.T) {
	err := CapacityExceeded("s1", 5, 5)
	assert.Equal(t, 5, err.Current)
	assert.Equal(t, 5, err.Capacity)
	assert.Contains(t, err.Message, "5 of 5")
}

func TestStorageErrorHidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:5432: i/o timeout")
	err := StorageError("list transfers", cause)

	assert.NotContains(t, err.Message, "10.0.0.5")
	assert.ErrorIs(t, err, cause)
}

func TestParseTransferStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected TransferStatus
		wantErr  bool
	}{
		{input: "", expected: TransferCompleted},
		{input: "pending", expected: TransferPending},
		{input: "in_transit", expected: TransferInTransit},
		{input: "completed", expected: TransferCompleted},
		{input: "cancelled", expected: TransferCancelled},
		{input: "done", wantErr: true},
		{input: "full", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("status "+tt.input, func(t *testing.T) {
			got, err := ParseTransferStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, KindInvalidRequest, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
