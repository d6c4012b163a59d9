package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

// Racing appends surface as either a unique violation on the insert or
// a serialization failure at commit; both must classify so they map to
// the retryable version conflict.
func TestConflictErrorClassification(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: pq.ErrorCode(uniqueViolation)}))
	assert.True(t, isSerializationFailure(&pq.Error{Code: pq.ErrorCode(serializationFailure)}))

	wrapped := fmt.Errorf("driver: %w", &pq.Error{Code: pq.ErrorCode(serializationFailure)})
	assert.True(t, isSerializationFailure(wrapped))

	assert.False(t, isUniqueViolation(&pq.Error{Code: pq.ErrorCode(serializationFailure)}))
	assert.False(t, isSerializationFailure(&pq.Error{Code: pq.ErrorCode(uniqueViolation)}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.False(t, isSerializationFailure(nil))
}
