package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeEmail(t *testing.T) {
	assert.Empty(t, AnonymizeEmail(""))

	hashed := AnonymizeEmail("user@example.com")
	assert.Contains(t, hashed, "user:")
	assert.NotContains(t, hashed, "example.com")

	// Same input correlates to the same hash.
	assert.Equal(t, hashed, AnonymizeEmail("user@example.com"))
	assert.NotEqual(t, hashed, AnonymizeEmail("other@example.com"))
}

func TestErr(t *testing.T) {
	// A nil error must produce an attribute slog omits entirely.
	attr := Err(nil)
	assert.Equal(t, slog.KindGroup, attr.Value.Kind())

	attr = Err(assert.AnError)
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, assert.AnError.Error(), attr.Value.String())
}

func TestAttributeConstructors(t *testing.T) {
	assert.Equal(t, KeyOperation, Operation("analyze").Key)
	assert.Equal(t, KeyAccount, Account("default").Key)
	assert.Equal(t, KeyCalendar, Calendar("primary").Key)
	assert.Equal(t, KeyEventID, EventID("abc123").Key)
	assert.Equal(t, KeyDate, Date("2025-03-10").Key)
	assert.Equal(t, KeyTool, Tool("schedule_analyze").Key)
}
