package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := New(CodeIoError, "tabular", "failed to open file", nil)
	assert.Equal(t, "[tabular:IO_ERROR] failed to open file", err.Error())

	cause := stderrors.New("permission denied")
	wrapped := New(CodeIoError, "tabular", "failed to open file", cause)
	assert.Equal(t, "[tabular:IO_ERROR] failed to open file: permission denied", wrapped.Error())
	assert.Same(t, cause, stderrors.Unwrap(wrapped))
}

func TestErrorMatchesByCode(t *testing.T) {
	err := fmt.Errorf("context: %w", New(CodeMissingColumns, "layer", "columns missing", nil))

	assert.True(t, stderrors.Is(err, &Error{Code: CodeMissingColumns}))
	assert.False(t, stderrors.Is(err, &Error{Code: CodeNotFound}))
	assert.True(t, HasCode(err, CodeMissingColumns))
	assert.Equal(t, CodeMissingColumns, CodeOf(err))
	assert.Equal(t, CodeUnknown, CodeOf(stderrors.New("plain")))
}
