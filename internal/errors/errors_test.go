package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := DatasetLoad("cannot open Happiness.csv", fmt.Errorf("no such file"))
	wrapped := Wrap(base, "dataset store")

	assert.Equal(t, CodeDatasetLoad, GetCode(wrapped))
	assert.True(t, HasCode(wrapped, CodeDatasetLoad))
	assert.Contains(t, wrapped.Error(), "no such file")
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	err := Wrap(fmt.Errorf("boom"), "runner")

	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestGetCode_ThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("serve: %w", InvalidInput("year_min must not exceed year_max"))

	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestMissingColumns_Message(t *testing.T) {
	err := MissingColumns([]string{"Country name", "Year"})

	assert.Equal(t, CodeMissingColumns, err.Code)
	assert.Equal(t, "missing required columns: Country name, Year", err.Error())
}
