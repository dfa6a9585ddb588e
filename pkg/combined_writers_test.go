package pkg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type faultyWriter struct{}

func (fw *faultyWriter) Write([]byte) (int, error) {
	return 0, errors.New("writer broken")
}

func TestCombinedWriter_Write(t *testing.T) {
	sb1 := &strings.Builder{}
	sb1.WriteString("already-here")
	sb2 := &strings.Builder{}

	cw := NewCombinedWriter(sb1, sb2)

	n, err := cw.Write([]byte("a message"))
	require.NoError(t, err)
	assert.Equal(t, 2*len("a message"), n)

	n, err = cw.Write([]byte(" and more"))
	require.NoError(t, err)
	assert.Equal(t, 2*len(" and more"), n)

	assert.Equal(t, "already-herea message and more", sb1.String())
	assert.Equal(t, "a message and more", sb2.String())
}

func TestCombinedWriter_Write_WithError(t *testing.T) {
	sb := &strings.Builder{}
	cw := NewCombinedWriter(&faultyWriter{}, sb)

	n, err := cw.Write([]byte("a message"))
	require.ErrorContains(t, err, "writer broken")

	// the healthy writer still got the message
	assert.Equal(t, len("a message"), n)
	assert.Equal(t, "a message", sb.String())
}
