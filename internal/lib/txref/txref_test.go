package txref

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndUserID(t *testing.T) {
	ref := New(123)
	assert.True(t, strings.HasPrefix(ref, "unifinder-123-"))

	id, err := UserID(ref)
	require.NoError(t, err)
	assert.Equal(t, int64(123), id)
}

func TestNew_UniquePerAttempt(t *testing.T) {
	assert.NotEqual(t, New(7), New(7))
}

func TestUserID_Malformed(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{"пустая строка", ""},
		{"без сегментов", "unifinder"},
		{"два сегмента", "unifinder-42"},
		{"нечисловой id", "unifinder-abc-uuid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UserID(tt.ref)
			assert.Error(t, err)
		})
	}
}
