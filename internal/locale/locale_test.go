package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		segment string
		want    Locale
		ok      bool
	}{
		{"en", English, true},
		{"id", Indonesian, true},
		{"ar", Arabic, true},
		{"", Indonesian, true},
		{"fr", "", false},
		{"EN", "", false},
		{"en-US", "", false},
	}
	for _, tt := range tests {
		t.Run("segment="+tt.segment, func(t *testing.T) {
			got, ok := Resolve(tt.segment)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirection(t *testing.T) {
	assert.Equal(t, RTL, Direction(Arabic))
	assert.Equal(t, LTR, Direction(English))
	assert.Equal(t, LTR, Direction(Indonesian))
}

func TestFromPathAndPath(t *testing.T) {
	l, ok := FromPath("/ar/hostel")
	assert.True(t, ok)
	assert.Equal(t, Arabic, l)

	l, ok = FromPath("/")
	assert.True(t, ok)
	assert.Equal(t, Default, l)

	_, ok = FromPath("/de/hostel")
	assert.False(t, ok)

	assert.Equal(t, "/en", Path(English, ""))
	assert.Equal(t, "/id/auditorium", Path(Indonesian, "/auditorium/"))
}
