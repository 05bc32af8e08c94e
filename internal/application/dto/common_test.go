package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
)

func TestPageRequestNormalize(t *testing.T) {
	cases := []struct {
		name      string
		in        dto.PageRequest
		wantPage  int
		wantLimit int
	}{
		{"defaults", dto.PageRequest{}, 1, 10},
		{"negativos", dto.PageRequest{Page: -3, Limit: -1}, 1, 10},
		{"tope de limit", dto.PageRequest{Page: 2, Limit: 500}, 2, 100},
		{"valores válidos intactos", dto.PageRequest{Page: 4, Limit: 25}, 4, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Normalize()
			assert.Equal(t, tc.wantPage, tc.in.Page)
			assert.Equal(t, tc.wantLimit, tc.in.Limit)
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	p := dto.PageRequest{Page: 3, Limit: 10}
	assert.Equal(t, 20, p.Offset())
}

func TestNewPagination(t *testing.T) {
	// 25 elementos, páginas de 10 ⇒ 3 páginas.
	p := dto.NewPagination(2, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNextPage)
	assert.True(t, p.HasPreviousPage)

	first := dto.NewPagination(1, 10, 25)
	assert.False(t, first.HasPreviousPage)
	assert.True(t, first.HasNextPage)

	last := dto.NewPagination(3, 10, 25)
	assert.False(t, last.HasNextPage)

	empty := dto.NewPagination(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNextPage)
	assert.False(t, empty.HasPreviousPage)
}

func TestParseOptionalBool(t *testing.T) {
	assert.Nil(t, dto.ParseOptionalBool(""))
	assert.Nil(t, dto.ParseOptionalBool("quizás"))

	v := dto.ParseOptionalBool("true")
	require.NotNil(t, v)
	assert.True(t, *v)

	v = dto.ParseOptionalBool("0")
	require.NotNil(t, v)
	assert.False(t, *v)
}
