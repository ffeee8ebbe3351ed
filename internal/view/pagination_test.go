package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 6))
	assert.Equal(t, 1, TotalPages(1, 6))
	assert.Equal(t, 1, TotalPages(6, 6))
	assert.Equal(t, 2, TotalPages(7, 6))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestPage(t *testing.T) {
	items := []int{10, 20, 30, 40, 50, 60, 70}

	assert.Equal(t, []int{10, 20, 30}, Page(items, 1, 3))
	assert.Equal(t, []int{40, 50, 60}, Page(items, 2, 3))
	assert.Equal(t, []int{70}, Page(items, 3, 3))
	assert.Nil(t, Page(items, 4, 3), "past the end")
	assert.Nil(t, Page(items, 0, 3), "pages are 1-based")
	assert.Nil(t, Page(items, 1, 0))
}

func TestPageRange(t *testing.T) {
	tests := []struct {
		name         string
		totalPages   int
		siblingCount int
		currentPage  int
		want         []int
	}{
		{
			name:       "few pages, all shown",
			totalPages: 4, currentPage: 2,
			want: []int{1, 2, 3, 4},
		},
		{
			name:       "dots on the right only",
			totalPages: 10, currentPage: 1,
			want: []int{1, 2, 3, Dots, 10},
		},
		{
			name:       "dots on the left only",
			totalPages: 10, currentPage: 10,
			want: []int{1, Dots, 8, 9, 10},
		},
		{
			name:       "dots on both sides",
			totalPages: 10, currentPage: 5,
			want: []int{1, Dots, 5, Dots, 10},
		},
		{
			name:       "siblings widen the middle",
			totalPages: 20, siblingCount: 1, currentPage: 10,
			want: []int{1, Dots, 9, 10, 11, Dots, 20},
		},
		{
			name:       "single page",
			totalPages: 1, currentPage: 1,
			want: []int{1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PageRange(tc.totalPages, tc.siblingCount, tc.currentPage)
			assert.Equal(t, tc.want, got)
		})
	}
}
