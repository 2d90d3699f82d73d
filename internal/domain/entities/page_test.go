package entities

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(-3))
	assert.Equal(t, 0, Offset(1))
	assert.Equal(t, 20, Offset(3))
}

func TestPageLastPage(t *testing.T) {
	assert.Equal(t, 1, Page[int]{PerPage: PageSize}.LastPage())
	assert.Equal(t, 1, Page[int]{PerPage: PageSize, Total: 10}.LastPage())
	assert.Equal(t, 2, Page[int]{PerPage: PageSize, Total: 11}.LastPage())
}

func TestMapPage(t *testing.T) {
	page := Page[int]{Items: []int{1, 2}, CurrentPage: 2, PerPage: PageSize, Total: 12}

	mapped := MapPage(page, strconv.Itoa)

	assert.Equal(t, []string{"1", "2"}, mapped.Items)
	assert.Equal(t, 2, mapped.CurrentPage)
	assert.Equal(t, int64(12), mapped.Total)
}
