package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationRoundsUpPartialPage(t *testing.T) {
	p := NewPagination(45, 2, 20)

	assert.Equal(t, 45, p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 20, p.PerPage)
}

func TestNewPaginationExactMultiple(t *testing.T) {
	p := NewPagination(40, 1, 20)

	assert.Equal(t, 2, p.TotalPages)
}

func TestNewPaginationEmptyResult(t *testing.T) {
	p := NewPagination(0, 1, 20)

	assert.Zero(t, p.TotalPages)
	assert.Zero(t, p.Total)
}

func TestNewPaginationClampsInvalidInputs(t *testing.T) {
	p := NewPagination(10, 0, 0)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 1, p.TotalPages)
}
