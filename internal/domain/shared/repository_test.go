package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortSpec(t *testing.T) {
	t.Run("defaults to createdAt desc when empty", func(t *testing.T) {
		spec := ParseSortSpec("")
		assert.Equal(t, "createdAt", spec.Field)
		assert.True(t, spec.Desc)
	})

	t.Run("defaults when no comma present", func(t *testing.T) {
		spec := ParseSortSpec("amount")
		assert.Equal(t, "createdAt", spec.Field)
		assert.True(t, spec.Desc)
	})

	t.Run("parses field and desc direction case-insensitively", func(t *testing.T) {
		spec := ParseSortSpec("amount,DESC")
		assert.Equal(t, "amount", spec.Field)
		assert.True(t, spec.Desc)
	})

	t.Run("any direction other than desc sorts ascending", func(t *testing.T) {
		for _, dir := range []string{"asc", "ASC", "up", ""} {
			spec := ParseSortSpec("currency," + dir)
			assert.Equal(t, "currency", spec.Field)
			assert.False(t, spec.Desc, "direction %q should sort ascending", dir)
		}
	})

	t.Run("trims whitespace around tokens", func(t *testing.T) {
		spec := ParseSortSpec(" status , desc ")
		assert.Equal(t, "status", spec.Field)
		assert.True(t, spec.Desc)
	})

	t.Run("empty field falls back to default", func(t *testing.T) {
		spec := ParseSortSpec(",desc")
		assert.Equal(t, "createdAt", spec.Field)
		assert.True(t, spec.Desc)
	})
}

func TestSlicePage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("first page", func(t *testing.T) {
		page, total := SlicePage(items, PageRequest{Page: 0, Size: 2})
		assert.Equal(t, []int{1, 2}, page)
		assert.Equal(t, int64(5), total)
	})

	t.Run("last partial page", func(t *testing.T) {
		page, total := SlicePage(items, PageRequest{Page: 2, Size: 2})
		assert.Equal(t, []int{5}, page)
		assert.Equal(t, int64(5), total)
	})

	t.Run("page beyond range is empty with correct total", func(t *testing.T) {
		page, total := SlicePage(items, PageRequest{Page: 999999, Size: 2})
		assert.NotNil(t, page)
		assert.Empty(t, page)
		assert.Equal(t, int64(5), total)
	})

	t.Run("zero size falls back to default", func(t *testing.T) {
		page, total := SlicePage(items, PageRequest{Page: 0, Size: 0})
		assert.Len(t, page, 5)
		assert.Equal(t, int64(5), total)
	})

	t.Run("negative page treated as first page", func(t *testing.T) {
		page, _ := SlicePage(items, PageRequest{Page: -1, Size: 3})
		assert.Equal(t, []int{1, 2, 3}, page)
	})

	t.Run("sum of page sizes equals total", func(t *testing.T) {
		var seen int
		for p := 0; ; p++ {
			page, total := SlicePage(items, PageRequest{Page: p, Size: 2})
			assert.Equal(t, int64(5), total)
			if len(page) == 0 {
				break
			}
			seen += len(page)
		}
		assert.Equal(t, 5, seen)
	})
}
