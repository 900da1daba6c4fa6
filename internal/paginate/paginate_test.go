package paginate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"1.5", 1},
		{"2", 2},
		{" 7 ", 7},
		{"999", 999},
		{"99999999999999999999", math.MaxInt},
		{"+99999999999999999999", math.MaxInt},
		{"-99999999999999999999", 1},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.raw))
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		requested int
		want      Window
	}{
		{"empty", 0, 1, Window{Number: 1, NumPages: 1, Total: 0, Offset: 0, Limit: 10}},
		{"empty past end", 0, 5, Window{Number: 1, NumPages: 1, Total: 0, Offset: 0, Limit: 10}},
		{"exact page", 10, 1, Window{Number: 1, NumPages: 1, Total: 10, Offset: 0, Limit: 10}},
		{"second page", 25, 2, Window{Number: 2, NumPages: 3, Total: 25, Offset: 10, Limit: 10}},
		{"clamped", 25, 40, Window{Number: 3, NumPages: 3, Total: 25, Offset: 20, Limit: 10}},
		{"below one", 25, -1, Window{Number: 1, NumPages: 3, Total: 25, Offset: 0, Limit: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.total, PageSize, tt.requested))
		})
	}
}

func TestNew_DefaultSize(t *testing.T) {
	w := New(11, 0, 2)
	assert.Equal(t, PageSize, w.Limit)
	assert.Equal(t, 2, w.NumPages)
}

func TestSlice_EmptyCollection(t *testing.T) {
	p := Slice([]string(nil), PageSize, 3)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.NumPages)
	assert.Empty(t, p.Items)
	assert.NotNil(t, p.Items)
	assert.False(t, p.HasPrevious)
	assert.False(t, p.HasNext)
	assert.Equal(t, []int{1}, p.Pages())
}

func TestSlice_Navigation(t *testing.T) {
	p := Slice(seq(23), PageSize, 2)
	assert.Equal(t, seq(20)[10:], p.Items)
	assert.True(t, p.HasPrevious)
	assert.True(t, p.HasNext)
	assert.Equal(t, 1, p.PreviousNumber)
	assert.Equal(t, 3, p.NextNumber)
	assert.Equal(t, []int{1, 2, 3}, p.Pages())

	last := Slice(seq(23), PageSize, 3)
	assert.Equal(t, []int{20, 21, 22}, last.Items)
	assert.False(t, last.HasNext)
	assert.Zero(t, last.NextNumber)
}

// Every page holds at most PageSize items and the pages, concatenated,
// reproduce the collection exactly once.
func TestSlice_PagesCoverCollection(t *testing.T) {
	for n := 0; n <= 53; n++ {
		items := seq(n)
		first := Slice(items, PageSize, 1)

		var joined []int
		for number := 1; number <= first.NumPages; number++ {
			p := Slice(items, PageSize, number)
			require.LessOrEqual(t, len(p.Items), PageSize)
			require.Equal(t, number, p.Number)
			joined = append(joined, p.Items...)
		}
		if n == 0 {
			assert.Empty(t, joined)
			continue
		}
		assert.Equal(t, items, joined, "n=%d", n)
	}
}

func TestSlice_OutOfRangeRequests(t *testing.T) {
	for n := 1; n <= 35; n++ {
		items := seq(n)
		first := Slice(items, PageSize, 1)
		last := Slice(items, PageSize, first.NumPages)

		for _, requested := range []int{0, -1, -100} {
			assert.Equal(t, first.Items, Slice(items, PageSize, requested).Items)
		}
		for _, requested := range []int{first.NumPages + 1, first.NumPages + 50} {
			p := Slice(items, PageSize, requested)
			assert.Equal(t, last.Items, p.Items)
			assert.NotEmpty(t, p.Items)
		}
		assert.Equal(t, first.Items, Slice(items, PageSize, ParseNumber("nope")).Items)
	}
}

func TestNew_SaturatedRequestLandsOnLastPage(t *testing.T) {
	w := New(25, PageSize, ParseNumber("99999999999999999999"))
	assert.Equal(t, 3, w.Number)
	assert.Equal(t, 20, w.Offset)
	assert.Equal(t, 10, w.Limit)
}
