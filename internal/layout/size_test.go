package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want Size
	}{
		{"", Auto()},
		{"auto", Auto()},
		{" AUTO ", Auto()},
		{"12", Fixed(12)},
		{"12px", Fixed(12)},
		{"12.5pt", Fixed(12.5)},
		{"-4", Fixed(-4)},
		{"50%", Percent(50)},
		{"0%", Percent(0)},
		{"100 %", Percent(100)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSizeInvalid(t *testing.T) {
	for _, in := range []string{"abc", "x%", "12em", "%", "NaN", "inf%"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseSize(in)
			var sizeErr *InvalidSizeError
			require.True(t, errors.As(err, &sizeErr), "got %v", err)
		})
	}
}

func TestSizeStringRoundTrip(t *testing.T) {
	for _, s := range []Size{Auto(), Fixed(3.25), Percent(40)} {
		got, err := ParseSize(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestResolveSize(t *testing.T) {
	tests := []struct {
		name   string
		parent float64
		size   Size
		want   float64
	}{
		{"fixed ignores parent", 300, Fixed(42), 42},
		{"auto is zero", 300, Auto(), 0},
		{"percent", 300, Percent(25), 75},
		{"percent of nan parent", math.NaN(), Percent(50), 0},
		{"percent over hundred", 100, Percent(150), 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSize(tt.parent, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSizeOr(t *testing.T) {
	got, err := ResolveSizeOr(100, Auto(), func() float64 { return 17 })
	require.NoError(t, err)
	assert.Equal(t, 17.0, got)

	got, err = ResolveSizeOr(100, Fixed(3), func() float64 { return 17 })
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)
}

func TestResolveSizeInvalid(t *testing.T) {
	for _, s := range []Size{{Amount: 1, Unit: 9}, Fixed(math.NaN()), Percent(math.Inf(1))} {
		_, err := ResolveSize(100, s)
		var sizeErr *InvalidSizeError
		assert.True(t, errors.As(err, &sizeErr), "size %v: got %v", s, err)
	}
}

func TestResolvePercentExact(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := rapid.Float64Range(0, 1e9).Draw(t, "parent")
		p := rapid.SampledFrom([]float64{0, 50, 100}).Draw(t, "percent")

		got, err := ResolveSize(d, Percent(p))
		require.NoError(t, err)
		if got != d*p/100 {
			t.Fatalf("ResolveSize(%v, %v%%) = %v, want %v", d, p, got, d*p/100)
		}
	})
}

func TestResolveFixedIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := rapid.Float64Range(-1e6, 1e6).Draw(t, "parent")
		v := rapid.Float64Range(0, 1e6).Draw(t, "fixed")

		first, err := ResolveSize(d, Fixed(v))
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			again, err := ResolveSize(d, Fixed(v))
			require.NoError(t, err)
			if again != first {
				t.Fatalf("resolve #%d = %v, first = %v", i+2, again, first)
			}
		}
	})
}
