package musictime

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMusicTime_Property_NormalizedForm checks every small grid input against
// a hand-computed reduction under the default signature.
func TestMusicTime_Property_NormalizedForm(t *testing.T) {
	for bars := 0; bars < 6; bars++ {
		for beats := 0; beats < 10; beats++ {
			for subs := 0; subs < 21; subs++ {
				total := bars*16 + beats*4 + subs
				expected := fmt.Sprintf("%d.%d.%d", total/16, (total%16)/4, total%4)

				mt := New(float64(bars), float64(beats), float64(subs))
				require.Equal(t, expected, mt.String(), "New(%d, %d, %d)", bars, beats, subs)
				require.Equal(t, total, mt.SubdivisionCount())
			}
		}
	}
}

// TestMusicTime_Property_FieldsInRange checks the field ranges for several
// signatures, including negative positions.
func TestMusicTime_Property_FieldsInRange(t *testing.T) {
	sigs := []TimeSignature{{4, 4}, {3, 4}, {7, 8}, {1, 1}, {5, 3}}
	for _, sig := range sigs {
		for subs := -50; subs <= 50; subs++ {
			mt := mustNew(t, sig, 0, 0, float64(subs))
			f := mt.Fields()
			assert.GreaterOrEqual(t, f.Beats, 0)
			assert.Less(t, f.Beats, sig.BeatsPerBar)
			assert.GreaterOrEqual(t, f.Subdivisions, 0)
			assert.Less(t, f.Subdivisions, sig.SubdivisionsPerBeat)
			assert.Zero(t, f.Remainder)

			rebuilt := f.Bars*sig.BeatsPerBar*sig.SubdivisionsPerBeat + f.Beats*sig.SubdivisionsPerBeat + f.Subdivisions
			assert.Equal(t, subs, rebuilt, "signature %v, subdivisions %d", sig, subs)
		}
	}
}

// TestMusicTime_Property_RoundTrip checks Parse(t.String()) == t for grid positions.
func TestMusicTime_Property_RoundTrip(t *testing.T) {
	for subs := 0; subs < 200; subs++ {
		mt := New(0, 0, float64(subs))
		parsed, err := Parse(mt.String())
		require.NoError(t, err)
		assert.True(t, mt.Equal(parsed), "%s", mt)
		assert.Equal(t, mt.String(), parsed.String())
	}
}

// TestMusicTime_Property_AddSubtractInverse checks (a + b) - b == a.
func TestMusicTime_Property_AddSubtractInverse(t *testing.T) {
	for a := 0; a < 40; a += 3 {
		for b := 0; b < 40; b += 7 {
			left := New(0, 0, float64(a))
			right := New(0, 0, float64(b))

			sum, err := left.Add(right)
			require.NoError(t, err)
			back, err := sum.Subtract(right)
			require.NoError(t, err)
			assert.True(t, left.Equal(back))
			assert.Equal(t, a+b, sum.SubdivisionCount())
		}
	}
}

// TestMusicTime_Property_SecondsRoundTrip checks that converting a grid
// position to seconds and back lands on the same position.
func TestMusicTime_Property_SecondsRoundTrip(t *testing.T) {
	ClearCache()
	defer ClearCache()

	for _, tempo := range []float64{60, 90, 97, 120, 133.3, 174} {
		for subs := 0; subs < 64; subs++ {
			mt := New(0, 0, float64(subs))
			back, err := FromElapsedTime(mt.ElapsedSeconds(tempo), tempo)
			require.NoError(t, err)
			assert.Equal(t, mt.String(), back.String(), "tempo %v", tempo)
		}
	}
}
