package walk_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/cdpwalk/walk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidate_Errors checks every sentinel and the documented priority.
func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name string
		p    walk.Params
		want error
	}{
		{"equal barriers", walk.Params{Start: 1, Lower: 1, Upper: 1, Right: 0.5}, walk.ErrBarrierOrder},
		{"inverted barriers", walk.Params{Start: 1, Lower: 5, Upper: 1, Right: 0.5}, walk.ErrBarrierOrder},
		{"start below", walk.Params{Start: 0, Lower: 1, Upper: 5, Right: 0.5}, walk.ErrStartOutside},
		{"start above", walk.Params{Start: 6, Lower: 1, Upper: 5, Right: 0.5}, walk.ErrStartOutside},
		{"negative r", walk.Params{Start: 2, Lower: 1, Upper: 5, Right: -0.1}, walk.ErrProbability},
		{"r above one", walk.Params{Start: 2, Lower: 1, Upper: 5, Right: 1.1}, walk.ErrProbability},
		{"NaN r", walk.Params{Start: 2, Lower: 1, Upper: 5, Right: math.NaN()}, walk.ErrProbability},
		{"barrier beats start", walk.Params{Start: 9, Lower: 5, Upper: 1, Right: 2}, walk.ErrBarrierOrder},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, walk.Validate(tc.p), tc.want)
		})
	}

	assert.NoError(t, walk.Validate(walk.Params{Start: 1, Lower: 1, Upper: 2, Right: 0}))
	assert.NoError(t, walk.Validate(walk.Params{Start: 2, Lower: 1, Upper: 2, Right: 1}))
}

// TestAbsorb_StartOnBarrier verifies that no steps are taken from a barrier.
func TestAbsorb_StartOnBarrier(t *testing.T) {
	out, err := walk.Absorb(walk.Params{Start: -3, Lower: -3, Upper: 4, Right: 0.5}, nil, walk.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, -3, out.Site)
	assert.Equal(t, 0, out.Steps)
	assert.True(t, out.AtLower())

	out, err = walk.Absorb(walk.Params{Start: 4, Lower: -3, Upper: 4, Right: 0.5}, nil, walk.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 4, out.Site)
	assert.True(t, out.AtUpper())
}

// TestAbsorb_DeterministicDrift checks the degenerate probabilities r=0 and r=1.
func TestAbsorb_DeterministicDrift(t *testing.T) {
	out, err := walk.Absorb(walk.Params{Start: 3, Lower: 1, Upper: 10, Right: 1}, walk.NewRNG(5), walk.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 10, out.Site, "r=1 must drift to the upper barrier")
	assert.Equal(t, 7, out.Steps)

	out, err = walk.Absorb(walk.Params{Start: 3, Lower: 1, Upper: 10, Right: 0}, walk.NewRNG(5), walk.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Site, "r=0 must drift to the lower barrier")
	assert.Equal(t, 2, out.Steps)
}

// TestAbsorb_SeedDeterminism runs the same seed twice and expects identical outcomes.
func TestAbsorb_SeedDeterminism(t *testing.T) {
	p := walk.Params{Start: 15, Lower: 0, Upper: 30, Right: 0.5}
	for seed := int64(0); seed < 20; seed++ {
		a, err := walk.Absorb(p, walk.NewRNG(seed), walk.DefaultOptions())
		require.NoError(t, err)
		b, err := walk.Absorb(p, walk.NewRNG(seed), walk.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, a, b, "seed %d", seed)
		assert.Contains(t, []int{0, 30}, a.Site)
	}
}

// TestAbsorb_StepLimit forces the cap on a wide lattice.
func TestAbsorb_StepLimit(t *testing.T) {
	p := walk.Params{Start: 500, Lower: 0, Upper: 1000, Right: 0.5}
	out, err := walk.Absorb(p, walk.NewRNG(1), walk.Options{MaxSteps: 10})
	assert.ErrorIs(t, err, walk.ErrStepLimit)
	assert.Equal(t, 10, out.Steps)
	assert.Greater(t, out.Site, 0)
	assert.Less(t, out.Site, 1000)
}

// TestTrajectory_MatchesAbsorb checks that the path agrees with Absorb for the same seed
// and that consecutive sites differ by exactly one.
func TestTrajectory_MatchesAbsorb(t *testing.T) {
	p := walk.Params{Start: 4, Lower: 0, Upper: 9, Right: 0.45}
	path, err := walk.Trajectory(p, walk.NewRNG(99), walk.DefaultOptions())
	require.NoError(t, err)
	out, err := walk.Absorb(p, walk.NewRNG(99), walk.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, path, out.Steps+1)
	assert.Equal(t, p.Start, path[0])
	assert.Equal(t, out.Site, path[len(path)-1])
	for i := 1; i < len(path); i++ {
		d := path[i] - path[i-1]
		assert.True(t, d == 1 || d == -1, "step %d has size %d", i, d)
	}
	for _, s := range path[:len(path)-1] {
		assert.Greater(t, s, p.Lower)
		assert.Less(t, s, p.Upper)
	}
}

// TestTrajectory_StepLimit returns the partial path with the error.
func TestTrajectory_StepLimit(t *testing.T) {
	p := walk.Params{Start: 50, Lower: 0, Upper: 100, Right: 0.5}
	path, err := walk.Trajectory(p, walk.NewRNG(3), walk.Options{MaxSteps: 5})
	assert.ErrorIs(t, err, walk.ErrStepLimit)
	assert.Len(t, path, 6)
}

// TestWalk_Wrapper mirrors Absorb through the seeded convenience entry point.
func TestWalk_Wrapper(t *testing.T) {
	site, err := walk.Walk(5, 1, 10, 0.3, 11)
	require.NoError(t, err)
	out, err := walk.Absorb(walk.Params{Start: 5, Lower: 1, Upper: 10, Right: 0.3}, walk.NewRNG(11), walk.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, out.Site, site)

	_, err = walk.Walk(0, 1, 10, 0.3, 11)
	assert.ErrorIs(t, err, walk.ErrStartOutside)
}

// TestDeriveSeed_Streams checks that derived seeds are stable and distinct.
func TestDeriveSeed_Streams(t *testing.T) {
	seen := make(map[int64]struct{})
	for i := uint64(0); i < 1000; i++ {
		s := walk.DeriveSeed(42, i)
		assert.Equal(t, s, walk.DeriveSeed(42, i))
		_, dup := seen[s]
		assert.False(t, dup, "stream %d collided", i)
		seen[s] = struct{}{}
	}
	assert.NotEqual(t, walk.DeriveSeed(1, 0), walk.DeriveSeed(2, 0))
}

// TestNewRNG_ZeroSeedPolicy checks that seed 0 maps to DefaultSeed.
func TestNewRNG_ZeroSeedPolicy(t *testing.T) {
	assert.Equal(t, walk.NewRNG(walk.DefaultSeed).Int63(), walk.NewRNG(0).Int63())
}
