package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/construction-sim/internal/domain/shared"
)

func TestSeededRandom_SameSeedSameSequence(t *testing.T) {
	a := shared.NewSeededRandom(42)
	b := shared.NewSeededRandom(42)

	for i := 0; i < 20; i++ {
		va, vb := a.Float64(), b.Float64()
		assert.Equal(t, va, vb)
		assert.GreaterOrEqual(t, va, 0.0)
		assert.Less(t, va, 1.0)
	}
}

func TestSequenceRandom_ReplaysThenFallsBack(t *testing.T) {
	r := shared.NewSequenceRandom(0.1, 0.5)

	assert.Equal(t, 0.1, r.Float64())
	assert.Equal(t, 0.5, r.Float64())
	assert.Equal(t, 0.999999, r.Float64())
	assert.Equal(t, 2, r.Consumed())

	r.Push(0.2)
	assert.Equal(t, 0.2, r.Float64())
}

func TestConstantRandom(t *testing.T) {
	r := shared.ConstantRandom(0.25)
	assert.Equal(t, 0.25, r.Float64())
	assert.Equal(t, 0.25, r.Float64())
}

func TestReplaySeeded_ResumesStream(t *testing.T) {
	original := shared.NewCountingRandom(shared.NewSeededRandom(99))
	for i := 0; i < 5; i++ {
		original.Float64()
	}
	assert.Equal(t, int64(5), original.Draws())

	replayed := shared.ReplaySeeded(99, original.Draws())
	assert.Equal(t, original.Draws(), replayed.Draws())
	for i := 0; i < 5; i++ {
		assert.Equal(t, original.Float64(), replayed.Float64())
	}
}
