package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_ShowActivatesExactlyOne(t *testing.T) {
	r := NewRouter(testDoc(t))

	for step := StepLogin; step <= StepFinal; step++ {
		require.NoError(t, r.Show(step))
		assert.Equal(t, []int{step}, activeSteps(r), "step %d", step)
		assert.Equal(t, step, r.Current())
	}
}

func TestRouter_UnknownStepChangesNothing(t *testing.T) {
	r := NewRouter(testDoc(t))
	require.NoError(t, r.Show(StepTimeline))

	for _, step := range []int{0, 8, -1} {
		err := r.Show(step)
		assert.ErrorIs(t, err, ErrUnknownStep)
		assert.Equal(t, StepTimeline, r.Current())
		assert.Equal(t, []int{StepTimeline}, activeSteps(r))
	}
}

func TestRouter_NextAndPrev(t *testing.T) {
	r := NewRouter(testDoc(t))
	require.NoError(t, r.Show(StepLogin))

	require.NoError(t, r.Prev())
	assert.Equal(t, StepLogin, r.Current())

	require.NoError(t, r.Next())
	require.NoError(t, r.Next())
	assert.Equal(t, StepTimeline, r.Current())

	require.NoError(t, r.Prev())
	assert.Equal(t, []int{StepIntro}, activeSteps(r))

	require.NoError(t, r.Show(StepFinal))
	assert.ErrorIs(t, r.Next(), ErrUnknownStep)
	assert.Equal(t, StepFinal, r.Current())
}

func TestRouter_IgnoresScreensWithoutStep(t *testing.T) {
	doc := parseDoc(t, `<div class="screen active">stray</div><div class="screen" data-step="1"></div><div class="screen" data-step="2"></div>`)
	r := NewRouter(doc)

	require.NoError(t, r.Show(2))
	assert.Equal(t, []Screen{{Step: 1}, {Step: 2, Active: true}}, r.Screens())
}
