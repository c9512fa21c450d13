package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkCompleteIdempotent(t *testing.T) {
	p := &Progress{}

	assert.True(t, p.MarkComplete(3))
	assert.False(t, p.MarkComplete(3))
	assert.True(t, p.MarkComplete(7))

	assert.Equal(t, []uint{3, 7}, []uint(p.CompletedLectureIDs))
	assert.True(t, p.HasCompleted(3))
	assert.True(t, p.HasCompleted(7))
	assert.False(t, p.HasCompleted(5))
}

func TestSetScoreOverwrites(t *testing.T) {
	p := &Progress{}

	_, ok := p.ScoreFor(1)
	assert.False(t, ok)

	p.SetScore(1, 75)
	score, ok := p.ScoreFor(1)
	assert.True(t, ok)
	assert.Equal(t, 75.0, score)

	p.SetScore(1, 25)
	score, _ = p.ScoreFor(1)
	assert.Equal(t, 25.0, score)
}

func TestLectureTypeIsContent(t *testing.T) {
	assert.True(t, LectureReading.IsContent())
	assert.True(t, LectureVideo.IsContent())
	assert.True(t, LecturePDF.IsContent())
	assert.False(t, LectureQuiz.IsContent())

	assert.True(t, ValidLectureType(LectureQuiz))
	assert.False(t, ValidLectureType(LectureType("ESSAY")))
}
