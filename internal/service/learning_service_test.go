package service

import (
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEnroll(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)

	enrollment, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, enrollment.StudentID)
	assert.Equal(t, course.ID, enrollment.CourseID)

	_, err = env.learning.Enroll(student.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
}

func TestEnrollUnpublishedCourseNotFound(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	draft := env.createCourse(t, instructor.ID, false)

	_, err := env.learning.Enroll(student.ID, draft.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestViewLectureRequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	first := env.addReading(t, course.ID, 1)

	_, err := env.learning.ViewLecture(student.ID, first.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestViewLectureGatingFullPrefix(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	first := env.addReading(t, course.ID, 1)
	second := env.addReading(t, course.ID, 2)
	third := env.addReading(t, course.ID, 3)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	// Nothing beyond the first lecture is reachable yet.
	_, err = env.learning.ViewLecture(student.ID, second.ID)
	assert.ErrorIs(t, err, util.ErrLectureLocked)
	_, err = env.learning.ViewLecture(student.ID, third.ID)
	assert.ErrorIs(t, err, util.ErrLectureLocked)

	view, err := env.learning.ViewLecture(student.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, view.Completed)
	require.NotNil(t, view.Reading)

	// The prefix rule needs every earlier lecture done, not just the
	// immediate predecessor, so lecture 3 stays locked until 2 is viewed.
	_, err = env.learning.ViewLecture(student.ID, third.ID)
	assert.ErrorIs(t, err, util.ErrLectureLocked)

	_, err = env.learning.ViewLecture(student.ID, second.ID)
	require.NoError(t, err)

	view, err = env.learning.ViewLecture(student.ID, third.ID)
	require.NoError(t, err)
	assert.True(t, view.Completed)
}

func TestViewLectureAutoCompleteIdempotent(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	first := env.addReading(t, course.ID, 1)
	second := env.addReading(t, course.ID, 2)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = env.learning.ViewLecture(student.ID, first.ID)
		require.NoError(t, err)
	}
	_, err = env.learning.ViewLecture(student.ID, second.ID)
	require.NoError(t, err)

	progress, err := env.learning.GetProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{first.ID, second.ID}, []uint(progress.CompletedLectureIDs))
	require.NotNil(t, progress.LastSeenLectureID)
	assert.Equal(t, second.ID, *progress.LastSeenLectureID)
}

func TestViewQuizDoesNotComplete(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 2)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	view, err := env.learning.ViewLecture(student.ID, quiz.ID)
	require.NoError(t, err)
	assert.False(t, view.Completed)
	require.NotNil(t, view.Quiz)
	require.Len(t, view.Questions, 2)
	assert.Len(t, view.Questions[0].Options, 3)
}

func TestSubmitQuizGrading(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 4)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	questions := env.quizQuestions(t, quiz.ID)
	require.Len(t, questions, 4)

	// 3 of 4 correct: 75%, above the 70% mark.
	answers := map[uint]int{
		questions[0].ID: 0,
		questions[1].ID: 0,
		questions[2].ID: 0,
		questions[3].ID: 1,
	}
	result, err := env.learning.SubmitQuiz(student.ID, quiz.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 75.0, result.Percentage)
	assert.True(t, result.Passed)

	progress, err := env.learning.GetProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, progress.HasCompleted(quiz.ID))
	score, ok := progress.ScoreFor(quiz.ID)
	require.True(t, ok)
	assert.Equal(t, 75.0, score)
}

func TestSubmitQuizResubmitLowersScoreKeepsCompletion(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 2)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	questions := env.quizQuestions(t, quiz.ID)
	allRight := map[uint]int{questions[0].ID: 0, questions[1].ID: 0}
	allWrong := map[uint]int{questions[0].ID: 2, questions[1].ID: 2}

	result, err := env.learning.SubmitQuiz(student.ID, quiz.ID, allRight)
	require.NoError(t, err)
	assert.True(t, result.Passed)

	// The score is always the latest attempt, but completion is sticky.
	result, err = env.learning.SubmitQuiz(student.ID, quiz.ID, allWrong)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Percentage)
	assert.False(t, result.Passed)

	progress, err := env.learning.GetProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, progress.HasCompleted(quiz.ID))
	score, _ := progress.ScoreFor(quiz.ID)
	assert.Equal(t, 0.0, score)
}

func TestSubmitQuizPassBoundary(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 10)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	questions := env.quizQuestions(t, quiz.ID)

	// Exactly 7 of 10 correct lands on the inclusive threshold.
	answers := map[uint]int{}
	for i, q := range questions {
		if i < 7 {
			answers[q.ID] = 0
		} else {
			answers[q.ID] = 1
		}
	}
	result, err := env.learning.SubmitQuiz(student.ID, quiz.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 70.0, result.Percentage)
	assert.True(t, result.Passed)

	// One fewer correct falls short.
	answers[questions[6].ID] = 1
	result, err = env.learning.SubmitQuiz(student.ID, quiz.ID, answers)
	require.NoError(t, err)
	assert.Equal(t, 60.0, result.Percentage)
	assert.False(t, result.Passed)
}

func TestSubmitQuizNoQuestions(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 0)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	result, err := env.learning.SubmitQuiz(student.ID, quiz.ID, map[uint]int{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Percentage)
	assert.False(t, result.Passed)

	progress, err := env.learning.GetProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, progress.HasCompleted(quiz.ID))
}

func TestSubmitQuizUnknownAnswersIgnoredByGrader(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 2)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	questions := env.quizQuestions(t, quiz.ID)

	// Unanswered questions count as wrong.
	result, err := env.learning.SubmitQuiz(student.ID, quiz.ID, map[uint]int{questions[0].ID: 0})
	require.NoError(t, err)
	assert.Equal(t, 50.0, result.Percentage)
	assert.False(t, result.Passed)
}

func TestSubmitQuizWindowClosed(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 2)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&model.QuizLecture{}).
		Where("lecture_id = ?", quiz.ID).
		Updates(map[string]interface{}{
			"start_date": time.Now().Add(-2 * time.Hour),
			"end_date":   time.Now().Add(-time.Hour),
		}).Error)

	questions := env.quizQuestions(t, quiz.ID)
	_, err = env.learning.SubmitQuiz(student.ID, quiz.ID, map[uint]int{questions[0].ID: 0})
	assert.ErrorIs(t, err, util.ErrQuizWindowClosed)
}

func TestSubmitQuizLockedByGating(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	env.addReading(t, course.ID, 1)
	quiz := env.addQuiz(t, course.ID, 2, 2)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	questions := env.quizQuestions(t, quiz.ID)
	_, err = env.learning.SubmitQuiz(student.ID, quiz.ID, map[uint]int{questions[0].ID: 0})
	assert.ErrorIs(t, err, util.ErrLectureLocked)
}

func TestSubmitQuizOnReadingRejected(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	reading := env.addReading(t, course.ID, 1)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = env.learning.SubmitQuiz(student.ID, reading.ID, map[uint]int{})
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestCreateSubmissionArchivesAnswers(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 2)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	questions := env.quizQuestions(t, quiz.ID)
	submission, err := env.learning.CreateSubmission(student.ID, quiz.ID, map[uint]int{
		questions[0].ID: 0,
		questions[1].ID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, student.ID, submission.StudentID)
	assert.Len(t, submission.Answers, 2)

	// Raw archiving never touches progress.
	progress, err := env.learning.GetProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, progress.HasCompleted(quiz.ID))
	_, ok := progress.ScoreFor(quiz.ID)
	assert.False(t, ok)
}

func TestCreateSubmissionValidatesAnswers(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 2)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	questions := env.quizQuestions(t, quiz.ID)

	_, err = env.learning.CreateSubmission(student.ID, quiz.ID, map[uint]int{questions[0].ID: 9})
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = env.learning.CreateSubmission(student.ID, quiz.ID, map[uint]int{questions[0].ID + 999: 0})
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestGetProgressLazyCreate(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)

	_, err := env.learning.GetProgress(student.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	_, err = env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	progress, err := env.learning.GetProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Empty(t, progress.CompletedLectureIDs)
	assert.Nil(t, progress.LastSeenLectureID)

	// A second read returns the same row.
	again, err := env.learning.GetProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, progress.ID, again.ID)
}

func TestGradeAnswersPure(t *testing.T) {
	questions := []model.Question{
		{BaseModel: model.BaseModel{ID: 1}, CorrectIndex: 0},
		{BaseModel: model.BaseModel{ID: 2}, CorrectIndex: 1},
		{BaseModel: model.BaseModel{ID: 3}, CorrectIndex: 2},
	}

	result := gradeAnswers(questions, map[uint]int{1: 0, 2: 1, 3: 2})
	assert.Equal(t, 100.0, result.Percentage)
	assert.True(t, result.Passed)

	result = gradeAnswers(questions, map[uint]int{1: 0, 2: 0, 3: 0})
	assert.InDelta(t, 33.33, result.Percentage, 0.01)
	assert.False(t, result.Passed)

	result = gradeAnswers(nil, map[uint]int{})
	assert.Equal(t, 0.0, result.Percentage)
	assert.False(t, result.Passed)
}
