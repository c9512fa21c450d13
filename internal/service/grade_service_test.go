package service

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) submitOnce(t *testing.T, studentID, lectureID uint) *model.QuizSubmission {
	t.Helper()

	questions := e.quizQuestions(t, lectureID)
	answers := map[uint]int{}
	for _, q := range questions {
		answers[q.ID] = 0
	}
	submission, err := e.learning.CreateSubmission(studentID, lectureID, answers)
	require.NoError(t, err)
	return submission
}

func TestAssignGradeUpsert(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 2)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	submission := env.submitOnce(t, student.ID, quiz.ID)

	grade, err := env.grade.AssignGrade(instructor.ID, submission.ID, 88)
	require.NoError(t, err)
	assert.Equal(t, 88.0, grade.Score)
	assert.Equal(t, instructor.ID, grade.TeacherID)

	// A second grade replaces the first rather than adding a row.
	regrade, err := env.grade.AssignGrade(instructor.ID, submission.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, grade.ID, regrade.ID)
	assert.Equal(t, 42.0, regrade.Score)

	var count int64
	require.NoError(t, env.db.Model(&model.Grade{}).Where("submission_id = ?", submission.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAssignGradeValidatesScore(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 1)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	submission := env.submitOnce(t, student.ID, quiz.ID)

	_, err = env.grade.AssignGrade(instructor.ID, submission.ID, -1)
	assert.ErrorIs(t, err, util.ErrInvalidInput)
	_, err = env.grade.AssignGrade(instructor.ID, submission.ID, 101)
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestAssignGradeOwnershipEnforced(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", model.Instructor)
	other := env.createUser(t, "other", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, owner.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 1)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	submission := env.submitOnce(t, student.ID, quiz.ID)

	_, err = env.grade.AssignGrade(other.ID, submission.ID, 50)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestAssignGradeDoesNotTouchProgress(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 1)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	submission := env.submitOnce(t, student.ID, quiz.ID)

	_, err = env.grade.AssignGrade(instructor.ID, submission.ID, 100)
	require.NoError(t, err)

	progress, err := env.learning.GetProgress(student.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, progress.HasCompleted(quiz.ID))
	_, ok := progress.ScoreFor(quiz.ID)
	assert.False(t, ok)
}

func TestGetSubmissionVisibility(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", model.Instructor)
	other := env.createUser(t, "other", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	intruder := env.createUser(t, "intruder", model.Student)
	course := env.createCourse(t, owner.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 1)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	submission := env.submitOnce(t, student.ID, quiz.ID)

	ownerClaims := &util.Claims{UserID: owner.ID, Role: model.Instructor}
	detail, err := env.grade.GetSubmission(ownerClaims, submission.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Submission.Answers, 1)
	assert.Nil(t, detail.Grade)

	studentClaims := &util.Claims{UserID: student.ID, Role: model.Student}
	_, err = env.grade.GetSubmission(studentClaims, submission.ID)
	require.NoError(t, err)

	otherClaims := &util.Claims{UserID: other.ID, Role: model.Instructor}
	_, err = env.grade.GetSubmission(otherClaims, submission.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	intruderClaims := &util.Claims{UserID: intruder.ID, Role: model.Student}
	_, err = env.grade.GetSubmission(intruderClaims, submission.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestGetSubmissionIncludesGrade(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 1)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	submission := env.submitOnce(t, student.ID, quiz.ID)

	_, err = env.grade.AssignGrade(instructor.ID, submission.ID, 91)
	require.NoError(t, err)

	claims := &util.Claims{UserID: student.ID, Role: model.Student}
	detail, err := env.grade.GetSubmission(claims, submission.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Grade)
	assert.Equal(t, 91.0, detail.Grade.Score)
}

func TestListSubmissionsOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", model.Instructor)
	other := env.createUser(t, "other", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, owner.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 1)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	env.submitOnce(t, student.ID, quiz.ID)
	env.submitOnce(t, student.ID, quiz.ID)

	submissions, err := env.grade.ListSubmissions(owner.ID, quiz.ID)
	require.NoError(t, err)
	assert.Len(t, submissions, 2)

	_, err = env.grade.ListSubmissions(other.ID, quiz.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestListStudentGrades(t *testing.T) {
	env := newTestEnv(t)
	instructor := env.createUser(t, "teach", model.Instructor)
	student := env.createUser(t, "stud", model.Student)
	course := env.createCourse(t, instructor.ID, true)
	quiz := env.addQuiz(t, course.ID, 1, 1)

	_, err := env.learning.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	submission := env.submitOnce(t, student.ID, quiz.ID)

	_, err = env.grade.AssignGrade(instructor.ID, submission.ID, 77)
	require.NoError(t, err)

	grades, err := env.grade.ListStudentGrades(student.ID)
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, 77.0, grades[0].Score)
}
