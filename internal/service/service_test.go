package service

import (
	"fmt"
	"testing"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database and applies the full schema.
// The DSN is unique per call so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-value-for-unit-tests-only"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

type testEnv struct {
	db       *gorm.DB
	auth     *AuthService
	course   *CourseService
	lecture  *LectureService
	learning *LearningService
	grade    *GradeService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	lectureRepo := repository.NewLectureRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	return &testEnv{
		db:       db,
		auth:     NewAuthService(userRepo, testConfig()),
		course:   NewCourseService(courseRepo, lectureRepo, enrollmentRepo, progressRepo, nil),
		lecture:  NewLectureService(courseRepo, lectureRepo),
		learning: NewLearningService(courseRepo, lectureRepo, enrollmentRepo, progressRepo, submissionRepo, db),
		grade:    NewGradeService(courseRepo, lectureRepo, submissionRepo),
	}
}

func (e *testEnv) createUser(t *testing.T, name string, role model.UserRole) *model.User {
	t.Helper()

	user := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createCourse(t *testing.T, instructorID uint, published bool) *model.Course {
	t.Helper()

	course := &model.Course{
		Title:        "Test Course",
		InstructorID: instructorID,
		IsPublished:  published,
	}
	require.NoError(t, e.db.Create(course).Error)
	return course
}

func (e *testEnv) addReading(t *testing.T, courseID, order uint) *model.Lecture {
	t.Helper()

	lecture := &model.Lecture{
		CourseID:   courseID,
		Title:      fmt.Sprintf("Reading %d", order),
		Type:       model.LectureReading,
		OrderIndex: order,
	}
	require.NoError(t, e.db.Create(lecture).Error)
	require.NoError(t, e.db.Create(&model.ReadingLecture{
		LectureID: lecture.ID,
		Content:   "content",
	}).Error)
	return lecture
}

// addQuiz creates a quiz lecture with an open window and questions whose
// correct option is always index 0.
func (e *testEnv) addQuiz(t *testing.T, courseID, order uint, questionCount int) *model.Lecture {
	t.Helper()

	lecture := &model.Lecture{
		CourseID:   courseID,
		Title:      fmt.Sprintf("Quiz %d", order),
		Type:       model.LectureQuiz,
		OrderIndex: order,
	}
	require.NoError(t, e.db.Create(lecture).Error)

	quiz := &model.QuizLecture{
		LectureID:       lecture.ID,
		StartDate:       time.Now().Add(-time.Hour),
		EndDate:         time.Now().Add(time.Hour),
		DurationMinutes: 30,
	}
	require.NoError(t, e.db.Create(quiz).Error)

	for i := 0; i < questionCount; i++ {
		require.NoError(t, e.db.Create(&model.Question{
			QuizLectureID: quiz.ID,
			Text:          fmt.Sprintf("Question %d", i+1),
			Options:       []string{"right", "wrong", "also wrong"},
			CorrectIndex:  0,
		}).Error)
	}
	return lecture
}

func (e *testEnv) quizQuestions(t *testing.T, lectureID uint) []model.Question {
	t.Helper()

	var quiz model.QuizLecture
	require.NoError(t, e.db.Where("lecture_id = ?", lectureID).First(&quiz).Error)

	var questions []model.Question
	require.NoError(t, e.db.Where("quiz_lecture_id = ?", quiz.ID).Order("id asc").Find(&questions).Error)
	return questions
}
