package service

import (
	"errors"
	"fmt"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// GradeService handles the manual grading overlay on raw submissions. Manual
// grades never feed back into progress; they live beside the automatic score.
type GradeService struct {
	CourseRepo     *repository.CourseRepository
	LectureRepo    *repository.LectureRepository
	SubmissionRepo *repository.SubmissionRepository
}

func NewGradeService(
	courseRepo *repository.CourseRepository,
	lectureRepo *repository.LectureRepository,
	submissionRepo *repository.SubmissionRepository,
) *GradeService {
	return &GradeService{
		CourseRepo:     courseRepo,
		LectureRepo:    lectureRepo,
		SubmissionRepo: submissionRepo,
	}
}

// AssignGrade records or replaces the manual grade for a submission. Only the
// instructor who owns the course may grade it.
func (s *GradeService) AssignGrade(teacherID, submissionID uint, score float64) (*model.Grade, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("%w: score must be between 0 and 100", util.ErrInvalidInput)
	}

	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(teacherID, submission.QuizLectureID); err != nil {
		return nil, err
	}

	grade, err := s.SubmissionRepo.FindGradeBySubmission(submissionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		grade = &model.Grade{SubmissionID: submissionID}
	}

	grade.TeacherID = teacherID
	grade.Score = score
	grade.GradedAt = time.Now()
	if err := s.SubmissionRepo.SaveGrade(grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// ListSubmissions returns all raw submissions for a quiz lecture, owner only.
func (s *GradeService) ListSubmissions(teacherID, lectureID uint) ([]model.QuizSubmission, error) {
	lecture, err := s.LectureRepo.FindByID(lectureID)
	if err != nil {
		return nil, err
	}
	if lecture.Type != model.LectureQuiz {
		return nil, fmt.Errorf("%w: lecture is not a quiz", util.ErrInvalidInput)
	}
	if _, err := s.ownedCourse(teacherID, lecture.CourseID); err != nil {
		return nil, err
	}

	quiz, err := s.LectureRepo.FindQuiz(lecture.ID)
	if err != nil {
		return nil, err
	}
	return s.SubmissionRepo.ListByQuizLecture(quiz.ID)
}

// SubmissionDetail bundles a submission with its manual grade, when one
// exists.
type SubmissionDetail struct {
	Submission model.QuizSubmission `json:"submission"`
	Grade      *model.Grade         `json:"grade,omitempty"`
}

// GetSubmission returns one submission with answers and any manual grade.
// Accessible to the owning instructor and to the student who submitted it.
func (s *GradeService) GetSubmission(actor *util.Claims, submissionID uint) (*SubmissionDetail, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		return nil, err
	}

	if actor.Role == model.Instructor {
		if err := s.checkOwnership(actor.UserID, submission.QuizLectureID); err != nil {
			return nil, err
		}
	} else if submission.StudentID != actor.UserID {
		return nil, fmt.Errorf("%w: submission belongs to another student", util.ErrPermissionDenied)
	}

	detail := &SubmissionDetail{Submission: *submission}
	grade, err := s.SubmissionRepo.FindGradeBySubmission(submissionID)
	if err == nil {
		detail.Grade = grade
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return detail, nil
}

func (s *GradeService) ListStudentSubmissions(studentID uint) ([]model.QuizSubmission, error) {
	return s.SubmissionRepo.ListByStudent(studentID)
}

func (s *GradeService) ListStudentGrades(studentID uint) ([]model.Grade, error) {
	return s.SubmissionRepo.ListGradesByStudent(studentID)
}

func (s *GradeService) checkOwnership(teacherID, quizLectureID uint) error {
	quiz, err := s.LectureRepo.FindQuizByID(quizLectureID)
	if err != nil {
		return err
	}
	lecture, err := s.LectureRepo.FindByID(quiz.LectureID)
	if err != nil {
		return err
	}
	_, err = s.ownedCourse(teacherID, lecture.CourseID)
	return err
}

func (s *GradeService) ownedCourse(actorID, courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsOwnedBy(actorID) {
		return nil, fmt.Errorf("%w: course belongs to another instructor", util.ErrPermissionDenied)
	}
	return course, nil
}
