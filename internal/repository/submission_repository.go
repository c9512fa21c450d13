package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// CreateWithAnswers persists the raw submission and its answer rows in one
// transaction. The record is immutable after this point.
func (r *SubmissionRepository) CreateWithAnswers(submission *model.QuizSubmission, answers []model.Answer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(submission).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].SubmissionID = submission.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SubmissionRepository) FindByID(id uint) (*model.QuizSubmission, error) {
	var s model.QuizSubmission
	err := r.DB.Preload("Answers").Preload("Student").First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) ListByQuizLecture(quizLectureID uint) ([]model.QuizSubmission, error) {
	var subs []model.QuizSubmission
	err := r.DB.Preload("Student").
		Where("quiz_lecture_id = ?", quizLectureID).
		Order("submitted_at desc").
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) ListByStudent(studentID uint) ([]model.QuizSubmission, error) {
	var subs []model.QuizSubmission
	err := r.DB.Where("student_id = ?", studentID).Order("submitted_at desc").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) FindGradeBySubmission(submissionID uint) (*model.Grade, error) {
	var g model.Grade
	err := r.DB.Where("submission_id = ?", submissionID).First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// SaveGrade creates or updates the single grade overlay of a submission.
func (r *SubmissionRepository) SaveGrade(grade *model.Grade) error {
	return r.DB.Save(grade).Error
}

func (r *SubmissionRepository) ListGradesByStudent(studentID uint) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.DB.
		Joins("JOIN quiz_submissions s ON s.id = grades.submission_id").
		Where("s.student_id = ?", studentID).
		Find(&grades).Error
	return grades, err
}
