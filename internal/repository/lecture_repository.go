package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type LectureRepository struct {
	DB *gorm.DB
}

func NewLectureRepository(db *gorm.DB) *LectureRepository {
	return &LectureRepository{DB: db}
}

// CreateWithExtension inserts the lecture together with its one-to-one
// extension row (reading or quiz) in a single transaction.
func (r *LectureRepository) CreateWithExtension(lecture *model.Lecture, reading *model.ReadingLecture, quiz *model.QuizLecture) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lecture).Error; err != nil {
			return err
		}
		if reading != nil {
			reading.LectureID = lecture.ID
			if err := tx.Create(reading).Error; err != nil {
				return err
			}
		}
		if quiz != nil {
			quiz.LectureID = lecture.ID
			if err := tx.Create(quiz).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *LectureRepository) FindByID(id uint) (*model.Lecture, error) {
	var lecture model.Lecture
	err := r.DB.First(&lecture, id).Error
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (r *LectureRepository) ListByCourse(courseID uint) ([]model.Lecture, error) {
	var lectures []model.Lecture
	err := r.DB.Where("course_id = ?", courseID).Order("order_index asc").Find(&lectures).Error
	return lectures, err
}

// NextOrderIndex returns the 1-based order index a new lecture of the course
// should receive.
func (r *LectureRepository) NextOrderIndex(courseID uint) (uint, error) {
	var count int64
	err := r.DB.Model(&model.Lecture{}).Where("course_id = ?", courseID).Count(&count).Error
	return uint(count) + 1, err
}

func (r *LectureRepository) Update(lecture *model.Lecture) error {
	return r.DB.Save(lecture).Error
}

// Delete removes the lecture and its extension row plus any quiz questions.
func (r *LectureRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var quiz model.QuizLecture
		if err := tx.Where("lecture_id = ?", id).First(&quiz).Error; err == nil {
			if err := tx.Where("quiz_lecture_id = ?", quiz.ID).Delete(&model.Question{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&quiz).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("lecture_id = ?", id).Delete(&model.ReadingLecture{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Lecture{}, id).Error
	})
}

func (r *LectureRepository) FindReading(lectureID uint) (*model.ReadingLecture, error) {
	var reading model.ReadingLecture
	err := r.DB.Where("lecture_id = ?", lectureID).First(&reading).Error
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

func (r *LectureRepository) UpdateReading(reading *model.ReadingLecture) error {
	return r.DB.Save(reading).Error
}

func (r *LectureRepository) FindQuiz(lectureID uint) (*model.QuizLecture, error) {
	var quiz model.QuizLecture
	err := r.DB.Where("lecture_id = ?", lectureID).First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *LectureRepository) FindQuizByID(id uint) (*model.QuizLecture, error) {
	var quiz model.QuizLecture
	err := r.DB.First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *LectureRepository) UpdateQuiz(quiz *model.QuizLecture) error {
	return r.DB.Save(quiz).Error
}

func (r *LectureRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *LectureRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *LectureRepository) ListQuestions(quizLectureID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("quiz_lecture_id = ?", quizLectureID).Order("id asc").Find(&qs).Error
	return qs, err
}

func (r *LectureRepository) UpdateQuestion(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *LectureRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}
