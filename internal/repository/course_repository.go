package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Instructor").First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// Delete removes the course and everything hanging off it: lectures with
// their extension rows and questions, enrollments with their progress.
func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var lectureIDs []uint
		if err := tx.Model(&model.Lecture{}).Where("course_id = ?", id).Pluck("id", &lectureIDs).Error; err != nil {
			return err
		}
		if len(lectureIDs) > 0 {
			if err := tx.Where("lecture_id IN ?", lectureIDs).Delete(&model.ReadingLecture{}).Error; err != nil {
				return err
			}
			var quizIDs []uint
			if err := tx.Model(&model.QuizLecture{}).Where("lecture_id IN ?", lectureIDs).Pluck("id", &quizIDs).Error; err != nil {
				return err
			}
			if len(quizIDs) > 0 {
				if err := tx.Where("quiz_lecture_id IN ?", quizIDs).Delete(&model.Question{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("lecture_id IN ?", lectureIDs).Delete(&model.QuizLecture{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", id).Delete(&model.Lecture{}).Error; err != nil {
				return err
			}
		}

		var enrollmentIDs []uint
		if err := tx.Model(&model.Enrollment{}).Where("course_id = ?", id).Pluck("id", &enrollmentIDs).Error; err != nil {
			return err
		}
		if len(enrollmentIDs) > 0 {
			if err := tx.Where("enrollment_id IN ?", enrollmentIDs).Delete(&model.Progress{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", id).Delete(&model.Enrollment{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&model.Course{}, id).Error
	})
}

func (r *CourseRepository) ListPublished(search string) ([]model.Course, error) {
	var courses []model.Course
	query := r.DB.Preload("Instructor").Where("is_published = ?", true)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	err := query.Order("created_at desc").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", instructorID).Order("created_at desc").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) CountLectures(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lecture{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
