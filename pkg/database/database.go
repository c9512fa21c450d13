package database

import (
	"fmt"
	"log"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedDemoData(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the schema for the full model set. Shared with the test
// helpers, which run it against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Lecture{},
		&model.ReadingLecture{},
		&model.QuizLecture{},
		&model.Question{},
		&model.Enrollment{},
		&model.Progress{},
		&model.QuizSubmission{},
		&model.Answer{},
		&model.Grade{},
	)
}

// seedDemoData inserts a demo instructor, two students and one published
// course (two readings and a quiz) when the database is empty.
func seedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("testpassword"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	instructor := &model.User{
		Name:     "instructor1",
		Email:    "instructor@example.com",
		Password: string(hashed),
		Role:     model.Instructor,
	}
	students := []*model.User{
		{Name: "student1", Email: "student1@example.com", Password: string(hashed), Role: model.Student},
		{Name: "student2", Email: "student2@example.com", Password: string(hashed), Role: model.Student},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(instructor).Error; err != nil {
			return err
		}
		for _, s := range students {
			if err := tx.Create(s).Error; err != nil {
				return err
			}
		}

		course := &model.Course{
			Title:        "Introduction to Go",
			Description:  "A gated course with readings and a final quiz.",
			InstructorID: instructor.ID,
			IsPublished:  true,
		}
		if err := tx.Create(course).Error; err != nil {
			return err
		}

		lectures := []struct {
			title string
			typ   model.LectureType
		}{
			{"Getting Started", model.LectureReading},
			{"Language Basics", model.LectureReading},
			{"Checkpoint Quiz", model.LectureQuiz},
		}
		for i, l := range lectures {
			lecture := &model.Lecture{
				CourseID:   course.ID,
				Title:      l.title,
				Type:       l.typ,
				OrderIndex: uint(i + 1),
			}
			if err := tx.Create(lecture).Error; err != nil {
				return err
			}
			if l.typ.IsContent() {
				reading := &model.ReadingLecture{
					LectureID: lecture.ID,
					Content:   "Sample reading content for " + l.title,
				}
				if err := tx.Create(reading).Error; err != nil {
					return err
				}
			} else {
				quiz := &model.QuizLecture{
					LectureID:       lecture.ID,
					StartDate:       time.Now(),
					EndDate:         time.Now().AddDate(0, 1, 0),
					DurationMinutes: 30,
				}
				if err := tx.Create(quiz).Error; err != nil {
					return err
				}
				questions := []model.Question{
					{QuizLectureID: quiz.ID, Text: "Which keyword declares a variable?", Options: []string{"let", "var", "def", "dim"}, CorrectIndex: 1},
					{QuizLectureID: quiz.ID, Text: "Which type holds text?", Options: []string{"string", "rune", "byte", "int"}, CorrectIndex: 0},
				}
				for i := range questions {
					if err := tx.Create(&questions[i]).Error; err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}
