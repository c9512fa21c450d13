package service

import (
	"fmt"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

type LectureService struct {
	CourseRepo  *repository.CourseRepository
	LectureRepo *repository.LectureRepository
}

func NewLectureService(courseRepo *repository.CourseRepository, lectureRepo *repository.LectureRepository) *LectureService {
	return &LectureService{CourseRepo: courseRepo, LectureRepo: lectureRepo}
}

type LectureInput struct {
	Title       string            `json:"title" binding:"required"`
	Type        model.LectureType `json:"type" binding:"required"`
	Description string            `json:"description"`

	// Content lecture fields.
	Content    string `json:"content"`
	ContentURL string `json:"content_url"`
	FileURL    string `json:"file_url"`

	// Quiz lecture fields.
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	DurationMinutes int        `json:"duration_minutes"`
}

// CreateLecture appends a lecture to the course sequence. Order indices are
// assigned by the server in creation order and never reused.
func (s *LectureService) CreateLecture(actorID, courseID uint, input LectureInput) (*model.Lecture, error) {
	course, err := s.ownedCourse(actorID, courseID)
	if err != nil {
		return nil, err
	}
	if !model.ValidLectureType(input.Type) {
		return nil, fmt.Errorf("%w: unknown lecture type %q", util.ErrInvalidInput, input.Type)
	}

	orderIndex, err := s.LectureRepo.NextOrderIndex(course.ID)
	if err != nil {
		return nil, err
	}

	lecture := &model.Lecture{
		CourseID:    course.ID,
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		OrderIndex:  orderIndex,
	}

	var reading *model.ReadingLecture
	var quiz *model.QuizLecture
	if input.Type == model.LectureQuiz {
		if input.StartDate == nil || input.EndDate == nil {
			return nil, fmt.Errorf("%w: quiz lectures need a start and end date", util.ErrInvalidInput)
		}
		if !input.EndDate.After(*input.StartDate) {
			return nil, fmt.Errorf("%w: quiz end date must be after start date", util.ErrInvalidInput)
		}
		quiz = &model.QuizLecture{
			StartDate:       *input.StartDate,
			EndDate:         *input.EndDate,
			DurationMinutes: input.DurationMinutes,
		}
	} else {
		reading = &model.ReadingLecture{
			Content:    input.Content,
			ContentURL: input.ContentURL,
			FileURL:    input.FileURL,
		}
	}

	if err := s.LectureRepo.CreateWithExtension(lecture, reading, quiz); err != nil {
		return nil, err
	}
	return lecture, nil
}

func (s *LectureService) UpdateLecture(actorID, lectureID uint, input LectureInput) (*model.Lecture, error) {
	lecture, err := s.ownedLecture(actorID, lectureID)
	if err != nil {
		return nil, err
	}

	lecture.Title = input.Title
	lecture.Description = input.Description
	if err := s.LectureRepo.Update(lecture); err != nil {
		return nil, err
	}

	if lecture.Type == model.LectureQuiz {
		quiz, err := s.LectureRepo.FindQuiz(lecture.ID)
		if err != nil {
			return nil, err
		}
		if input.StartDate != nil {
			quiz.StartDate = *input.StartDate
		}
		if input.EndDate != nil {
			quiz.EndDate = *input.EndDate
		}
		if !quiz.EndDate.After(quiz.StartDate) {
			return nil, fmt.Errorf("%w: quiz end date must be after start date", util.ErrInvalidInput)
		}
		if input.DurationMinutes > 0 {
			quiz.DurationMinutes = input.DurationMinutes
		}
		if err := s.LectureRepo.UpdateQuiz(quiz); err != nil {
			return nil, err
		}
	} else {
		reading, err := s.LectureRepo.FindReading(lecture.ID)
		if err != nil {
			return nil, err
		}
		reading.Content = input.Content
		reading.ContentURL = input.ContentURL
		reading.FileURL = input.FileURL
		if err := s.LectureRepo.UpdateReading(reading); err != nil {
			return nil, err
		}
	}

	return lecture, nil
}

func (s *LectureService) DeleteLecture(actorID, lectureID uint) error {
	if _, err := s.ownedLecture(actorID, lectureID); err != nil {
		return err
	}
	return s.LectureRepo.Delete(lectureID)
}

type QuestionInput struct {
	Text         string   `json:"text" binding:"required"`
	Options      []string `json:"options" binding:"required"`
	CorrectIndex int      `json:"correct_index"`
}

func validateQuestion(input QuestionInput) error {
	if len(input.Options) < 2 {
		return fmt.Errorf("%w: a question needs at least two options", util.ErrInvalidInput)
	}
	if input.CorrectIndex < 0 || input.CorrectIndex >= len(input.Options) {
		return fmt.Errorf("%w: correct_index %d out of range", util.ErrInvalidInput, input.CorrectIndex)
	}
	return nil
}

func (s *LectureService) AddQuestion(actorID, lectureID uint, input QuestionInput) (*model.Question, error) {
	lecture, err := s.ownedLecture(actorID, lectureID)
	if err != nil {
		return nil, err
	}
	if lecture.Type != model.LectureQuiz {
		return nil, fmt.Errorf("%w: lecture is not a quiz", util.ErrInvalidInput)
	}
	if err := validateQuestion(input); err != nil {
		return nil, err
	}

	quiz, err := s.LectureRepo.FindQuiz(lecture.ID)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		QuizLectureID: quiz.ID,
		Text:          input.Text,
		Options:       input.Options,
		CorrectIndex:  input.CorrectIndex,
	}
	if err := s.LectureRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *LectureService) UpdateQuestion(actorID, questionID uint, input QuestionInput) (*model.Question, error) {
	question, err := s.LectureRepo.FindQuestionByID(questionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedQuiz(actorID, question.QuizLectureID); err != nil {
		return nil, err
	}
	if err := validateQuestion(input); err != nil {
		return nil, err
	}

	question.Text = input.Text
	question.Options = input.Options
	question.CorrectIndex = input.CorrectIndex
	if err := s.LectureRepo.UpdateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *LectureService) DeleteQuestion(actorID, questionID uint) error {
	question, err := s.LectureRepo.FindQuestionByID(questionID)
	if err != nil {
		return err
	}
	if _, err := s.ownedQuiz(actorID, question.QuizLectureID); err != nil {
		return err
	}
	return s.LectureRepo.DeleteQuestion(questionID)
}

// ListQuestions returns the full question set including answer keys. Owner
// only; students get their keyless view through the learning flow.
func (s *LectureService) ListQuestions(actorID, lectureID uint) ([]model.Question, error) {
	lecture, err := s.ownedLecture(actorID, lectureID)
	if err != nil {
		return nil, err
	}
	if lecture.Type != model.LectureQuiz {
		return nil, fmt.Errorf("%w: lecture is not a quiz", util.ErrInvalidInput)
	}
	quiz, err := s.LectureRepo.FindQuiz(lecture.ID)
	if err != nil {
		return nil, err
	}
	return s.LectureRepo.ListQuestions(quiz.ID)
}

func (s *LectureService) ownedCourse(actorID, courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsOwnedBy(actorID) {
		return nil, fmt.Errorf("%w: course belongs to another instructor", util.ErrPermissionDenied)
	}
	return course, nil
}

func (s *LectureService) ownedLecture(actorID, lectureID uint) (*model.Lecture, error) {
	lecture, err := s.LectureRepo.FindByID(lectureID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(actorID, lecture.CourseID); err != nil {
		return nil, err
	}
	return lecture, nil
}

func (s *LectureService) ownedQuiz(actorID, quizLectureID uint) (*model.QuizLecture, error) {
	quiz, err := s.LectureRepo.FindQuizByID(quizLectureID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedLecture(actorID, quiz.LectureID); err != nil {
		return nil, err
	}
	return quiz, nil
}
