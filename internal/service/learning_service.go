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

// PassMark is the inclusive automatic-score threshold (percent) at which a
// quiz lecture counts as completed.
const PassMark = 70.0

// LearningService implements the student-facing progression engine:
// enrollment, gated lecture access, reading auto-completion, quiz grading
// and progress snapshots.
type LearningService struct {
	CourseRepo     *repository.CourseRepository
	LectureRepo    *repository.LectureRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
	SubmissionRepo *repository.SubmissionRepository
	DB             *gorm.DB
}

func NewLearningService(
	courseRepo *repository.CourseRepository,
	lectureRepo *repository.LectureRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	submissionRepo *repository.SubmissionRepository,
	db *gorm.DB,
) *LearningService {
	return &LearningService{
		CourseRepo:     courseRepo,
		LectureRepo:    lectureRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		SubmissionRepo: submissionRepo,
		DB:             db,
	}
}

// Enroll creates the unique (student, course) enrollment. The course must be
// published to be visible to students.
func (s *LearningService) Enroll(studentID, courseID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, gorm.ErrRecordNotFound
	}

	exists, err := s.EnrollmentRepo.Exists(studentID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *LearningService) ListEnrollments(studentID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByStudent(studentID)
}

// canAccess applies the gating rule: the target lecture is accessible iff
// every lecture of the course with a strictly smaller order index is
// completed. The minimum-order lecture is always accessible once enrolled.
// This is deliberately the full-prefix rule, not "immediate predecessor only".
func canAccess(lectures []model.Lecture, progress *model.Progress, target *model.Lecture) bool {
	for _, l := range lectures {
		if l.OrderIndex < target.OrderIndex && !progress.HasCompleted(l.ID) {
			return false
		}
	}
	return true
}

// StudentQuestion is a question as shown to a student: no correct index.
type StudentQuestion struct {
	ID      uint     `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// LectureView is the student-visible snapshot of one lecture, returned after
// gating passed.
type LectureView struct {
	Lecture   model.Lecture         `json:"lecture"`
	Reading   *model.ReadingLecture `json:"reading,omitempty"`
	Quiz      *model.QuizLecture    `json:"quiz,omitempty"`
	Questions []StudentQuestion     `json:"questions,omitempty"`
	QuizOpen  bool                  `json:"quiz_open,omitempty"`
	Completed bool                  `json:"completed"`
	Score     *float64              `json:"score,omitempty"`
	Passed    bool                  `json:"passed"`
}

// ViewLecture enforces gating and returns the lecture content. Viewing a
// content lecture (reading/video/pdf) marks it complete as a side effect of
// the read; the side effect is idempotent.
func (s *LearningService) ViewLecture(studentID, lectureID uint) (*LectureView, error) {
	lecture, err := s.LectureRepo.FindByID(lectureID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.EnrollmentRepo.Find(studentID, lecture.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	lectures, err := s.LectureRepo.ListByCourse(lecture.CourseID)
	if err != nil {
		return nil, err
	}

	view := &LectureView{Lecture: *lecture}

	// The view is one atomic read-modify-write: lazy progress creation,
	// gating check, auto-completion and last-seen update all commit together.
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := s.ProgressRepo.GetOrCreateTx(tx, enrollment.ID)
		if err != nil {
			return err
		}

		if !canAccess(lectures, progress, lecture) {
			return util.ErrLectureLocked
		}

		changed := false
		if lecture.Type.IsContent() {
			changed = progress.MarkComplete(lecture.ID)
		}
		if progress.LastSeenLectureID == nil || *progress.LastSeenLectureID != lecture.ID {
			id := lecture.ID
			progress.LastSeenLectureID = &id
			changed = true
		}
		if changed {
			if err := s.ProgressRepo.SaveTx(tx, progress); err != nil {
				return err
			}
		}

		view.Completed = progress.HasCompleted(lecture.ID)
		if score, ok := progress.ScoreFor(lecture.ID); ok {
			v := score
			view.Score = &v
			view.Passed = score >= PassMark
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if lecture.Type.IsContent() {
		reading, err := s.LectureRepo.FindReading(lecture.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		view.Reading = reading
	} else {
		quiz, err := s.LectureRepo.FindQuiz(lecture.ID)
		if err != nil {
			return nil, err
		}
		view.Quiz = quiz
		view.QuizOpen = quiz.IsActive()

		questions, err := s.LectureRepo.ListQuestions(quiz.ID)
		if err != nil {
			return nil, err
		}
		view.Questions = make([]StudentQuestion, len(questions))
		for i, q := range questions {
			view.Questions[i] = StudentQuestion{ID: q.ID, Text: q.Text, Options: q.Options}
		}
	}

	return view, nil
}

// checkQuizWindow rejects attempts outside [StartDate, EndDate] with a
// message saying which side of the window was missed.
func checkQuizWindow(quiz *model.QuizLecture) error {
	switch {
	case quiz.IsNotStarted():
		return fmt.Errorf("%w: submissions open at %s", util.ErrQuizWindowClosed, quiz.StartDate.Format(util.TimeFormat))
	case quiz.IsExpired():
		return fmt.Errorf("%w: submissions closed at %s", util.ErrQuizWindowClosed, quiz.EndDate.Format(util.TimeFormat))
	}
	return nil
}

// QuizResult is the outcome of automatic grading.
type QuizResult struct {
	Percentage float64 `json:"percentage"`
	Passed     bool    `json:"passed"`
}

// gradeAnswers scores a submitted answer map against the question set. A quiz
// with no questions grades to 0 and is not passable.
func gradeAnswers(questions []model.Question, answers map[uint]int) QuizResult {
	total := len(questions)
	if total == 0 {
		return QuizResult{Percentage: 0, Passed: false}
	}

	correct := 0
	for _, q := range questions {
		if selected, ok := answers[q.ID]; ok && selected == q.CorrectIndex {
			correct++
		}
	}

	percentage := float64(correct) / float64(total) * 100
	return QuizResult{
		Percentage: percentage,
		Passed:     percentage >= PassMark,
	}
}

// SubmitQuiz grades the answers against the quiz's answer key and persists
// the outcome: the score is overwritten unconditionally (latest attempt wins,
// even when it is worse than a prior pass), while completion is only ever
// added on a pass and never removed.
func (s *LearningService) SubmitQuiz(studentID, lectureID uint, answers map[uint]int) (*QuizResult, error) {
	lecture, err := s.LectureRepo.FindByID(lectureID)
	if err != nil {
		return nil, err
	}
	if lecture.Type != model.LectureQuiz {
		return nil, fmt.Errorf("%w: lecture is not a quiz", util.ErrInvalidInput)
	}

	enrollment, err := s.EnrollmentRepo.Find(studentID, lecture.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	quiz, err := s.LectureRepo.FindQuiz(lecture.ID)
	if err != nil {
		return nil, err
	}
	if err := checkQuizWindow(quiz); err != nil {
		return nil, err
	}

	questions, err := s.LectureRepo.ListQuestions(quiz.ID)
	if err != nil {
		return nil, err
	}

	lectures, err := s.LectureRepo.ListByCourse(lecture.CourseID)
	if err != nil {
		return nil, err
	}

	result := gradeAnswers(questions, answers)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := s.ProgressRepo.GetOrCreateTx(tx, enrollment.ID)
		if err != nil {
			return err
		}
		if !canAccess(lectures, progress, lecture) {
			return util.ErrLectureLocked
		}

		progress.SetScore(lecture.ID, result.Percentage)
		if result.Passed {
			progress.MarkComplete(lecture.ID)
		}
		return s.ProgressRepo.SaveTx(tx, progress)
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// CreateSubmission persists the raw answers of one attempt for later manual
// review. It is a separate artifact from the automatic score and does not
// touch progress.
func (s *LearningService) CreateSubmission(studentID, lectureID uint, answers map[uint]int) (*model.QuizSubmission, error) {
	lecture, err := s.LectureRepo.FindByID(lectureID)
	if err != nil {
		return nil, err
	}
	if lecture.Type != model.LectureQuiz {
		return nil, fmt.Errorf("%w: lecture is not a quiz", util.ErrInvalidInput)
	}

	enrollment, err := s.EnrollmentRepo.Find(studentID, lecture.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	lectures, err := s.LectureRepo.ListByCourse(lecture.CourseID)
	if err != nil {
		return nil, err
	}
	progress, err := s.ProgressRepo.GetOrCreate(enrollment.ID)
	if err != nil {
		return nil, err
	}
	if !canAccess(lectures, progress, lecture) {
		return nil, util.ErrLectureLocked
	}

	quiz, err := s.LectureRepo.FindQuiz(lecture.ID)
	if err != nil {
		return nil, err
	}
	if err := checkQuizWindow(quiz); err != nil {
		return nil, err
	}

	questions, err := s.LectureRepo.ListQuestions(quiz.ID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	answerRows := make([]model.Answer, 0, len(answers))
	for _, q := range questions {
		selected, ok := answers[q.ID]
		if !ok {
			continue
		}
		if selected < 0 || selected >= len(q.Options) {
			return nil, fmt.Errorf("%w: option index %d out of range for question %d", util.ErrInvalidInput, selected, q.ID)
		}
		answerRows = append(answerRows, model.Answer{
			QuestionID:          q.ID,
			SelectedOptionIndex: selected,
		})
	}
	for qid := range answers {
		if _, ok := byID[qid]; !ok {
			return nil, fmt.Errorf("%w: question %d does not belong to this quiz", util.ErrInvalidInput, qid)
		}
	}

	submission := &model.QuizSubmission{
		QuizLectureID: quiz.ID,
		StudentID:     studentID,
		SubmittedAt:   time.Now(),
	}
	if err := s.SubmissionRepo.CreateWithAnswers(submission, answerRows); err != nil {
		return nil, err
	}
	submission.Answers = answerRows
	return submission, nil
}

// GetProgress returns the progress snapshot for the student's enrollment in
// the course, creating an empty one on first read.
func (s *LearningService) GetProgress(studentID, courseID uint) (*model.Progress, error) {
	enrollment, err := s.EnrollmentRepo.Find(studentID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}
	return s.ProgressRepo.GetOrCreate(enrollment.ID)
}
