package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const catalogCacheTTL = 5 * time.Minute

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	LectureRepo    *repository.LectureRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
	Redis          *redis.Client
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	lectureRepo *repository.LectureRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	redisClient *redis.Client,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		LectureRepo:    lectureRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		Redis:          redisClient,
	}
}

type CourseInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (s *CourseService) CreateCourse(instructorID uint, input CourseInput) (*model.Course, error) {
	course := &model.Course{
		Title:        input.Title,
		Description:  input.Description,
		InstructorID: instructorID,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(actorID, courseID uint, input CourseInput) (*model.Course, error) {
	course, err := s.ownedCourse(actorID, courseID)
	if err != nil {
		return nil, err
	}

	course.Title = input.Title
	course.Description = input.Description
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	s.invalidateCatalog(context.Background())
	return course, nil
}

func (s *CourseService) PublishCourse(actorID, courseID uint, published bool) (*model.Course, error) {
	course, err := s.ownedCourse(actorID, courseID)
	if err != nil {
		return nil, err
	}

	course.IsPublished = published
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	s.invalidateCatalog(context.Background())
	return course, nil
}

func (s *CourseService) DeleteCourse(actorID, courseID uint) error {
	if _, err := s.ownedCourse(actorID, courseID); err != nil {
		return err
	}
	if err := s.CourseRepo.Delete(courseID); err != nil {
		return err
	}
	s.invalidateCatalog(context.Background())
	return nil
}

// ListPublished returns the public catalog. Unsearched listings are served
// from redis when a client is configured; cache failures fall through to the
// database.
func (s *CourseService) ListPublished(ctx context.Context, search string) ([]model.Course, error) {
	cacheable := search == "" && s.Redis != nil

	if cacheable {
		if cached, err := s.Redis.Get(ctx, catalogCacheKey).Result(); err == nil {
			var courses []model.Course
			if err := json.Unmarshal([]byte(cached), &courses); err == nil {
				return courses, nil
			}
		}
	}

	courses, err := s.CourseRepo.ListPublished(search)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if payload, err := json.Marshal(courses); err == nil {
			if err := s.Redis.Set(ctx, catalogCacheKey, payload, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("catalog cache write failed", zap.Error(err))
			}
		}
	}
	return courses, nil
}

func (s *CourseService) ListByInstructor(instructorID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByInstructor(instructorID)
}

// CourseDetail is a course with its ordered lecture list and, for an enrolled
// student, a completion summary.
type CourseDetail struct {
	Course          model.Course    `json:"course"`
	Lectures        []model.Lecture `json:"lectures"`
	LectureCount    int64           `json:"lecture_count"`
	Enrolled        bool            `json:"enrolled"`
	CompletedCount  int             `json:"completed_count"`
	ProgressPercent float64         `json:"progress_percent"`
}

// GetCourseDetail returns a published course with its lecture list.
// Instructors can see their own unpublished courses; everyone else gets a
// not-found for drafts.
func (s *CourseService) GetCourseDetail(courseID uint, viewer *util.Claims) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}

	if !course.IsPublished {
		if viewer == nil || !course.IsOwnedBy(viewer.UserID) {
			return nil, gorm.ErrRecordNotFound
		}
	}

	lectures, err := s.LectureRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	count, err := s.CourseRepo.CountLectures(courseID)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{
		Course:       *course,
		Lectures:     lectures,
		LectureCount: count,
	}
	if viewer != nil {
		enrollment, err := s.EnrollmentRepo.Find(viewer.UserID, courseID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			return detail, nil
		}
		detail.Enrolled = true

		progress, err := s.ProgressRepo.GetOrCreate(enrollment.ID)
		if err != nil {
			return nil, err
		}
		for _, l := range lectures {
			if progress.HasCompleted(l.ID) {
				detail.CompletedCount++
			}
		}
		if len(lectures) > 0 {
			detail.ProgressPercent = float64(detail.CompletedCount) / float64(len(lectures)) * 100
		}
	}
	return detail, nil
}

const catalogCacheKey = "lms:catalog:published"

func (s *CourseService) invalidateCatalog(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, catalogCacheKey).Err(); err != nil && !errors.Is(err, redis.Nil) {
		logger.Log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *CourseService) ownedCourse(actorID, courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsOwnedBy(actorID) {
		return nil, fmt.Errorf("%w: course belongs to another instructor", util.ErrPermissionDenied)
	}
	return course, nil
}
