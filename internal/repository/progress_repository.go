package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// GetOrCreate returns the progress row for the enrollment, creating an empty
// one when none exists yet. Lazy creation on first need is the documented
// contract for progress state.
func (r *ProgressRepository) GetOrCreate(enrollmentID uint) (*model.Progress, error) {
	return getOrCreateProgress(r.DB, enrollmentID)
}

// GetOrCreateTx is the transactional variant used inside action-scoped
// transactions (view lecture, submit quiz).
func (r *ProgressRepository) GetOrCreateTx(tx *gorm.DB, enrollmentID uint) (*model.Progress, error) {
	return getOrCreateProgress(tx, enrollmentID)
}

func getOrCreateProgress(db *gorm.DB, enrollmentID uint) (*model.Progress, error) {
	var progress model.Progress
	err := db.Where(model.Progress{EnrollmentID: enrollmentID}).FirstOrCreate(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) Save(progress *model.Progress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) SaveTx(tx *gorm.DB, progress *model.Progress) error {
	return tx.Save(progress).Error
}
