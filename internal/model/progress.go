package model

import "gorm.io/datatypes"

// ScoreMap maps a lecture ID to the latest automatic percentage score (0-100).
type ScoreMap map[uint]float64

// Progress is the per-enrollment mutable state: which lectures are done and
// the latest quiz score per lecture. One-to-one with Enrollment, created
// lazily (get-or-create) the first time it is needed.
type Progress struct {
	BaseModel
	EnrollmentID        uint                         `gorm:"uniqueIndex;not null" json:"enrollmentId"`
	Enrollment          *Enrollment                  `gorm:"foreignKey:EnrollmentID" json:"-"`
	CompletedLectureIDs datatypes.JSONSlice[uint]    `json:"completedLectureIds"`
	Scores              datatypes.JSONType[ScoreMap] `json:"scores"`
	LastSeenLectureID   *uint                        `json:"lastSeenLectureId"`
}

func (Progress) TableName() string {
	return "progress"
}

// HasCompleted reports whether the lecture is recorded as done.
func (p *Progress) HasCompleted(lectureID uint) bool {
	for _, id := range p.CompletedLectureIDs {
		if id == lectureID {
			return true
		}
	}
	return false
}

// MarkComplete appends the lecture to the completed list. Idempotent: an
// already-present ID is a no-op and duplicates are never introduced.
// Returns whether the list changed.
func (p *Progress) MarkComplete(lectureID uint) bool {
	if p.HasCompleted(lectureID) {
		return false
	}
	p.CompletedLectureIDs = append(p.CompletedLectureIDs, lectureID)
	return true
}

// SetScore overwrites the score for the lecture. Latest attempt wins; no
// history is kept here (raw submissions are a separate artifact).
func (p *Progress) SetScore(lectureID uint, percentage float64) {
	scores := p.Scores.Data()
	if scores == nil {
		scores = make(ScoreMap)
	}
	scores[lectureID] = percentage
	p.Scores = datatypes.NewJSONType(scores)
}

// ScoreFor returns the recorded score for the lecture, if any.
func (p *Progress) ScoreFor(lectureID uint) (float64, bool) {
	scores := p.Scores.Data()
	if scores == nil {
		return 0, false
	}
	s, ok := scores[lectureID]
	return s, ok
}
