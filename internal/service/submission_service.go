package service

import (
	"errors"
	"strings"

	"github.com/startupsaga/internal/db"
	"gorm.io/gorm"
)

var (
	ErrSubmissionNotFound = errors.New("startup submission not found")
	ErrSubmissionInvalid  = errors.New("submission requires a startup name and email")
)

// SubmissionService handles the public "submit your startup" pipeline and
// its admin review queue.
type SubmissionService struct {
	db       *gorm.DB
	startups *StartupService
}

// NewSubmissionService creates a SubmissionService instance.
func NewSubmissionService(gdb *gorm.DB, startups *StartupService) *SubmissionService {
	return &SubmissionService{db: gdb, startups: startups}
}

// SubmissionInput carries the public submission form fields.
type SubmissionInput struct {
	StartupName   string
	FounderName   string
	Email         string
	Website       string
	Description   string
	FullStory     string
	City          string
	Category      string
	FundingStage  string
	BusinessModel string
	LogoURL       string
	ThumbnailURL  string
}

// Create stores a public submission in the pending queue.
func (s *SubmissionService) Create(input SubmissionInput) (*db.StartupSubmission, error) {
	name := strings.TrimSpace(input.StartupName)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return nil, ErrSubmissionInvalid
	}

	submission := db.StartupSubmission{
		StartupName:   name,
		FounderName:   strings.TrimSpace(input.FounderName),
		Email:         email,
		Website:       strings.TrimSpace(input.Website),
		Description:   input.Description,
		FullStory:     input.FullStory,
		City:          strings.TrimSpace(input.City),
		Category:      strings.TrimSpace(input.Category),
		FundingStage:  input.FundingStage,
		BusinessModel: input.BusinessModel,
		LogoURL:       input.LogoURL,
		ThumbnailURL:  input.ThumbnailURL,
		Status:        "pending",
	}
	if err := s.db.Create(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// List returns submissions, optionally filtered by status, newest first.
func (s *SubmissionService) List(status string) ([]db.StartupSubmission, error) {
	query := s.db.Order("created_at desc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var submissions []db.StartupSubmission
	if err := query.Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// Get returns one submission by id.
func (s *SubmissionService) Get(id uint) (*db.StartupSubmission, error) {
	var submission db.StartupSubmission
	if err := s.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// SetStatus moves a submission to the given review state.
func (s *SubmissionService) SetStatus(id uint, status string) (*db.StartupSubmission, error) {
	submission, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	submission.Status = status
	if err := s.db.Save(submission).Error; err != nil {
		return nil, err
	}
	return submission, nil
}

// Approve turns a pending submission into a draft startup and marks the
// submission approved. City and category names resolve to existing rows or
// are created on the fly.
func (s *SubmissionService) Approve(id uint, cities *CityService, categories *CategoryService) (*db.Startup, error) {
	submission, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	input := StartupCreateInput{
		Name:          submission.StartupName,
		Tagline:       submission.Description,
		Description:   submission.FullStory,
		WebsiteURL:    submission.Website,
		FundingStage:  submission.FundingStage,
		BusinessModel: submission.BusinessModel,
		LogoURL:       submission.LogoURL,
		Status:        "draft",
	}
	if submission.FounderName != "" {
		input.FoundersData = []db.FounderInfo{{Name: submission.FounderName}}
	}
	if submission.City != "" {
		city, err := cities.EnsureByName(submission.City)
		if err != nil {
			return nil, err
		}
		input.CityID = &city.ID
	}
	if submission.Category != "" {
		category, err := categories.EnsureByName(submission.Category)
		if err != nil {
			return nil, err
		}
		input.CategoryID = &category.ID
	}

	startup, err := s.startups.Create(input)
	if err != nil {
		return nil, err
	}

	submission.Status = "approved"
	if err := s.db.Save(submission).Error; err != nil {
		return nil, err
	}
	return startup, nil
}

// Delete removes a submission from the queue.
func (s *SubmissionService) Delete(id uint) error {
	result := s.db.Delete(&db.StartupSubmission{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}
