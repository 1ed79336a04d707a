package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sar_tracker_go/models"
	"sar_tracker_go/services/sar"

	"gorm.io/gorm"
)

// GormRepository implements Repository on top of gorm
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository wraps an open gorm connection
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// notFound translates gorm's missing-row error into the tracker's error taxonomy
func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, sar.ErrNotFound)
	}
	return fmt.Errorf("failed to fetch %s: %w", what, err)
}

func (r *GormRepository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

func (r *GormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

func (r *GormRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *GormRepository) UserExists(ctx context.Context, username, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ? OR email = ?", username, email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user uniqueness: %w", err)
	}
	return count > 0, nil
}

func (r *GormRepository) CaseReferenceExists(ctx context.Context, reference string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SARCase{}).Where("case_reference = ?", reference).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check case reference uniqueness: %w", err)
	}
	return count > 0, nil
}

func (r *GormRepository) CreateCase(ctx context.Context, c *models.SARCase) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(c).Error; err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

func (r *GormRepository) GetCase(ctx context.Context, ownerID, id uint) (*models.SARCase, error) {
	var c models.SARCase
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&c).Error; err != nil {
		return nil, notFound(err, "case", id)
	}
	return &c, nil
}

func (r *GormRepository) ListCases(ctx context.Context, ownerID uint, filter CaseFilter) ([]models.SARCase, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Organization != "" {
		query = query.Where("LOWER(organization_name) LIKE ?", "%"+strings.ToLower(filter.Organization)+"%")
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var cases []models.SARCase
	if err := query.Order("id ASC").Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

func (r *GormRepository) SaveCase(ctx context.Context, c *models.SARCase) error {
	if err := r.db.WithContext(ctx).Omit("User").Save(c).Error; err != nil {
		return fmt.Errorf("failed to save case: %w", err)
	}
	return nil
}

func (r *GormRepository) DeleteCase(ctx context.Context, ownerID, id uint) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.SARCase
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&c).Error; err != nil {
			return notFound(err, "case", id)
		}

		if err := tx.Model(&models.CaseFile{}).Where("sar_case_id = ?", c.ID).Pluck("storage_key", &keys).Error; err != nil {
			return fmt.Errorf("failed to list case files: %w", err)
		}

		children := []interface{}{&models.Reminder{}, &models.Escalation{}, &models.CaseFile{}, &models.CaseUpdate{}}
		for _, child := range children {
			if err := tx.Where("sar_case_id = ?", c.ID).Delete(child).Error; err != nil {
				return fmt.Errorf("failed to delete case children: %w", err)
			}
		}

		if err := tx.Delete(&c).Error; err != nil {
			return fmt.Errorf("failed to delete case: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *GormRepository) CreateCaseUpdate(ctx context.Context, u *models.CaseUpdate) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("failed to create case update: %w", err)
	}
	return nil
}

func (r *GormRepository) ListCaseUpdates(ctx context.Context, caseID uint) ([]models.CaseUpdate, error) {
	var updates []models.CaseUpdate
	if err := r.db.WithContext(ctx).Where("sar_case_id = ?", caseID).Order("created_at DESC, id DESC").Find(&updates).Error; err != nil {
		return nil, fmt.Errorf("failed to list case updates: %w", err)
	}
	return updates, nil
}

func (r *GormRepository) CreateCaseFile(ctx context.Context, f *models.CaseFile) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("failed to create case file: %w", err)
	}
	return nil
}

func (r *GormRepository) GetCaseFile(ctx context.Context, caseID, id uint) (*models.CaseFile, error) {
	var f models.CaseFile
	if err := r.db.WithContext(ctx).Where("id = ? AND sar_case_id = ?", id, caseID).First(&f).Error; err != nil {
		return nil, notFound(err, "case file", id)
	}
	return &f, nil
}

func (r *GormRepository) ListCaseFiles(ctx context.Context, caseID uint) ([]models.CaseFile, error) {
	var files []models.CaseFile
	if err := r.db.WithContext(ctx).Where("sar_case_id = ?", caseID).Order("uploaded_at DESC, id DESC").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to list case files: %w", err)
	}
	return files, nil
}

func (r *GormRepository) RegulatorReferenceExists(ctx context.Context, reference string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Escalation{}).Where("ico_reference = ?", reference).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check ICO reference uniqueness: %w", err)
	}
	return count > 0, nil
}

func (r *GormRepository) CreateEscalation(ctx context.Context, e *models.Escalation) error {
	if err := r.db.WithContext(ctx).Omit("Case").Create(e).Error; err != nil {
		return fmt.Errorf("failed to create escalation: %w", err)
	}
	return nil
}

func (r *GormRepository) GetEscalation(ctx context.Context, ownerID, id uint) (*models.Escalation, error) {
	var e models.Escalation
	if err := r.db.WithContext(ctx).Preload("Case").Where("id = ? AND user_id = ?", id, ownerID).First(&e).Error; err != nil {
		return nil, notFound(err, "escalation", id)
	}
	return &e, nil
}

func (r *GormRepository) ListEscalations(ctx context.Context, ownerID uint) ([]models.Escalation, error) {
	var escalations []models.Escalation
	if err := r.db.WithContext(ctx).Preload("Case").Where("user_id = ?", ownerID).Order("escalation_date DESC, id DESC").Find(&escalations).Error; err != nil {
		return nil, fmt.Errorf("failed to list escalations: %w", err)
	}
	return escalations, nil
}

func (r *GormRepository) SaveEscalation(ctx context.Context, e *models.Escalation) error {
	if err := r.db.WithContext(ctx).Omit("Case").Save(e).Error; err != nil {
		return fmt.Errorf("failed to save escalation: %w", err)
	}
	return nil
}

func (r *GormRepository) CreateReminder(ctx context.Context, rem *models.Reminder) error {
	if err := r.db.WithContext(ctx).Create(rem).Error; err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

func (r *GormRepository) GetReminder(ctx context.Context, ownerID, id uint) (*models.Reminder, error) {
	var rem models.Reminder
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&rem).Error; err != nil {
		return nil, notFound(err, "reminder", id)
	}
	return &rem, nil
}

func (r *GormRepository) ListReminders(ctx context.Context, ownerID uint, filter ReminderFilter) ([]models.Reminder, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if filter.SARCaseID != nil {
		query = query.Where("sar_case_id = ?", *filter.SARCaseID)
	}
	if !filter.IncludeCompleted {
		query = query.Where("is_completed = ?", false)
	}

	var reminders []models.Reminder
	if err := query.Order("reminder_date ASC, id ASC").Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

func (r *GormRepository) SaveReminder(ctx context.Context, rem *models.Reminder) error {
	if err := r.db.WithContext(ctx).Save(rem).Error; err != nil {
		return fmt.Errorf("failed to save reminder: %w", err)
	}
	return nil
}
