package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
)

type BorrowRepository struct {
	db *gorm.DB
}

func NewBorrowRepository(db *gorm.DB) *BorrowRepository {
	return &BorrowRepository{db: db}
}

func (r *BorrowRepository) WithTx(tx *gorm.DB) *BorrowRepository {
	return &BorrowRepository{db: tx}
}

func (r *BorrowRepository) Create(ctx context.Context, rec *domain.BorrowRecord) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error
}

func (r *BorrowRepository) GetByID(ctx context.Context, id int64) (*domain.BorrowRecord, error) {
	var rec domain.BorrowRecord
	if err := r.db.WithContext(ctx).Preload("Equipment").First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetForUpdate loads the record with a row lock held until the surrounding
// transaction ends. SQLite ignores the lock clause and serializes writers.
func (r *BorrowRepository) GetForUpdate(ctx context.Context, id int64) (*domain.BorrowRecord, error) {
	var rec domain.BorrowRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *BorrowRepository) List(ctx context.Context) ([]domain.BorrowRecord, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *BorrowRepository) ListByUser(ctx context.Context, userID int64) ([]domain.BorrowRecord, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *BorrowRepository) ListByStatus(ctx context.Context, status domain.BorrowStatus) ([]domain.BorrowRecord, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ?", status))
}

// ListOverdue returns borrowed records whose due date is before now.
func (r *BorrowRepository) ListOverdue(ctx context.Context, now time.Time) ([]domain.BorrowRecord, error) {
	return r.find(r.db.WithContext(ctx).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", domain.BorrowBorrowed, now))
}

func (r *BorrowRepository) find(q *gorm.DB) ([]domain.BorrowRecord, error) {
	var recs []domain.BorrowRecord
	if err := q.Preload("Equipment").Order("id DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *BorrowRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&domain.BorrowRecord{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BorrowRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.BorrowRecord{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BorrowRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.BorrowRecord{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Referencing reports whether any record points at the given column value,
// e.g. Referencing(ctx, "equipment_id", 7).
func (r *BorrowRepository) Referencing(ctx context.Context, column string, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.BorrowRecord{}).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: id}).
		Count(&n).Error
	return n > 0, err
}

func (r *BorrowRepository) CountByStatus(ctx context.Context, status domain.BorrowStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.BorrowRecord{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *BorrowRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.BorrowRecord{}).
		Where("status = ? AND due_date IS NOT NULL AND due_date < ?", domain.BorrowBorrowed, now).
		Count(&n).Error
	return n, err
}

type BorrowCount struct {
	EquipmentID int64
	Name        string
	Count       int64
}

// MostBorrowed returns the equipment with the most ledger entries, or nil
// when the ledger is empty.
func (r *BorrowRepository) MostBorrowed(ctx context.Context) (*BorrowCount, error) {
	var rows []BorrowCount
	err := r.db.WithContext(ctx).
		Table("borrowed_equipment AS b").
		Select("b.equipment_id AS equipment_id, COALESCE(e.name, '') AS name, COUNT(*) AS count").
		Joins("LEFT JOIN equipment e ON e.id = b.equipment_id").
		Group("b.equipment_id, e.name").
		Order("count DESC, b.equipment_id").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
