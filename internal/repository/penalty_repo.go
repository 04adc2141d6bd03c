package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
)

type PenaltyRepository struct {
	db *gorm.DB
}

func NewPenaltyRepository(db *gorm.DB) *PenaltyRepository {
	return &PenaltyRepository{db: db}
}

func (r *PenaltyRepository) WithTx(tx *gorm.DB) *PenaltyRepository {
	return &PenaltyRepository{db: tx}
}

func (r *PenaltyRepository) Create(ctx context.Context, p *domain.Penalty) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PenaltyRepository) GetByID(ctx context.Context, id int64) (*domain.Penalty, error) {
	var p domain.Penalty
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PenaltyRepository) List(ctx context.Context) ([]domain.Penalty, error) {
	var ps []domain.Penalty
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *PenaltyRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Penalty, error) {
	var ps []domain.Penalty
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *PenaltyRepository) ListByBorrow(ctx context.Context, borrowID int64) ([]domain.Penalty, error) {
	var ps []domain.Penalty
	if err := r.db.WithContext(ctx).Where("borrowed_equipment_id = ?", borrowID).Order("id").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *PenaltyRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&domain.Penalty{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PenaltyRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Penalty{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PenaltyRepository) CountByStatus(ctx context.Context, status domain.PenaltyStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Penalty{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// SumByStatus adds up the amounts of penalties in status.
func (r *PenaltyRepository) SumByStatus(ctx context.Context, status domain.PenaltyStatus) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := r.db.WithContext(ctx).Model(&domain.Penalty{}).
		Where("status = ?", status).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}
