package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sparkkart/storefront/internal/domain"
)

type SupportRepo struct{ db *gorm.DB }

func NewSupportRepo(db *gorm.DB) *SupportRepo { return &SupportRepo{db: db} }

func (r *SupportRepo) Save(ctx context.Context, t *domain.SupportTicket) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *SupportRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.SupportTicket, error) {
	var t domain.SupportTicket
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *SupportRepo) List(ctx context.Context, f domain.TicketFilter) ([]domain.SupportTicket, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.SupportTicket{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (f.Page - 1) * f.PageSize
	var list []domain.SupportTicket
	if err := q.Order("created_at desc").Offset(offset).Limit(f.PageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *SupportRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.SupportTicket, error) {
	var list []domain.SupportTicket
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
