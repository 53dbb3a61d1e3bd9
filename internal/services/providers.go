package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fernandosattini/iphoneapp/internal/dates"
	"github.com/fernandosattini/iphoneapp/internal/models"
)

type ProviderService struct{ db *gorm.DB }

func NewProviderService(conn *gorm.DB) *ProviderService { return &ProviderService{db: conn} }

func (s *ProviderService) Add(ctx context.Context, name, phone, email string) (*models.Provider, error) {
	p := models.Provider{ID: models.NewID("provider"), Name: name, Phone: phone, Email: email, DateAdded: dates.Today()}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, fmt.Errorf("add provider: %w", err)
	}
	return &p, nil
}

func (s *ProviderService) Remove(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Provider{}).Error; err != nil {
		return fmt.Errorf("remove provider: %w", err)
	}
	return nil
}

func (s *ProviderService) List(ctx context.Context) ([]models.Provider, error) {
	var providers []models.Provider
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	return providers, nil
}

func (s *ProviderService) Search(ctx context.Context, term string) ([]models.Provider, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var providers []models.Provider
	if err := s.db.WithContext(ctx).Where("lower(name) LIKE ?", like).Order("name asc").Find(&providers).Error; err != nil {
		return nil, fmt.Errorf("search providers: %w", err)
	}
	return providers, nil
}
