// Package services holds the CRUD collections around the ledgers: sales,
// inventory, clients, providers and pending orders.
package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fernandosattini/iphoneapp/internal/dates"
	"github.com/fernandosattini/iphoneapp/internal/models"
)

type ClientService struct{ db *gorm.DB }

func NewClientService(conn *gorm.DB) *ClientService { return &ClientService{db: conn} }

func (s *ClientService) Add(ctx context.Context, name, phone string) (*models.Client, error) {
	c := models.Client{ID: models.NewID("client"), Name: name, Phone: phone, DateAdded: dates.Today()}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("add client: %w", err)
	}
	return &c, nil
}

func (s *ClientService) Remove(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Client{}).Error; err != nil {
		return fmt.Errorf("remove client: %w", err)
	}
	return nil
}

func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// Search returns clients whose name contains term, case-insensitively.
func (s *ClientService) Search(ctx context.Context, term string) ([]models.Client, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	var clients []models.Client
	if err := s.db.WithContext(ctx).Where("lower(name) LIKE ?", like).Order("name asc").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	return clients, nil
}
