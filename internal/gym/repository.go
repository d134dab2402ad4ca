package gym

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(g *Gym) error {
	return r.DB.Create(g).Error
}

func (r *Repository) GetByID(id uint) (*Gym, error) {
	var g Gym
	err := r.DB.First(&g, id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *Repository) ListActive(limit, offset int) ([]Gym, error) {
	var gyms []Gym
	err := r.DB.
		Where("is_active = ?", true).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&gyms).Error
	return gyms, err
}

func (r *Repository) Update(g *Gym) error {
	return r.DB.Save(g).Error
}
