package repository

import (
	"fieldops-backend/internal/model"

	"gorm.io/gorm"
)

type NotifikasiRepository interface {
	Create(notifikasi *model.Notifikasi) error
	GetByUser(userID uint) ([]model.Notifikasi, error)
	TandaiDibaca(id uint, userID uint) error
	CountBelumDibaca(userID uint) (int64, error)

	CreateLog(entry *model.LogAktivitas) error
	GetLogs(limit int) ([]model.LogAktivitas, error)
}

type notifikasiRepository struct {
	db *gorm.DB
}

func NewNotifikasiRepository(db *gorm.DB) NotifikasiRepository {
	return &notifikasiRepository{db}
}

func (r *notifikasiRepository) Create(notifikasi *model.Notifikasi) error {
	return r.db.Create(notifikasi).Error
}

func (r *notifikasiRepository) GetByUser(userID uint) ([]model.Notifikasi, error) {
	var list []model.Notifikasi
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *notifikasiRepository) TandaiDibaca(id uint, userID uint) error {
	return r.db.Model(&model.Notifikasi{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("dibaca", true).Error
}

func (r *notifikasiRepository) CountBelumDibaca(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notifikasi{}).
		Where("user_id = ? AND dibaca = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notifikasiRepository) CreateLog(entry *model.LogAktivitas) error {
	return r.db.Create(entry).Error
}

func (r *notifikasiRepository) GetLogs(limit int) ([]model.LogAktivitas, error) {
	var list []model.LogAktivitas
	err := r.db.Order("created_at desc").Limit(limit).Find(&list).Error
	return list, err
}
