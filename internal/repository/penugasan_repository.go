package repository

import (
	"fieldops-backend/internal/model"

	"gorm.io/gorm"
)

type PenugasanRepository interface {
	Create(penugasan *model.Penugasan) error
	FindByID(id uint) (*model.Penugasan, error)
	GetAll() ([]model.Penugasan, error)
	GetByPengawas(pengawasID uint) ([]model.Penugasan, error)
	GetByTeknisi(teknisiID uint) ([]model.Penugasan, error)
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
	AddTeknisi(penugasanID uint, teknisiID uint) error
	RemoveTeknisi(penugasanID uint, teknisiID uint) error
	IsTeknisiAssigned(penugasanID uint, teknisiID uint) (bool, error)
}

type penugasanRepository struct {
	db *gorm.DB
}

func NewPenugasanRepository(db *gorm.DB) PenugasanRepository {
	return &penugasanRepository{db}
}

func (r *penugasanRepository) Create(penugasan *model.Penugasan) error {
	return r.db.Create(penugasan).Error
}

func (r *penugasanRepository) FindByID(id uint) (*model.Penugasan, error) {
	var penugasan model.Penugasan
	err := r.db.Preload("Pengawas").Preload("Teknisi").First(&penugasan, id).Error
	if err != nil {
		return nil, err
	}
	return &penugasan, nil
}

func (r *penugasanRepository) GetAll() ([]model.Penugasan, error) {
	var list []model.Penugasan
	err := r.db.Preload("Pengawas").Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *penugasanRepository) GetByPengawas(pengawasID uint) ([]model.Penugasan, error) {
	var list []model.Penugasan
	err := r.db.Where("pengawas_id = ?", pengawasID).Order("created_at desc").Find(&list).Error
	return list, err
}

func (r *penugasanRepository) GetByTeknisi(teknisiID uint) ([]model.Penugasan, error) {
	var list []model.Penugasan
	err := r.db.Joins("JOIN penugasan_teknisi ON penugasan_teknisi.penugasan_id = penugasan.id").
		Where("penugasan_teknisi.teknisi_id = ?", teknisiID).
		Order("penugasan.created_at desc").
		Find(&list).Error
	return list, err
}

func (r *penugasanRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&model.Penugasan{}).Where("id = ?", id).Update("status", status).Error
}

func (r *penugasanRepository) Delete(id uint) error {
	return r.db.Delete(&model.Penugasan{}, id).Error
}

func (r *penugasanRepository) AddTeknisi(penugasanID uint, teknisiID uint) error {
	link := model.PenugasanTeknisi{PenugasanID: penugasanID, TeknisiID: teknisiID}
	return r.db.Create(&link).Error
}

func (r *penugasanRepository) RemoveTeknisi(penugasanID uint, teknisiID uint) error {
	return r.db.Where("penugasan_id = ? AND teknisi_id = ?", penugasanID, teknisiID).
		Delete(&model.PenugasanTeknisi{}).Error
}

func (r *penugasanRepository) IsTeknisiAssigned(penugasanID uint, teknisiID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.PenugasanTeknisi{}).
		Where("penugasan_id = ? AND teknisi_id = ?", penugasanID, teknisiID).
		Count(&count).Error
	return count > 0, err
}
