package repository

import (
	"errors"

	"fieldops-backend/internal/model"

	"gorm.io/gorm"
)

type LaporanRepository interface {
	Create(laporan *model.LaporanProgres) error
	FindByID(id uint) (*model.LaporanProgres, error)
	GetByPenugasan(penugasanID uint) ([]model.LaporanProgres, error)
	// GetTerakhir mengambil satu laporan paling baru untuk penugasan.
	// Return nil (tanpa error) jika belum ada laporan sama sekali.
	GetTerakhir(penugasanID uint) (*model.LaporanProgres, error)
	CountByPenugasan(penugasanID uint) (int64, error)
	UpdateValidasi(id uint, status string, catatan *string) error
	CreateBuktiBatch(bukti []model.BuktiLaporan) error
	GetBuktiByLaporan(laporanID uint) ([]model.BuktiLaporan, error)
}

type laporanRepository struct {
	db *gorm.DB
}

func NewLaporanRepository(db *gorm.DB) LaporanRepository {
	return &laporanRepository{db}
}

func (r *laporanRepository) Create(laporan *model.LaporanProgres) error {
	return r.db.Create(laporan).Error
}

func (r *laporanRepository) FindByID(id uint) (*model.LaporanProgres, error) {
	var laporan model.LaporanProgres
	err := r.db.First(&laporan, id).Error
	if err != nil {
		return nil, err
	}
	return &laporan, nil
}

func (r *laporanRepository) GetByPenugasan(penugasanID uint) ([]model.LaporanProgres, error) {
	var list []model.LaporanProgres
	err := r.db.Where("penugasan_id = ?", penugasanID).
		Order("tanggal_laporan desc, id desc").
		Find(&list).Error
	return list, err
}

func (r *laporanRepository) GetTerakhir(penugasanID uint) (*model.LaporanProgres, error) {
	var laporan model.LaporanProgres
	err := r.db.Where("penugasan_id = ?", penugasanID).
		Order("tanggal_laporan desc, id desc").
		First(&laporan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &laporan, nil
}

func (r *laporanRepository) CountByPenugasan(penugasanID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.LaporanProgres{}).
		Where("penugasan_id = ?", penugasanID).
		Count(&count).Error
	return count, err
}

func (r *laporanRepository) UpdateValidasi(id uint, status string, catatan *string) error {
	return r.db.Model(&model.LaporanProgres{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status_validasi":  status,
			"catatan_validasi": catatan,
		}).Error
}

func (r *laporanRepository) CreateBuktiBatch(bukti []model.BuktiLaporan) error {
	return r.db.Create(&bukti).Error
}

func (r *laporanRepository) GetBuktiByLaporan(laporanID uint) ([]model.BuktiLaporan, error) {
	var list []model.BuktiLaporan
	err := r.db.Where("laporan_id = ?", laporanID).Order("id asc").Find(&list).Error
	return list, err
}
