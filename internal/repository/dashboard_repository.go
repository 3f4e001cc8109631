package repository

import (
	"fieldops-backend/internal/model"

	"gorm.io/gorm"
)

type DashboardRepository interface {
	CountPenugasanByStatus(status string) (int64, error)
	CountLaporanByTanggal(tanggal string) (int64, error)
	CountLaporanPendingValidasi() (int64, error)
	CountAlatDipinjam() (int64, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db}
}

func (r *dashboardRepository) CountPenugasanByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Penugasan{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountLaporanByTanggal(tanggal string) (int64, error) {
	var count int64
	err := r.db.Model(&model.LaporanProgres{}).Where("tanggal_laporan = ?", tanggal).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountLaporanPendingValidasi() (int64, error) {
	var count int64
	err := r.db.Model(&model.LaporanProgres{}).Where("status_validasi = ?", "Pending").Count(&count).Error
	return count, err
}

// Jumlah unit alat yang masih di luar (belum dikembalikan)
func (r *dashboardRepository) CountAlatDipinjam() (int64, error) {
	var total struct{ Jumlah int64 }
	err := r.db.Model(&model.PeminjamanAlat{}).
		Select("COALESCE(SUM(jumlah), 0) as jumlah").
		Where("dikembalikan = ?", false).
		Scan(&total).Error
	return total.Jumlah, err
}
