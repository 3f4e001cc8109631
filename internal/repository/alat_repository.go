package repository

import (
	"fmt"
	"time"

	"fieldops-backend/internal/model"

	"gorm.io/gorm"
)

type AlatRepository interface {
	Create(alat *model.Alat) error
	FindByID(id uint) (*model.Alat, error)
	GetAll() ([]model.Alat, error)
	Update(alat *model.Alat) error
	Delete(id uint) error

	CreatePeminjaman(peminjaman *model.PeminjamanAlat) error
	GetPeminjamanByPenugasan(penugasanID uint) ([]model.PeminjamanAlat, error)
	GetPeminjamanAktif(penugasanID uint) ([]model.PeminjamanAlat, error)
	SetFotoPengambilan(penugasanID uint, alatID uint, fotoURL string) error
	TandaiDikembalikan(peminjamanID uint, fotoURL string, waktu time.Time) error
	TambahStokTersedia(alatID uint, jumlah int) error
	KurangiStokTersedia(alatID uint, jumlah int) error
}

type alatRepository struct {
	db *gorm.DB
}

func NewAlatRepository(db *gorm.DB) AlatRepository {
	return &alatRepository{db}
}

func (r *alatRepository) Create(alat *model.Alat) error {
	return r.db.Create(alat).Error
}

func (r *alatRepository) FindByID(id uint) (*model.Alat, error) {
	var alat model.Alat
	err := r.db.First(&alat, id).Error
	if err != nil {
		return nil, err
	}
	return &alat, nil
}

func (r *alatRepository) GetAll() ([]model.Alat, error) {
	var list []model.Alat
	err := r.db.Order("nama asc").Find(&list).Error
	return list, err
}

func (r *alatRepository) Update(alat *model.Alat) error {
	return r.db.Save(alat).Error
}

func (r *alatRepository) Delete(id uint) error {
	return r.db.Delete(&model.Alat{}, id).Error
}

func (r *alatRepository) CreatePeminjaman(peminjaman *model.PeminjamanAlat) error {
	return r.db.Create(peminjaman).Error
}

func (r *alatRepository) GetPeminjamanByPenugasan(penugasanID uint) ([]model.PeminjamanAlat, error) {
	var list []model.PeminjamanAlat
	err := r.db.Preload("Alat").Where("penugasan_id = ?", penugasanID).Find(&list).Error
	return list, err
}

func (r *alatRepository) GetPeminjamanAktif(penugasanID uint) ([]model.PeminjamanAlat, error) {
	var list []model.PeminjamanAlat
	err := r.db.Where("penugasan_id = ? AND dikembalikan = ?", penugasanID, false).Find(&list).Error
	return list, err
}

func (r *alatRepository) SetFotoPengambilan(penugasanID uint, alatID uint, fotoURL string) error {
	return r.db.Model(&model.PeminjamanAlat{}).
		Where("penugasan_id = ? AND alat_id = ? AND dikembalikan = ?", penugasanID, alatID, false).
		Update("foto_pengambilan_url", fotoURL).Error
}

func (r *alatRepository) TandaiDikembalikan(peminjamanID uint, fotoURL string, waktu time.Time) error {
	return r.db.Model(&model.PeminjamanAlat{}).Where("id = ?", peminjamanID).
		Updates(map[string]interface{}{
			"dikembalikan":          true,
			"foto_pengembalian_url": fotoURL,
			"dikembalikan_pada":     waktu,
		}).Error
}

// TambahStokTersedia menaikkan stok langsung di database (bukan read-then-write)
// supaya pengembalian bersamaan tidak saling menimpa.
func (r *alatRepository) TambahStokTersedia(alatID uint, jumlah int) error {
	return r.db.Model(&model.Alat{}).Where("id = ?", alatID).
		Update("stok_tersedia", gorm.Expr("stok_tersedia + ?", jumlah)).Error
}

// KurangiStokTersedia gagal jika sisa stok tidak mencukupi.
func (r *alatRepository) KurangiStokTersedia(alatID uint, jumlah int) error {
	res := r.db.Model(&model.Alat{}).
		Where("id = ? AND stok_tersedia >= ?", alatID, jumlah).
		Update("stok_tersedia", gorm.Expr("stok_tersedia - ?", jumlah))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("stok alat %d tidak mencukupi", alatID)
	}
	return nil
}
