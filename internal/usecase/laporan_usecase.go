package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"fieldops-backend/internal/model"
	"fieldops-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPenugasanTidakDitemukan = errors.New("penugasan tidak ditemukan")
	ErrBukanTeknisiPenugasan   = errors.New("teknisi tidak terdaftar pada penugasan")
)

// PengirimEmail adalah kanal samping opsional untuk meneruskan notifikasi ke
// email pengawas. Kegagalannya tidak pernah menggagalkan request.
type PengirimEmail interface {
	Kirim(tujuan string, subjek string, isi string) error
}

type LaporanUsecase struct {
	laporanRepo    repository.LaporanRepository
	penugasanRepo  repository.PenugasanRepository
	alatRepo       repository.AlatRepository
	notifikasiRepo repository.NotifikasiRepository
	userRepo       repository.UserRepository
	mailer         PengirimEmail
}

func NewLaporanUsecase(
	laporanRepo repository.LaporanRepository,
	penugasanRepo repository.PenugasanRepository,
	alatRepo repository.AlatRepository,
	notifikasiRepo repository.NotifikasiRepository,
	userRepo repository.UserRepository,
	mailer PengirimEmail,
) *LaporanUsecase {
	return &LaporanUsecase{
		laporanRepo:    laporanRepo,
		penugasanRepo:  penugasanRepo,
		alatRepo:       alatRepo,
		notifikasiRepo: notifikasiRepo,
		userRepo:       userRepo,
		mailer:         mailer,
	}
}

// HasilLaporan adalah ringkasan yang dikembalikan ke teknisi setelah submit.
type HasilLaporan struct {
	Laporan          *model.LaporanProgres
	Warning          *string
	TotalLaporan     int64
	Locked           bool
	AlatDikembalikan int
	JumlahBukti      int
}

// hasil per-peminjaman pada loop pengembalian otomatis (best effort)
type hasilPengembalian struct {
	PeminjamanID uint
	AlatID       uint
	Jumlah       int
	Err          error
}

// SubmitLaporan menjalankan seluruh alur pengiriman laporan progres secara
// berurutan: validasi, otorisasi, simpan laporan, deteksi keterlambatan,
// siklus alat, bukti foto, notifikasi, lalu hitung total.
func (u *LaporanUsecase) SubmitLaporan(penugasanID uint, teknisiID uint, req *LaporanRequest) (*HasilLaporan, error) {
	if verr := ValidasiLaporan(req); verr != nil {
		return nil, verr
	}

	penugasan, err := u.penugasanRepo.FindByID(penugasanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPenugasanTidakDitemukan
		}
		return nil, fmt.Errorf("gagal mengambil data penugasan: %w", err)
	}

	assigned, err := u.penugasanRepo.IsTeknisiAssigned(penugasanID, teknisiID)
	if err != nil {
		return nil, fmt.Errorf("gagal memeriksa penugasan teknisi: %w", err)
	}
	if !assigned {
		return nil, ErrBukanTeknisiPenugasan
	}

	// Satu lookup laporan terakhir dipakai dua hal sekaligus: penanda
	// "laporan pertama" dan pembanding tanggal untuk deteksi keterlambatan.
	terakhir, err := u.laporanRepo.GetTerakhir(penugasanID)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil laporan terakhir: %w", err)
	}
	laporanPertama := terakhir == nil

	if laporanPertama && len(req.ToolPhotos) > 0 {
		if verr := ValidasiFotoPengambilan(req.ToolPhotos); verr != nil {
			return nil, verr
		}
	}

	tanggal := req.TanggalLaporan
	if tanggal == "" {
		tanggal = time.Now().Format("2006-01-02")
	}

	laporan := model.LaporanProgres{
		PenugasanID:    penugasanID,
		TeknisiID:      teknisiID,
		TanggalLaporan: tanggal,
		StatusProgres:  req.StatusProgres,
		FotoURL:        req.FotoURL,
		Catatan:        req.Catatan,
	}
	if req.Persentase != nil {
		p := int(*req.Persentase)
		laporan.Persentase = &p
	}
	if req.Latitude != nil && req.Longitude != nil {
		titik := fmt.Sprintf("POINT(%v %v)", *req.Longitude, *req.Latitude)
		laporan.Lokasi = &titik
	}

	if err := u.laporanRepo.Create(&laporan); err != nil {
		return nil, fmt.Errorf("gagal menyimpan laporan: %w", err)
	}

	warning := deteksiKeterlambatan(terakhir, tanggal, penugasan.FrekuensiLaporan)

	if laporanPertama {
		for _, foto := range req.ToolPhotos {
			if err := u.alatRepo.SetFotoPengambilan(penugasanID, foto.AlatID, foto.FotoURL); err != nil {
				return nil, fmt.Errorf("gagal menyimpan foto pengambilan alat %d: %w", foto.AlatID, err)
			}
		}
	}

	alatDikembalikan := 0
	finalisasi := req.StatusProgres == model.StatusSelesai
	if finalisasi && req.ReturnTools {
		alatDikembalikan = u.kembalikanSemuaAlat(penugasanID, req)
	}

	jumlahBukti := 0
	if len(req.Pairs) > 0 {
		bukti := susunBukti(laporan.ID, teknisiID, req.Pairs)
		if err := u.laporanRepo.CreateBuktiBatch(bukti); err != nil {
			return nil, fmt.Errorf("gagal menyimpan bukti laporan: %w", err)
		}
		jumlahBukti = len(bukti)
	}

	u.kirimNotifikasi(penugasan, teknisiID, finalisasi)

	total, err := u.laporanRepo.CountByPenugasan(penugasanID)
	if err != nil {
		return nil, fmt.Errorf("gagal menghitung total laporan: %w", err)
	}

	return &HasilLaporan{
		Laporan:          &laporan,
		Warning:          warning,
		TotalLaporan:     total,
		Locked:           finalisasi,
		AlatDikembalikan: alatDikembalikan,
		JumlahBukti:      jumlahBukti,
	}, nil
}

// deteksiKeterlambatan membandingkan tanggal laporan baru dengan laporan
// sebelumnya terhadap frekuensi pelaporan penugasan. Murni peringatan,
// tidak pernah memblokir. Laporan pertama tidak menghasilkan peringatan.
func deteksiKeterlambatan(terakhir *model.LaporanProgres, tanggalBaru string, frekuensi string) *string {
	if terakhir == nil {
		return nil
	}

	sebelumnya, errPrev := time.Parse("2006-01-02", terakhir.TanggalLaporan)
	baru, errBaru := time.Parse("2006-01-02", tanggalBaru)
	if errPrev != nil || errBaru != nil {
		return nil
	}

	interval := 1
	if strings.EqualFold(frekuensi, "Mingguan") {
		interval = 7
	}

	selisih := int(math.Ceil(baru.Sub(sebelumnya).Hours() / 24))
	if selisih <= interval {
		return nil
	}

	telat := selisih - interval
	pesan := fmt.Sprintf("Laporan terlambat %d hari dari jadwal frekuensi %s", telat, strings.ToLower(frekuensi))
	return &pesan
}

// kembalikanSemuaAlat menutup semua peminjaman aktif penugasan. Berbeda dengan
// foto pengambilan, loop ini best-effort: satu baris gagal dicatat di log lalu
// dilewati, sisanya tetap diproses.
func (u *LaporanUsecase) kembalikanSemuaAlat(penugasanID uint, req *LaporanRequest) int {
	aktif, err := u.alatRepo.GetPeminjamanAktif(penugasanID)
	if err != nil {
		log.Printf("pengembalian alat penugasan %d: gagal mengambil peminjaman aktif: %v", penugasanID, err)
		return 0
	}

	fotoPerAlat := make(map[uint]string, len(req.ReturnToolPhotos))
	for _, foto := range req.ReturnToolPhotos {
		fotoPerAlat[foto.AlatID] = foto.FotoURL
	}

	waktu := time.Now()
	hasil := make([]hasilPengembalian, 0, len(aktif))
	for _, pinjam := range aktif {
		foto, ada := fotoPerAlat[pinjam.AlatID]
		if !ada {
			// fallback: pakai foto utama laporan sebagai bukti pengembalian
			foto = req.FotoURL
		}

		item := hasilPengembalian{PeminjamanID: pinjam.ID, AlatID: pinjam.AlatID, Jumlah: pinjam.Jumlah}
		if err := u.alatRepo.TandaiDikembalikan(pinjam.ID, foto, waktu); err != nil {
			item.Err = err
			hasil = append(hasil, item)
			continue
		}

		// Flag dikembalikan sudah final; kegagalan restock hanya dicatat.
		if err := u.alatRepo.TambahStokTersedia(pinjam.AlatID, pinjam.Jumlah); err != nil {
			log.Printf("pengembalian alat penugasan %d: gagal menambah stok alat %d: %v", penugasanID, pinjam.AlatID, err)
		}
		hasil = append(hasil, item)
	}

	totalUnit := 0
	for _, item := range hasil {
		if item.Err != nil {
			log.Printf("pengembalian alat penugasan %d: peminjaman %d (alat %d) dilewati: %v",
				penugasanID, item.PeminjamanID, item.AlatID, item.Err)
			continue
		}
		totalUnit += item.Jumlah
	}
	return totalUnit
}

func susunBukti(laporanID uint, teknisiID uint, pairs []PasanganBukti) []model.BuktiLaporan {
	bukti := make([]model.BuktiLaporan, 0, len(pairs))
	for _, pair := range pairs {
		pairKey := uuid.NewString()
		if pair.PairKey != nil && *pair.PairKey != "" {
			pairKey = *pair.PairKey
		}

		diambil := time.Now()
		if pair.Before.TakenAt != nil {
			diambil = *pair.Before.TakenAt
		} else if pair.After.TakenAt != nil {
			diambil = *pair.After.TakenAt
		}

		row := model.BuktiLaporan{
			LaporanID:     laporanID,
			PairKey:       pairKey,
			Judul:         pair.Judul,
			Deskripsi:     pair.Deskripsi,
			FotoBeforeURL: pair.Before.FotoURL,
			FotoAfterURL:  pair.After.FotoURL,
			DiambilPada:   diambil,
			DiunggahOleh:  teknisiID,
		}

		if pair.Before.Metadata != nil || pair.After.Metadata != nil {
			blob, err := json.Marshal(map[string]interface{}{
				"before": pair.Before.Metadata,
				"after":  pair.After.Metadata,
			})
			if err == nil {
				row.Metadata = datatypes.JSON(blob)
			}
		}

		bukti = append(bukti, row)
	}
	return bukti
}

// kirimNotifikasi membuat notifikasi untuk pengawas plus jejak log aktivitas.
// Keduanya best-effort: error hanya dicatat, tidak diteruskan ke pemanggil.
func (u *LaporanUsecase) kirimNotifikasi(penugasan *model.Penugasan, teknisiID uint, finalisasi bool) {
	namaTeknisi := "Teknisi"
	if teknisi, err := u.userRepo.FindByID(teknisiID); err == nil {
		namaTeknisi = teknisi.Nama
	}

	judul := "Laporan progres baru"
	pesan := fmt.Sprintf("%s mengirim laporan progres untuk penugasan \"%s\"", namaTeknisi, penugasan.Judul)
	aksi := "KIRIM_LAPORAN"
	if finalisasi {
		judul = "Laporan akhir diterima"
		pesan = fmt.Sprintf("%s mengirim laporan akhir untuk penugasan \"%s\"", namaTeknisi, penugasan.Judul)
		aksi = "KIRIM_LAPORAN_AKHIR"
	}

	notif := model.Notifikasi{
		UserID: penugasan.PengawasID,
		Judul:  judul,
		Pesan:  pesan,
	}
	if err := u.notifikasiRepo.Create(&notif); err != nil {
		log.Printf("notifikasi penugasan %d: gagal membuat notifikasi: %v", penugasan.ID, err)
	}

	entry := model.LogAktivitas{
		UserID: teknisiID,
		Aksi:   aksi,
		Detail: pesan,
	}
	if err := u.notifikasiRepo.CreateLog(&entry); err != nil {
		log.Printf("notifikasi penugasan %d: gagal mencatat log aktivitas: %v", penugasan.ID, err)
	}

	if u.mailer != nil && penugasan.Pengawas.Email != "" {
		if err := u.mailer.Kirim(penugasan.Pengawas.Email, judul, pesan); err != nil {
			log.Printf("notifikasi penugasan %d: gagal mengirim email: %v", penugasan.ID, err)
		}
	}
}
