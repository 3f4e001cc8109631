package usecase

import (
	"errors"
	"testing"
	"time"

	"fieldops-backend/internal/model"
	"fieldops-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- fakes ---------------------------------------------------------------
// Interface di-embed supaya hanya method yang dipanggil yang perlu ditulis;
// method lain panic kalau tersentuh, itu sinyal test salah jalur.

type fakePenugasanRepo struct {
	repository.PenugasanRepository
	penugasan *model.Penugasan
	assigned  bool
}

func (f *fakePenugasanRepo) FindByID(id uint) (*model.Penugasan, error) {
	if f.penugasan == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.penugasan, nil
}

func (f *fakePenugasanRepo) IsTeknisiAssigned(penugasanID uint, teknisiID uint) (bool, error) {
	return f.assigned, nil
}

type fakeLaporanRepo struct {
	repository.LaporanRepository
	terakhir  *model.LaporanProgres
	created   []model.LaporanProgres
	bukti     []model.BuktiLaporan
	errCreate error
	errBukti  error
}

func (f *fakeLaporanRepo) Create(laporan *model.LaporanProgres) error {
	if f.errCreate != nil {
		return f.errCreate
	}
	laporan.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *laporan)
	return nil
}

func (f *fakeLaporanRepo) GetTerakhir(penugasanID uint) (*model.LaporanProgres, error) {
	return f.terakhir, nil
}

func (f *fakeLaporanRepo) CountByPenugasan(penugasanID uint) (int64, error) {
	prior := int64(0)
	if f.terakhir != nil {
		prior = 1
	}
	return prior + int64(len(f.created)), nil
}

func (f *fakeLaporanRepo) CreateBuktiBatch(bukti []model.BuktiLaporan) error {
	if f.errBukti != nil {
		return f.errBukti
	}
	f.bukti = append(f.bukti, bukti...)
	return nil
}

type pengembalianTercatat struct {
	peminjamanID uint
	fotoURL      string
}

type fakeAlatRepo struct {
	repository.AlatRepository
	aktif        []model.PeminjamanAlat
	pengambilan  map[uint]string
	dikembalikan []pengembalianTercatat
	restock      map[uint]int
	errSetFoto   error
	errTandai    map[uint]error
	errRestock   map[uint]error
}

func newFakeAlatRepo() *fakeAlatRepo {
	return &fakeAlatRepo{
		pengambilan: make(map[uint]string),
		restock:     make(map[uint]int),
		errTandai:   make(map[uint]error),
		errRestock:  make(map[uint]error),
	}
}

func (f *fakeAlatRepo) SetFotoPengambilan(penugasanID uint, alatID uint, fotoURL string) error {
	if f.errSetFoto != nil {
		return f.errSetFoto
	}
	f.pengambilan[alatID] = fotoURL
	return nil
}

func (f *fakeAlatRepo) GetPeminjamanAktif(penugasanID uint) ([]model.PeminjamanAlat, error) {
	return f.aktif, nil
}

func (f *fakeAlatRepo) TandaiDikembalikan(peminjamanID uint, fotoURL string, waktu time.Time) error {
	if err := f.errTandai[peminjamanID]; err != nil {
		return err
	}
	f.dikembalikan = append(f.dikembalikan, pengembalianTercatat{peminjamanID: peminjamanID, fotoURL: fotoURL})
	return nil
}

func (f *fakeAlatRepo) TambahStokTersedia(alatID uint, jumlah int) error {
	if err := f.errRestock[alatID]; err != nil {
		return err
	}
	f.restock[alatID] += jumlah
	return nil
}

type fakeNotifikasiRepo struct {
	repository.NotifikasiRepository
	notifikasi []model.Notifikasi
	logs       []model.LogAktivitas
	errNotif   error
}

func (f *fakeNotifikasiRepo) Create(n *model.Notifikasi) error {
	if f.errNotif != nil {
		return f.errNotif
	}
	f.notifikasi = append(f.notifikasi, *n)
	return nil
}

func (f *fakeNotifikasiRepo) CreateLog(entry *model.LogAktivitas) error {
	f.logs = append(f.logs, *entry)
	return nil
}

type fakeUserRepo struct {
	repository.UserRepository
}

func (f *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	return &model.User{Nama: "Budi Teknisi", Role: "TEKNISI"}, nil
}

// --- rakitan -------------------------------------------------------------

type rakitan struct {
	uc         *LaporanUsecase
	laporan    *fakeLaporanRepo
	penugasan  *fakePenugasanRepo
	alat       *fakeAlatRepo
	notifikasi *fakeNotifikasiRepo
}

func rakitUsecase() *rakitan {
	penugasan := &fakePenugasanRepo{
		penugasan: &model.Penugasan{
			Judul:            "Instalasi jaringan kantor cabang",
			FrekuensiLaporan: "Harian",
			PengawasID:       7,
		},
		assigned: true,
	}
	penugasan.penugasan.ID = 1

	laporan := &fakeLaporanRepo{}
	alat := newFakeAlatRepo()
	notifikasi := &fakeNotifikasiRepo{}

	uc := NewLaporanUsecase(laporan, penugasan, alat, notifikasi, &fakeUserRepo{}, nil)
	return &rakitan{uc: uc, laporan: laporan, penugasan: penugasan, alat: alat, notifikasi: notifikasi}
}

func laporanKemarin(tanggal string) *model.LaporanProgres {
	prev := model.LaporanProgres{
		PenugasanID:    1,
		TeknisiID:      2,
		TanggalLaporan: tanggal,
		StatusProgres:  model.StatusMenunggu,
		FotoURL:        "/uploads/laporan/awal.jpg",
	}
	prev.ID = 99
	return &prev
}

// --- tests ---------------------------------------------------------------

func TestSubmitLaporanPenugasanTidakDitemukan(t *testing.T) {
	r := rakitUsecase()
	r.penugasan.penugasan = nil

	_, err := r.uc.SubmitLaporan(1, 2, laporanValid())
	assert.ErrorIs(t, err, ErrPenugasanTidakDitemukan)
}

func TestSubmitLaporanTeknisiTidakTerdaftar(t *testing.T) {
	r := rakitUsecase()
	r.penugasan.assigned = false

	_, err := r.uc.SubmitLaporan(1, 2, laporanValid())
	assert.ErrorIs(t, err, ErrBukanTeknisiPenugasan)
	assert.Empty(t, r.laporan.created, "tidak boleh ada laporan tersimpan")
}

func TestSubmitLaporanValidasiMenolakSebelumTulis(t *testing.T) {
	r := rakitUsecase()
	req := laporanValid()
	req.FotoURL = ""

	_, err := r.uc.SubmitLaporan(1, 2, req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, r.laporan.created)
}

func TestSubmitLaporanPertamaBerhasil(t *testing.T) {
	r := rakitUsecase()
	req := laporanValid()
	req.TanggalLaporan = "2026-01-05"
	catatan := "Penarikan kabel selesai separuh"
	req.Catatan = &catatan
	lat, lng := -0.9416, 100.37
	req.Latitude = &lat
	req.Longitude = &lng

	hasil, err := r.uc.SubmitLaporan(1, 2, req)
	require.NoError(t, err)

	require.Len(t, r.laporan.created, 1)
	row := r.laporan.created[0]
	assert.Equal(t, uint(1), row.PenugasanID)
	assert.Equal(t, uint(2), row.TeknisiID)
	assert.Equal(t, "2026-01-05", row.TanggalLaporan)
	require.NotNil(t, row.Persentase)
	assert.Equal(t, 40, *row.Persentase)
	require.NotNil(t, row.Lokasi)
	assert.Equal(t, "POINT(100.37 -0.9416)", *row.Lokasi)

	assert.Nil(t, hasil.Warning, "laporan pertama tidak menghasilkan peringatan")
	assert.Equal(t, int64(1), hasil.TotalLaporan)
	assert.False(t, hasil.Locked)
	assert.Equal(t, 0, hasil.AlatDikembalikan)
}

func TestSubmitLaporanTanpaKoordinatLokasiKosong(t *testing.T) {
	r := rakitUsecase()
	req := laporanValid()
	lat := -0.9416
	req.Latitude = &lat // longitude tidak dikirim

	_, err := r.uc.SubmitLaporan(1, 2, req)
	require.NoError(t, err)
	assert.Nil(t, r.laporan.created[0].Lokasi)
}

func TestSubmitLaporanFotoPengambilanLaporanPertama(t *testing.T) {
	r := rakitUsecase()
	req := laporanValid()
	req.ToolPhotos = []FotoAlat{
		{AlatID: 11, FotoURL: "/uploads/laporan/ambil-11.jpg"},
		{AlatID: 12, FotoURL: "/uploads/laporan/ambil-12.jpg"},
	}

	_, err := r.uc.SubmitLaporan(1, 2, req)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/laporan/ambil-11.jpg", r.alat.pengambilan[11])
	assert.Equal(t, "/uploads/laporan/ambil-12.jpg", r.alat.pengambilan[12])
}

func TestSubmitLaporanFotoPengambilanTidakLengkapDitolakUtuh(t *testing.T) {
	r := rakitUsecase()
	req := laporanValid()
	req.ToolPhotos = []FotoAlat{
		{AlatID: 11, FotoURL: "/uploads/laporan/ambil-11.jpg"},
		{AlatID: 12}, // foto_url hilang
	}

	_, err := r.uc.SubmitLaporan(1, 2, req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, r.laporan.created, "tidak ada laporan tersimpan")
	assert.Empty(t, r.alat.pengambilan, "tidak ada foto terpasang sebagian")
}

func TestSubmitLaporanFotoPengambilanGagalMembatalkan(t *testing.T) {
	r := rakitUsecase()
	r.alat.errSetFoto = errors.New("koneksi putus")
	req := laporanValid()
	req.ToolPhotos = []FotoAlat{{AlatID: 11, FotoURL: "/uploads/laporan/ambil-11.jpg"}}

	_, err := r.uc.SubmitLaporan(1, 2, req)
	require.Error(t, err)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr), "kegagalan update bukan error validasi")
}

func TestSubmitLaporanFotoPengambilanDiabaikanBukanLaporanPertama(t *testing.T) {
	r := rakitUsecase()
	r.laporan.terakhir = laporanKemarin("2026-01-05")
	req := laporanValid()
	req.TanggalLaporan = "2026-01-06"
	req.ToolPhotos = []FotoAlat{{AlatID: 11, FotoURL: "/uploads/laporan/ambil-11.jpg"}}

	_, err := r.uc.SubmitLaporan(1, 2, req)
	require.NoError(t, err)
	assert.Empty(t, r.alat.pengambilan, "foto pengambilan hanya untuk laporan pertama")
}

func finalisasiRequest() *LaporanRequest {
	req := laporanValid()
	req.StatusProgres = model.StatusSelesai
	req.Persentase = float64Ptr(100)
	req.Pairs = []PasanganBukti{pasanganLengkap()}
	req.ReturnTools = true
	return req
}

func TestSubmitLaporanPengembalianOtomatis(t *testing.T) {
	r := rakitUsecase()
	r.laporan.terakhir = laporanKemarin("2026-01-05")

	pinjam1 := model.PeminjamanAlat{PenugasanID: 1, AlatID: 11, Jumlah: 2}
	pinjam1.ID = 21
	pinjam2 := model.PeminjamanAlat{PenugasanID: 1, AlatID: 12, Jumlah: 1}
	pinjam2.ID = 22
	r.alat.aktif = []model.PeminjamanAlat{pinjam1, pinjam2}

	req := finalisasiRequest()
	req.TanggalLaporan = "2026-01-06"
	req.ReturnToolPhotos = []FotoAlat{{AlatID: 11, FotoURL: "/uploads/laporan/kembali-11.jpg"}}

	hasil, err := r.uc.SubmitLaporan(1, 2, req)
	require.NoError(t, err)

	require.Len(t, r.alat.dikembalikan, 2)
	assert.Equal(t, "/uploads/laporan/kembali-11.jpg", r.alat.dikembalikan[0].fotoURL,
		"foto pengembalian eksplisit dipakai apa adanya")
	assert.Equal(t, req.FotoURL, r.alat.dikembalikan[1].fotoURL,
		"tanpa foto eksplisit, foto utama laporan jadi fallback")

	assert.Equal(t, 2, r.alat.restock[11])
	assert.Equal(t, 1, r.alat.restock[12])
	assert.Equal(t, 3, hasil.AlatDikembalikan)
	assert.True(t, hasil.Locked)
}

func TestSubmitLaporanPengembalianSebagianGagalTetapLanjut(t *testing.T) {
	r := rakitUsecase()

	pinjam1 := model.PeminjamanAlat{PenugasanID: 1, AlatID: 11, Jumlah: 2}
	pinjam1.ID = 21
	pinjam2 := model.PeminjamanAlat{PenugasanID: 1, AlatID: 12, Jumlah: 4}
	pinjam2.ID = 22
	r.alat.aktif = []model.PeminjamanAlat{pinjam1, pinjam2}
	r.alat.errTandai[21] = errors.New("baris terkunci")

	hasil, err := r.uc.SubmitLaporan(1, 2, finalisasiRequest())
	require.NoError(t, err, "kegagalan satu baris tidak menggagalkan request")

	require.Len(t, r.alat.dikembalikan, 1)
	assert.Equal(t, uint(22), r.alat.dikembalikan[0].peminjamanID)
	assert.Equal(t, 4, hasil.AlatDikembalikan, "hanya unit yang benar-benar dikembalikan yang dihitung")
	assert.Zero(t, r.alat.restock[11], "peminjaman yang gagal tidak direstock")
}

func TestSubmitLaporanRestockGagalTidakMembatalkan(t *testing.T) {
	r := rakitUsecase()

	pinjam := model.PeminjamanAlat{PenugasanID: 1, AlatID: 11, Jumlah: 2}
	pinjam.ID = 21
	r.alat.aktif = []model.PeminjamanAlat{pinjam}
	r.alat.errRestock[11] = errors.New("deadlock")

	hasil, err := r.uc.SubmitLaporan(1, 2, finalisasiRequest())
	require.NoError(t, err)
	assert.Len(t, r.alat.dikembalikan, 1, "flag dikembalikan tetap final")
	assert.Equal(t, 2, hasil.AlatDikembalikan)
}

func TestSubmitLaporanTanpaOptInTidakMengembalikan(t *testing.T) {
	r := rakitUsecase()
	pinjam := model.PeminjamanAlat{PenugasanID: 1, AlatID: 11, Jumlah: 2}
	pinjam.ID = 21
	r.alat.aktif = []model.PeminjamanAlat{pinjam}

	req := finalisasiRequest()
	req.ReturnTools = false

	hasil, err := r.uc.SubmitLaporan(1, 2, req)
	require.NoError(t, err)
	assert.Empty(t, r.alat.dikembalikan)
	assert.Equal(t, 0, hasil.AlatDikembalikan)
	assert.True(t, hasil.Locked, "locked mengikuti status Selesai, bukan return_tools")
}

func TestSubmitLaporanBuktiTersimpanDenganDefault(t *testing.T) {
	r := rakitUsecase()
	taken := time.Date(2026, 1, 6, 9, 30, 0, 0, time.UTC)
	kunci := "pair-abc"
	judul := "Panel sebelum dan sesudah"

	req := laporanValid()
	req.Pairs = []PasanganBukti{
		{
			PairKey: &kunci,
			Judul:   &judul,
			Before:  FotoBukti{FotoURL: "/uploads/laporan/b1.jpg", TakenAt: &taken},
			After:   FotoBukti{FotoURL: "/uploads/laporan/a1.jpg"},
		},
		pasanganLengkap(), // tanpa pair key: harus digenerate
	}

	hasil, err := r.uc.SubmitLaporan(1, 2, req)
	require.NoError(t, err)
	assert.Equal(t, 2, hasil.JumlahBukti)

	require.Len(t, r.laporan.bukti, 2)
	pertama := r.laporan.bukti[0]
	assert.Equal(t, "pair-abc", pertama.PairKey)
	assert.Equal(t, taken, pertama.DiambilPada, "timestamp before diutamakan")
	assert.Equal(t, uint(2), pertama.DiunggahOleh)
	require.NotNil(t, pertama.Judul)
	assert.Equal(t, judul, *pertama.Judul)

	kedua := r.laporan.bukti[1]
	assert.NotEmpty(t, kedua.PairKey, "pair key digenerate jika kosong")
	assert.Nil(t, kedua.Judul)
	assert.Equal(t, r.laporan.created[0].ID, kedua.LaporanID)
}

func TestSubmitLaporanBuktiGagalMenjadiError(t *testing.T) {
	r := rakitUsecase()
	r.laporan.errBukti = errors.New("constraint")

	req := laporanValid()
	req.Pairs = []PasanganBukti{pasanganLengkap()}

	_, err := r.uc.SubmitLaporan(1, 2, req)
	require.Error(t, err)
}

func TestSubmitLaporanNotifikasiDanLog(t *testing.T) {
	r := rakitUsecase()

	_, err := r.uc.SubmitLaporan(1, 2, laporanValid())
	require.NoError(t, err)

	require.Len(t, r.notifikasi.notifikasi, 1)
	notif := r.notifikasi.notifikasi[0]
	assert.Equal(t, uint(7), notif.UserID, "notifikasi ke pengawas penugasan")
	assert.Contains(t, notif.Pesan, "laporan progres")
	assert.Contains(t, notif.Pesan, "Instalasi jaringan kantor cabang")

	require.Len(t, r.notifikasi.logs, 1)
	assert.Equal(t, "KIRIM_LAPORAN", r.notifikasi.logs[0].Aksi)
}

func TestSubmitLaporanAkhirNotifikasiBerbeda(t *testing.T) {
	r := rakitUsecase()

	_, err := r.uc.SubmitLaporan(1, 2, finalisasiRequest())
	require.NoError(t, err)

	require.Len(t, r.notifikasi.notifikasi, 1)
	assert.Contains(t, r.notifikasi.notifikasi[0].Pesan, "laporan akhir")
	assert.Equal(t, "KIRIM_LAPORAN_AKHIR", r.notifikasi.logs[0].Aksi)
}

func TestSubmitLaporanNotifikasiGagalTidakMenggagalkan(t *testing.T) {
	r := rakitUsecase()
	r.notifikasi.errNotif = errors.New("tabel penuh")

	hasil, err := r.uc.SubmitLaporan(1, 2, laporanValid())
	require.NoError(t, err)
	assert.NotNil(t, hasil)
}

func TestSubmitLaporanDeteksiKeterlambatan(t *testing.T) {
	cases := []struct {
		nama       string
		frekuensi  string
		sebelumnya string
		baru       string
		warning    string // substring yang diharapkan; kosong = tanpa warning
	}{
		{"harian tepat waktu", "Harian", "2026-01-05", "2026-01-06", ""},
		{"harian telat dua hari", "Harian", "2026-01-05", "2026-01-08", "2 hari"},
		{"mingguan tepat waktu", "Mingguan", "2026-01-05", "2026-01-12", ""},
		{"mingguan telat tiga hari", "Mingguan", "2026-01-05", "2026-01-15", "3 hari"},
	}

	for _, tc := range cases {
		t.Run(tc.nama, func(t *testing.T) {
			r := rakitUsecase()
			r.penugasan.penugasan.FrekuensiLaporan = tc.frekuensi
			r.laporan.terakhir = laporanKemarin(tc.sebelumnya)

			req := laporanValid()
			req.TanggalLaporan = tc.baru

			hasil, err := r.uc.SubmitLaporan(1, 2, req)
			require.NoError(t, err)

			if tc.warning == "" {
				assert.Nil(t, hasil.Warning)
			} else {
				require.NotNil(t, hasil.Warning)
				assert.Contains(t, *hasil.Warning, tc.warning)
			}
		})
	}
}

func TestSubmitLaporanTotalBertambahSatu(t *testing.T) {
	r := rakitUsecase()
	r.laporan.terakhir = laporanKemarin("2026-01-05")

	req := laporanValid()
	req.TanggalLaporan = "2026-01-06"

	hasil, err := r.uc.SubmitLaporan(1, 2, req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hasil.TotalLaporan, "total = laporan lama + 1")
}

func TestSubmitLaporanTidakIdempoten(t *testing.T) {
	// Kiriman identik dua kali memang membuat dua baris; tidak ada dedup.
	r := rakitUsecase()
	req := laporanValid()
	req.TanggalLaporan = "2026-01-06"

	_, err := r.uc.SubmitLaporan(1, 2, req)
	require.NoError(t, err)
	_, err = r.uc.SubmitLaporan(1, 2, req)
	require.NoError(t, err)

	assert.Len(t, r.laporan.created, 2)
}

func TestSubmitLaporanSkenarioLengkap(t *testing.T) {
	// Penugasan harian, laporan sebelumnya hari-0, kiriman hari-3,
	// Sedang Dikerjakan 40%, satu pasang bukti.
	r := rakitUsecase()
	r.laporan.terakhir = laporanKemarin("2026-01-05")

	req := laporanValid()
	req.TanggalLaporan = "2026-01-08"
	req.Pairs = []PasanganBukti{pasanganLengkap()}

	hasil, err := r.uc.SubmitLaporan(1, 2, req)
	require.NoError(t, err)

	require.NotNil(t, hasil.Warning)
	assert.Contains(t, *hasil.Warning, "2 hari")
	assert.False(t, hasil.Locked)
	assert.Equal(t, 1, hasil.JumlahBukti)
	assert.Equal(t, int64(2), hasil.TotalLaporan)
}
