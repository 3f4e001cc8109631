package usecase

import (
	"fmt"
	"time"

	"fieldops-backend/internal/model"
)

// ValidationError menandai input yang ditolak sebelum ada satupun tulisan ke
// database. Handler memetakannya ke HTTP 400.
type ValidationError struct {
	Pesan string
}

func (e *ValidationError) Error() string {
	return e.Pesan
}

func tolak(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Pesan: fmt.Sprintf(format, args...)}
}

type FotoBukti struct {
	FotoURL  string                 `json:"foto_url"`
	TakenAt  *time.Time             `json:"taken_at"`
	Metadata map[string]interface{} `json:"metadata"`
}

type PasanganBukti struct {
	PairKey   *string   `json:"pair_key"`
	Judul     *string   `json:"judul"`
	Deskripsi *string   `json:"deskripsi"`
	Before    FotoBukti `json:"before"`
	After     FotoBukti `json:"after"`
}

type FotoAlat struct {
	AlatID  uint   `json:"alat_id"`
	FotoURL string `json:"foto_url"`
}

// LaporanRequest adalah payload mentah kiriman teknisi.
type LaporanRequest struct {
	TanggalLaporan   string          `json:"tanggal_laporan"`
	StatusProgres    string          `json:"status_progres"`
	Persentase       *float64        `json:"persentase_progres"`
	FotoURL          string          `json:"foto_url"`
	Catatan          *string         `json:"catatan"`
	Latitude         *float64        `json:"latitude"`
	Longitude        *float64        `json:"longitude"`
	ReturnTools      bool            `json:"return_tools"`
	Pairs            []PasanganBukti `json:"pairs"`
	ToolPhotos       []FotoAlat      `json:"tool_photos"`
	ReturnToolPhotos []FotoAlat      `json:"return_tool_photos"`
}

// Rentang persentase yang diizinkan per status progres.
var rentangPersentase = map[string][2]int{
	model.StatusMenunggu:      {0, 10},
	model.StatusDikerjakan:    {11, 75},
	model.StatusHampirSelesai: {76, 99},
	model.StatusSelesai:       {100, 100},
}

const maksPasanganBukti = 5

// ValidasiLaporan menjalankan aturan bisnis submit laporan secara berurutan;
// pelanggaran pertama langsung menghentikan pemeriksaan. Aturan yang butuh
// status "laporan pertama" dicek terpisah di ValidasiFotoPengambilan karena
// baru diketahui setelah lookup laporan sebelumnya.
func ValidasiLaporan(req *LaporanRequest) *ValidationError {
	rentang, ok := rentangPersentase[req.StatusProgres]
	if !ok {
		return tolak("Status progres tidak valid")
	}

	if req.FotoURL == "" {
		return tolak("Foto bukti pekerjaan wajib diisi")
	}

	if req.Persentase != nil {
		p := *req.Persentase
		if p < float64(rentang[0]) || p > float64(rentang[1]) {
			if req.StatusProgres == model.StatusSelesai {
				return tolak("Persentase untuk status Selesai harus 100")
			}
			return tolak("Persentase untuk status %s harus di antara %d-%d", req.StatusProgres, rentang[0], rentang[1])
		}
	}

	if req.StatusProgres == model.StatusSelesai && len(req.Pairs) == 0 {
		return tolak("Minimal satu pasang bukti foto (sebelum/sesudah) wajib dilampirkan untuk laporan akhir")
	}

	if len(req.Pairs) > maksPasanganBukti {
		return tolak("Maksimal %d pasang bukti foto per laporan", maksPasanganBukti)
	}

	for i, pair := range req.Pairs {
		if pair.Before.FotoURL == "" || pair.After.FotoURL == "" {
			return tolak("Bukti foto ke-%d tidak lengkap: foto sebelum dan sesudah wajib diisi", i+1)
		}
	}

	if req.StatusProgres == model.StatusSelesai && req.ReturnTools {
		for _, foto := range req.ReturnToolPhotos {
			if foto.AlatID == 0 || foto.FotoURL == "" {
				return tolak("Data foto pengembalian alat tidak lengkap")
			}
		}
	}

	if req.TanggalLaporan != "" {
		if _, err := time.Parse("2006-01-02", req.TanggalLaporan); err != nil {
			return tolak("Format tanggal laporan tidak valid (gunakan YYYY-MM-DD)")
		}
	}

	return nil
}

// ValidasiFotoPengambilan dipakai hanya pada laporan pertama, saat teknisi
// melampirkan foto pengambilan alat.
func ValidasiFotoPengambilan(fotos []FotoAlat) *ValidationError {
	for _, foto := range fotos {
		if foto.AlatID == 0 || foto.FotoURL == "" {
			return tolak("Data foto pengambilan alat tidak lengkap")
		}
	}
	return nil
}
