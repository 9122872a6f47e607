package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/reservation-app/models"
	"gorm.io/gorm"
)

// ScheduleService menjawab "restoran buka atau tidak" dari jam operasional
// reguler plus override hari libur.
type ScheduleService struct {
	DB *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{DB: db}
}

type OpenStatus struct {
	IsOpen bool   `json:"is_open"`
	Reason string `json:"reason"`
	Hours  string `json:"hours,omitempty"`
}

// IsOpenAt mengecek apakah restoran buka pada tanggal+jam tertentu.
// Hari libur menang atas jam reguler. Jika belum ada data jam operasional
// untuk hari itu, dianggap buka (belum dikonfigurasi bukan berarti tutup).
func (ss *ScheduleService) IsOpenAt(date time.Time, clock string) (*OpenStatus, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	var holiday models.Holiday
	err := ss.DB.Where("date = ?", day).First(&holiday).Error
	if err == nil {
		if holiday.IsClosed {
			return &OpenStatus{IsOpen: false, Reason: fmt.Sprintf("Closed for %s", holiday.Name)}, nil
		}
		if holiday.SpecialHours != nil {
			open, close, ok := splitHours(*holiday.SpecialHours)
			if ok {
				within := open <= clock && clock <= close
				return &OpenStatus{
					IsOpen: within,
					Reason: fmt.Sprintf("Special hours for %s", holiday.Name),
					Hours:  *holiday.SpecialHours,
				}, nil
			}
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 0=Senin .. 6=Minggu; Go pakai 0=Minggu sehingga perlu digeser
	dayOfWeek := (int(date.Weekday()) + 6) % 7

	var hours models.OperatingHours
	err = ss.DB.Where("day_of_week = ?", dayOfWeek).First(&hours).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &OpenStatus{IsOpen: true, Reason: "No operating hours configured"}, nil
	}
	if err != nil {
		return nil, err
	}
	if !hours.IsOpen {
		return &OpenStatus{IsOpen: false, Reason: "Closed today"}, nil
	}

	within := hours.OpenTime <= clock && clock <= hours.CloseTime
	reason := "Regular hours"
	if !within {
		reason = "Outside operating hours"
	}
	return &OpenStatus{
		IsOpen: within,
		Reason: reason,
		Hours:  hours.OpenTime + " - " + hours.CloseTime,
	}, nil
}

// IsOpenNow adalah IsOpenAt untuk waktu sekarang.
func (ss *ScheduleService) IsOpenNow() (*OpenStatus, error) {
	now := time.Now()
	return ss.IsOpenAt(now, now.Format("15:04"))
}

// splitHours memecah "HH:MM-HH:MM" menjadi jam buka/tutup.
func splitHours(raw string) (string, string, bool) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	open := strings.TrimSpace(parts[0])
	close := strings.TrimSpace(parts[1])
	if !models.ValidClockTime(open) || !models.ValidClockTime(close) {
		return "", "", false
	}
	return open, close, true
}
