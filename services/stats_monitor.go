package services

import (
	"time"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/notifier"
	"github.com/yeremiapane/reservation-app/utils"
	"gorm.io/gorm"
)

// FloorSnapshot adalah ringkasan kondisi lantai untuk dashboard staf.
type FloorSnapshot struct {
	TablesFree     int64 `json:"tables_free"`
	TablesOccupied int64 `json:"tables_occupied"`
	QueuedToday    int64 `json:"queued_today"`
	SeatedToday    int64 `json:"seated_today"`
	Waiting        int64 `json:"waiting"`
	Called         int64 `json:"called"`
}

// StatsMonitor mem-polling ringkasan kondisi lantai dan menyiarkan
// dashboard_update ke hub websocket setiap kali ada perubahan.
type StatsMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration

	last *FloorSnapshot
}

func NewStatsMonitor(db *gorm.DB) *StatsMonitor {
	return &StatsMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (sm *StatsMonitor) Start() {
	go func() {
		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sm.checkChanges()
			case <-sm.StopChan:
				return
			}
		}
	}()
}

func (sm *StatsMonitor) Stop() {
	close(sm.StopChan)
}

func (sm *StatsMonitor) checkChanges() {
	snapshot, err := sm.Snapshot()
	if err != nil {
		utils.ErrorLogger.Printf("Error building floor snapshot: %v", err)
		return
	}
	if sm.last != nil && *sm.last == *snapshot {
		return
	}
	sm.last = snapshot
	notifier.BroadcastDashboardUpdate(snapshot)
}

// Snapshot menghitung ringkasan kondisi lantai saat ini.
func (sm *StatsMonitor) Snapshot() (*FloorSnapshot, error) {
	var snapshot FloorSnapshot
	today := time.Now().Format("2006-01-02")

	queries := []struct {
		dest  *int64
		model interface{}
		where string
		args  []interface{}
	}{
		{&snapshot.TablesFree, &models.Table{}, "is_occupied = ?", []interface{}{false}},
		{&snapshot.TablesOccupied, &models.Table{}, "is_occupied = ?", []interface{}{true}},
		{&snapshot.QueuedToday, &models.Reservation{}, "status = ? AND DATE(created_at) = ?", []interface{}{models.ReservationQueued, today}},
		{&snapshot.SeatedToday, &models.Reservation{}, "status = ? AND DATE(created_at) = ?", []interface{}{models.ReservationSeated, today}},
		{&snapshot.Waiting, &models.WaitlistEntry{}, "status = ?", []interface{}{models.WaitlistWaiting}},
		{&snapshot.Called, &models.WaitlistEntry{}, "status = ?", []interface{}{models.WaitlistCalled}},
	}
	for _, q := range queries {
		if err := sm.DB.Model(q.model).Where(q.where, q.args...).Count(q.dest).Error; err != nil {
			return nil, err
		}
	}
	return &snapshot, nil
}
