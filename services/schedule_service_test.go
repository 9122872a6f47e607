package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
)

func TestIsOpenAtRegularHours(t *testing.T) {
	db := setupServiceDB(t)
	schedule := services.NewScheduleService(db)

	// 2026-09-07 adalah hari Senin (day_of_week 0)
	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	db.Create(&models.OperatingHours{DayOfWeek: 0, OpenTime: "10:00", CloseTime: "22:00", IsOpen: true})

	status, err := schedule.IsOpenAt(monday, "12:00")
	assert.NoError(t, err)
	assert.True(t, status.IsOpen)

	status, err = schedule.IsOpenAt(monday, "23:00")
	assert.NoError(t, err)
	assert.False(t, status.IsOpen)
	assert.Equal(t, "Outside operating hours", status.Reason)
}

func TestIsOpenAtClosedDay(t *testing.T) {
	db := setupServiceDB(t)
	schedule := services.NewScheduleService(db)

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	db.Create(&models.OperatingHours{DayOfWeek: 0, OpenTime: "10:00", CloseTime: "22:00", IsOpen: false})

	status, err := schedule.IsOpenAt(monday, "12:00")
	assert.NoError(t, err)
	assert.False(t, status.IsOpen)
}

func TestHolidayOverridesRegularHours(t *testing.T) {
	db := setupServiceDB(t)
	schedule := services.NewScheduleService(db)

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	db.Create(&models.OperatingHours{DayOfWeek: 0, OpenTime: "10:00", CloseTime: "22:00", IsOpen: true})
	db.Create(&models.Holiday{Name: "Renovasi", Date: monday, IsClosed: true})

	status, err := schedule.IsOpenAt(monday, "12:00")
	assert.NoError(t, err)
	assert.False(t, status.IsOpen)
}

func TestHolidaySpecialHours(t *testing.T) {
	db := setupServiceDB(t)
	schedule := services.NewScheduleService(db)

	day := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	special := "18:00-23:00"
	db.Create(&models.Holiday{Name: "Malam Tahun Baru", Date: day, IsClosed: false, SpecialHours: &special})

	status, err := schedule.IsOpenAt(day, "20:00")
	assert.NoError(t, err)
	assert.True(t, status.IsOpen)

	status, err = schedule.IsOpenAt(day, "12:00")
	assert.NoError(t, err)
	assert.False(t, status.IsOpen)
}

func TestNoConfiguredHoursMeansOpen(t *testing.T) {
	db := setupServiceDB(t)
	schedule := services.NewScheduleService(db)

	status, err := schedule.IsOpenAt(time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC), "12:00")
	assert.NoError(t, err)
	assert.True(t, status.IsOpen)
}
