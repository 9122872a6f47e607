package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
)

func TestNextQueueNumberStartsAtOne(t *testing.T) {
	db := setupServiceDB(t)
	sequencer := services.NewQueueSequencer(db)

	num, err := sequencer.NextQueueNumber(db, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 1, num)
}

func TestNextQueueNumberIgnoresOtherDays(t *testing.T) {
	db := setupServiceDB(t)
	sequencer := services.NewQueueSequencer(db)

	now := time.Now()
	db.Create(&models.Reservation{CustomerID: 1, Adults: 2, Status: models.ReservationCompleted, QueueNumber: 12, CreatedAt: now.Add(-48 * time.Hour)})
	db.Create(&models.Reservation{CustomerID: 1, Adults: 2, Status: models.ReservationSeated, QueueNumber: 3, CreatedAt: now})

	num, err := sequencer.NextQueueNumber(db, now)
	assert.NoError(t, err)
	assert.Equal(t, 4, num)
}

func TestDequeueNextMatchingIsFirstFitByArrival(t *testing.T) {
	db := setupServiceDB(t)
	sequencer := services.NewQueueSequencer(db)

	customer := models.Customer{Name: "A", PhoneNumber: "0830"}
	db.Create(&customer)

	big := models.WaitlistEntry{CustomerID: customer.ID, Adults: 6, Location: models.LocationIndoor}
	assert.NoError(t, sequencer.Enqueue(db, &big))
	outdoor := models.WaitlistEntry{CustomerID: customer.ID, Adults: 2, Location: models.LocationOutdoor}
	assert.NoError(t, sequencer.Enqueue(db, &outdoor))
	small := models.WaitlistEntry{CustomerID: customer.ID, Adults: 2, Location: models.LocationIndoor}
	assert.NoError(t, sequencer.Enqueue(db, &small))

	// Kapasitas 4 indoor: rombongan 6 dilewati, entry outdoor dilewati,
	// rombongan 2 indoor yang paling awal cocok yang diambil.
	entry, err := sequencer.DequeueNextMatching(db, models.LocationIndoor, 4)
	assert.NoError(t, err)
	assert.NotNil(t, entry)
	assert.Equal(t, small.ID, entry.ID)

	// Tidak ada yang muat di kapasitas 1
	entry, err = sequencer.DequeueNextMatching(db, models.LocationIndoor, 1)
	assert.NoError(t, err)
	assert.Nil(t, entry)
}
