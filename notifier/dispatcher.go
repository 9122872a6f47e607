package notifier

import (
	"fmt"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
	"gorm.io/gorm"
)

// Dispatcher menerima event perubahan state dari core secara fire-and-forget:
// menyiarkan ke hub websocket dan mencatat baris Notification untuk staf.
// Semua kegagalan ditelan di sini (hanya dilog), tidak pernah kembali ke core.
type Dispatcher struct {
	DB *gorm.DB
}

func NewDispatcher(db *gorm.DB) *Dispatcher {
	return &Dispatcher{DB: db}
}

func (d *Dispatcher) ReservationConfirmed(r models.Reservation) {
	broadcast(Message{Event: EventReservationConfirmed, Data: r})
	if r.Status == models.ReservationQueued {
		BroadcastQueueUpdate(r)
	}

	message := fmt.Sprintf("Reservation confirmed, queue number %d", r.QueueNumber)
	if r.Table != nil {
		message = fmt.Sprintf("Reservation confirmed, queue number %d, table %s", r.QueueNumber, r.Table.TableNumber)
	}
	d.record(EventReservationConfirmed, message, &r.CustomerID)
}

func (d *Dispatcher) WaitlistAdded(e models.WaitlistEntry) {
	broadcast(Message{Event: EventWaitlistAdded, Data: e})

	message := fmt.Sprintf("Party of %d added to the %s waitlist", e.PartySize(), e.Location)
	if e.EstimatedWaitTime != nil {
		message = fmt.Sprintf("%s, estimated wait %d minutes", message, *e.EstimatedWaitTime)
	}
	d.record(EventWaitlistAdded, message, &e.CustomerID)
}

func (d *Dispatcher) TableReady(e models.WaitlistEntry, t *models.Table) {
	broadcast(Message{
		Event: EventTableReady,
		Data: map[string]interface{}{
			"entry": e,
			"table": t,
		},
	})

	message := "Your table is ready"
	if t != nil {
		message = fmt.Sprintf("Table %s is ready", t.TableNumber)
	}
	d.record(EventTableReady, message, &e.CustomerID)
}

func (d *Dispatcher) record(event, message string, customerID *uint) {
	if d.DB == nil {
		return
	}
	notification := models.Notification{
		Event:      event,
		Message:    message,
		CustomerID: customerID,
	}
	if err := d.DB.Create(&notification).Error; err != nil {
		utils.ErrorLogger.Printf("Error recording %s notification: %v", event, err)
	}
}
