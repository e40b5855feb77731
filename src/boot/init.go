package boot

import (
	"gbs/src/db"
	"gbs/src/lib"
	"gbs/src/models"
	"gbs/src/utils"
	"log"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.Property{},
		&models.Room{},
		&models.RoomBlock{},
		&models.Reservation{},
		&models.ReservationItem{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitScheduler starts the background job that reclaims expired holds.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	id, err := lib.CreateCronJob(func() {
		purged, err := utils.PurgeExpiredHolds()
		if err != nil {
			log.Printf("Error purging expired holds: %s\n", err.Error())
			return
		}
		if purged > 0 {
			log.Printf("Purged %d expired reservation holds\n", purged)
		}
	}, 1*time.Minute)
	if err != nil {
		log.Printf("Error scheduling hold expiration job: %s\n", err.Error())
		return
	}
	log.Printf("Hold expiration job scheduled with ID %s\n", *id)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}
