// Command seed resets the clinic database and loads a demo doctor and patient.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"clinixsphere/config"
	"clinixsphere/database"
	availabilityRepo "clinixsphere/database/repository/availability"
	doctorRepo "clinixsphere/database/repository/doctor"
	userRepoPkg "clinixsphere/database/repository/user"
	"clinixsphere/models"
	"clinixsphere/services/availability"
	"clinixsphere/services/user"
)

var collections = []string{"users", "doctor_profiles", "availabilities", "appointments", "booking_locks", "prescriptions"}

func main() {
	config.LoadConfig()
	if err := database.InitDB(); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	db := database.Database()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range collections {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Fatalf("Failed to drop %s: %v", name, err)
		}
	}

	users := userRepoPkg.NewMongoUserRepo(db)
	doctors := doctorRepo.NewMongoDoctorRepo(db)
	avail := availabilityRepo.NewMongoAvailabilityRepo(db)
	for _, repo := range []interface{ EnsureIndexes(context.Context) error }{users, doctors, avail} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
	}

	userService := user.NewUserService(users, doctors, time.Hour)
	availabilityService := availability.NewAvailabilityService(avail, nil, 0)

	doctor, err := userService.Register(ctx, models.UserRegistrationRequest{
		Name: "Dr. Amara Osei", Email: "doctor@clinixsphere.dev", Password: "doctor123", Role: models.RoleDoctor,
	})
	if err != nil {
		log.Fatalf("Failed to create doctor: %v", err)
	}
	patient, err := userService.Register(ctx, models.UserRegistrationRequest{
		Name: "Jamie Patel", Email: "patient@clinixsphere.dev", Password: "patient123", Role: models.RolePatient,
	})
	if err != nil {
		log.Fatalf("Failed to create patient: %v", err)
	}

	workday := []models.Slot{{Start: "09:00", End: "12:00"}, {Start: "13:00", End: "17:00"}}
	_, err = availabilityService.SetAvailability(ctx, doctor.User.ID, models.SetAvailabilityRequest{
		Week: models.Week{Mon: workday, Tue: workday, Wed: workday, Thu: workday, Fri: workday},
	})
	if err != nil {
		log.Fatalf("Failed to set availability: %v", err)
	}

	fmt.Printf("Seeded doctor %s (%s)\n", doctor.User.ID, doctor.User.Email)
	fmt.Printf("Seeded patient %s (%s)\n", patient.User.ID, patient.User.Email)
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		log.Printf("Disconnect failed: %v", err)
	}
}
