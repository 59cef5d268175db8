package models

import "time"

// DoctorProfile holds the professional details of a doctor account.
type DoctorProfile struct {
	ID              string    `bson:"id" json:"id"`
	UserID          string    `bson:"userId" json:"userId"`
	Speciality      string    `bson:"speciality" json:"speciality"`
	ExperienceYears int       `bson:"experienceYears" json:"experienceYears"`
	Bio             string    `bson:"bio,omitempty" json:"bio,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DoctorProfileUpdate only applies fields that are set.
type DoctorProfileUpdate struct {
	Speciality      *string `json:"speciality"`
	ExperienceYears *int    `json:"experienceYears"`
	Bio             *string `json:"bio"`
}

// DoctorDTO is a profile joined with the owning user's public fields.
type DoctorDTO struct {
	DoctorProfile
	User PublicUser `json:"user"`
}
