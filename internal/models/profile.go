package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile represents one directory entry. The ObjectID is the public
// identifier used by listing and detail views; the edit token is the secret
// capability that gates mutation and is never serialized in public responses.
type Profile struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	DOB           string             `bson:"dob" json:"dob"`
	TimeOfBirth   string             `bson:"time" json:"time"`
	Place         string             `bson:"place" json:"place"`
	Education     string             `bson:"education" json:"education"`
	Occupation    string             `bson:"occupation" json:"occupation"`
	Business      string             `bson:"business" json:"business"`
	FatherName    string             `bson:"father_name" json:"father_name"`
	MotherName    string             `bson:"mother_name" json:"mother_name"`
	ContactNumber string             `bson:"contact_number" json:"contact_number"`
	Photo1        string             `bson:"photo_1" json:"photo_1"`
	Photo2        string             `bson:"photo_2" json:"photo_2"`
	EditToken     string             `bson:"edit_token" json:"-"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// ProfileInput represents the submitted form fields for registration and
// edit. Photo files arrive separately as multipart file parts; the clear
// flags let an edit empty a photo slot explicitly.
type ProfileInput struct {
	Name          string `form:"name" json:"name"`
	DOB           string `form:"dob" json:"dob"`
	TimeOfBirth   string `form:"time" json:"time"`
	Place         string `form:"place" json:"place"`
	Education     string `form:"education" json:"education"`
	Occupation    string `form:"occupation" json:"occupation"`
	Business      string `form:"business" json:"business"`
	FatherName    string `form:"father_name" json:"father_name"`
	MotherName    string `form:"mother_name" json:"mother_name"`
	ContactNumber string `form:"contact_number" json:"contact_number"`
	Photo1Clear   bool   `form:"photo1_clear" json:"photo1_clear"`
	Photo2Clear   bool   `form:"photo2_clear" json:"photo2_clear"`
}

// ProfileResponse is the public read-only view of a profile with the derived
// age attached.
type ProfileResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	DOB           string    `json:"dob"`
	TimeOfBirth   string    `json:"time"`
	Place         string    `json:"place"`
	Education     string    `json:"education"`
	Occupation    string    `json:"occupation"`
	Business      string    `json:"business"`
	FatherName    string    `json:"father_name"`
	MotherName    string    `json:"mother_name"`
	ContactNumber string    `json:"contact_number"`
	Photo1        string    `json:"photo_1"`
	Photo2        string    `json:"photo_2"`
	Age           int       `json:"age"`
	CreatedAt     time.Time `json:"created_at"`
}

// RegistrationResponse is returned exactly once, at creation. The edit link
// cannot be recovered through any other flow.
type RegistrationResponse struct {
	ID        string    `json:"id"`
	EditToken string    `json:"edit_token"`
	EditLink  string    `json:"edit_link"`
	CreatedAt time.Time `json:"created_at"`
}

// EditSessionResponse pre-populates the mutation form with current values.
// It is only ever produced after an exact token match.
type EditSessionResponse struct {
	ID      string       `json:"id"`
	Profile ProfileInput `json:"profile"`
	Photo1  string       `json:"photo_1"`
	Photo2  string       `json:"photo_2"`
}

// ProfileListResponse holds the full, filtered listing
type ProfileListResponse struct {
	Data  []ProfileResponse `json:"data"`
	Total int               `json:"total"`
}

// ToResponse converts a Profile to its public view. The derived age is
// computed by the caller so listing and detail share one clock.
func (p *Profile) ToResponse(age int) ProfileResponse {
	return ProfileResponse{
		ID:            p.ID.Hex(),
		Name:          p.Name,
		DOB:           p.DOB,
		TimeOfBirth:   p.TimeOfBirth,
		Place:         p.Place,
		Education:     p.Education,
		Occupation:    p.Occupation,
		Business:      p.Business,
		FatherName:    p.FatherName,
		MotherName:    p.MotherName,
		ContactNumber: p.ContactNumber,
		Photo1:        p.Photo1,
		Photo2:        p.Photo2,
		Age:           age,
		CreatedAt:     p.CreatedAt,
	}
}

// ToEditSession converts a Profile to the edit form pre-fill view
func (p *Profile) ToEditSession() EditSessionResponse {
	return EditSessionResponse{
		ID: p.ID.Hex(),
		Profile: ProfileInput{
			Name:          p.Name,
			DOB:           p.DOB,
			TimeOfBirth:   p.TimeOfBirth,
			Place:         p.Place,
			Education:     p.Education,
			Occupation:    p.Occupation,
			Business:      p.Business,
			FatherName:    p.FatherName,
			MotherName:    p.MotherName,
			ContactNumber: p.ContactNumber,
		},
		Photo1: p.Photo1,
		Photo2: p.Photo2,
	}
}
