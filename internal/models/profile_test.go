package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleProfile() *Profile {
	return &Profile{
		ID:            primitive.NewObjectID(),
		Name:          "Asha Rao",
		DOB:           "1995-03-10",
		TimeOfBirth:   "06:45",
		Place:         "Pune",
		Education:     "B.Ed",
		Occupation:    "Teacher",
		Business:      "",
		FatherName:    "Ramesh Rao",
		MotherName:    "Sunita Rao",
		ContactNumber: "9999999999",
		Photo1:        "http://storage.local/user-photos/photo1_1.jpg",
		EditToken:     "aabbccddeeff00112233445566778899",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func TestProfile_ToResponse(t *testing.T) {
	p := sampleProfile()

	response := p.ToResponse(29)

	if response.ID != p.ID.Hex() {
		t.Errorf("ToResponse() ID = %v, want %v", response.ID, p.ID.Hex())
	}
	if response.Name != p.Name {
		t.Errorf("ToResponse() Name = %v, want %v", response.Name, p.Name)
	}
	if response.Age != 29 {
		t.Errorf("ToResponse() Age = %d, want 29", response.Age)
	}
	if response.ContactNumber != p.ContactNumber {
		t.Errorf("ToResponse() ContactNumber = %v, want %v", response.ContactNumber, p.ContactNumber)
	}
	if response.Photo1 != p.Photo1 {
		t.Errorf("ToResponse() Photo1 = %v, want %v", response.Photo1, p.Photo1)
	}
}

func TestProfile_EditTokenNeverSerialized(t *testing.T) {
	p := sampleProfile()

	for name, v := range map[string]interface{}{
		"profile":      p,
		"response":     p.ToResponse(29),
		"edit_session": p.ToEditSession(),
	} {
		payload, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %s: %v", name, err)
		}
		if strings.Contains(string(payload), p.EditToken) {
			t.Errorf("%s JSON leaks the edit token: %s", name, payload)
		}
	}
}

func TestProfile_ToEditSession(t *testing.T) {
	p := sampleProfile()

	session := p.ToEditSession()

	if session.ID != p.ID.Hex() {
		t.Errorf("ToEditSession() ID = %v, want %v", session.ID, p.ID.Hex())
	}
	if session.Profile.Name != p.Name {
		t.Errorf("ToEditSession() Name = %v, want %v", session.Profile.Name, p.Name)
	}
	if session.Profile.DOB != p.DOB {
		t.Errorf("ToEditSession() DOB = %v, want %v", session.Profile.DOB, p.DOB)
	}
	if session.Photo1 != p.Photo1 {
		t.Errorf("ToEditSession() Photo1 = %v, want %v", session.Photo1, p.Photo1)
	}
	if session.Photo2 != "" {
		t.Errorf("ToEditSession() Photo2 = %v, want empty", session.Photo2)
	}
}
