package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShiftPreference is the user's standing milk order for one shift.
// Users edit it at any time; the generator only ever reads a snapshot.
type ShiftPreference struct {
	IsActive bool    `bson:"isActive" json:"isActive"`
	Quantity float64 `bson:"quantity" json:"quantity"`
}

type MilkPreference struct {
	Morning ShiftPreference `bson:"morning" json:"morning"`
	Evening ShiftPreference `bson:"evening" json:"evening"`
}

// User records are owned by the account service; this service only reads
// them to snapshot preferences and to decorate billing responses.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string             `bson:"name" json:"name"`
	UserName       string             `bson:"userName" json:"userName"`
	UserCode       string             `bson:"userId,omitempty" json:"userId,omitempty"`
	Phone          string             `bson:"phone" json:"phone"`
	Address        string             `bson:"address" json:"address"`
	MilkPreference MilkPreference     `bson:"milkPreference" json:"milkPreference"`
}

// Preference returns the standing order for the given shift.
func (u User) Preference(shift Shift) ShiftPreference {
	if shift == ShiftEvening {
		return u.MilkPreference.Evening
	}
	return u.MilkPreference.Morning
}
