package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field — one cotton field card with farmer-provided metadata. Fields
// carry registry data only; assessment inputs and outputs are never
// persisted, every recommendation is recomputed from the request.
type Field struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"ownerId"      json:"ownerId"`
	Name      string             `bson:"name"         json:"name"`
	CreatedAt time.Time          `bson:"createdAt"    json:"createdAt"`

	// Farmer-facing metadata
	Meta *FieldMeta `bson:"meta,omitempty" json:"meta,omitempty"`

	// Nitrogen applied so far, by season (kg N/ha). The latest entry
	// seeds the currentN default when assessing the field.
	Applications []NitrogenEntry `bson:"applications,omitempty" json:"applications,omitempty"`
}

type FieldMeta struct {
	AreaHa    *float64 `bson:"areaHa,omitempty"    json:"areaHa,omitempty"` // area in hectares
	Variety   string   `bson:"variety,omitempty"   json:"variety,omitempty"`
	SoilNotes string   `bson:"soilNotes,omitempty" json:"soilNotes,omitempty"`
	Notes     string   `bson:"notes,omitempty"     json:"notes,omitempty"`
}

type NitrogenEntry struct {
	Year     int     `bson:"year"            json:"year"`
	RateKgHa float64 `bson:"rateKgHa"        json:"rateKgHa"` // kg N/ha applied
	Notes    string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// LatestApplication returns the most recent season's applied rate, or
// false when the field has no recorded applications.
func (f *Field) LatestApplication() (NitrogenEntry, bool) {
	if len(f.Applications) == 0 {
		return NitrogenEntry{}, false
	}
	best := f.Applications[0]
	for _, e := range f.Applications[1:] {
		if e.Year > best.Year {
			best = e
		}
	}
	return best, true
}
