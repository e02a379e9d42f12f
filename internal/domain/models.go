// Package domain defines the persistence model for favorite APOD entries.
// The type is mapped with GORM for the SQL store and converted to a BSON
// document by the MongoDB store; its JSON shape is the public wire format.
package domain

import "time"

// Media types an APOD entry can carry.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Favorite is one Astronomy Picture of the Day entry saved by a user.
// A user may save a given day's entry at most once (unique user_id,date).
//
// Fields:
//   - ID: 24-char hex ObjectID assigned by the store on insert; never reused.
//   - UserID: opaque client-generated identifier; the tenant key.
//   - Title / URL / Date / Explanation: copied from the APOD entry.
//   - MediaType: "image" or "video".
//   - CreatedAt / UpdatedAt: set by the store on insert.
type Favorite struct {
	ID          string    `json:"_id"         gorm:"type:char(24);primaryKey"`
	UserID      string    `json:"userId"      gorm:"type:varchar(128);not null;uniqueIndex:ux_favorites_user_date,priority:1;index:idx_favorites_user_created,priority:1"`
	Title       string    `json:"title"       gorm:"type:varchar(512);not null"`
	URL         string    `json:"url"         gorm:"type:text;not null"`
	Date        string    `json:"date"        gorm:"type:varchar(10);not null;uniqueIndex:ux_favorites_user_date,priority:2"`
	Explanation string    `json:"explanation" gorm:"type:text;not null"`
	MediaType   string    `json:"mediaType"   gorm:"type:varchar(16);not null;default:'image'"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"index:idx_favorites_user_created,priority:2"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Favorite.
func (Favorite) TableName() string { return "favorites" }
