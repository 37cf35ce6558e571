package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered account. Username lookups are case-insensitive through
// NormalizedUsername, which carries the unique index.
type User struct {
	ID                 string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username           string    `gorm:"type:varchar(64);not null" json:"username"`
	NormalizedUsername string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	Email              string    `gorm:"type:varchar(190);uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = newID()
	}
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	u.NormalizedUsername = NormalizeUsername(u.Username)
	u.Email = NormalizeEmail(u.Email)
	return nil
}

func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newID returns a time-ordered UUIDv7 so that id order follows insertion order.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// timestamp defaults t to now and drops precision below what postgres and
// mysql store, so a row reads back with the time it was created with.
func timestamp(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Truncate(time.Microsecond)
}
