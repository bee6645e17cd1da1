package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// StringArray stores an ordered list of strings as a JSON column
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	return scanJSON(value, a, func() { *a = StringArray{} })
}

// GroundingSource is a web page the AI consulted while extracting a recipe
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Sources stores grounding sources as a JSON column
type Sources []GroundingSource

// Value implements the driver.Valuer interface
func (s Sources) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]GroundingSource(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (s *Sources) Scan(value interface{}) error {
	return scanJSON(value, s, func() { *s = Sources{} })
}

func scanJSON(value interface{}, dst interface{}, empty func()) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		empty()
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
	if len(data) == 0 {
		empty()
		return nil
	}
	return json.Unmarshal(data, dst)
}

// Recipe is a saved recipe. IDs and names are unique within a collection.
type Recipe struct {
	CollectionID string      `gorm:"primaryKey;size:36;not null;uniqueIndex:idx_recipes_collection_name,priority:1" json:"collection_id,omitempty"`
	ID           string      `gorm:"primaryKey;size:32" json:"id"`
	Name         string      `gorm:"size:255;not null;uniqueIndex:idx_recipes_collection_name,priority:2" json:"name"`
	Ingredients  StringArray `gorm:"type:jsonb;not null" json:"ingredients"`
	Instructions StringArray `gorm:"type:jsonb;not null" json:"instructions"`
	Sources      Sources     `gorm:"type:jsonb" json:"sources,omitempty"`
	CreatedAt    time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (Recipe) TableName() string {
	return "recipes"
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewRecipeID returns the current Unix time in milliseconds as a string.
// IDs handed out by one process strictly increase even within the same millisecond.
func NewRecipeID() string {
	return newRecipeIDAt(time.Now())
}

func newRecipeIDAt(now time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()

	id := now.UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return strconv.FormatInt(id, 10)
}
