package record

import (
	"time"

	"gorm.io/datatypes"
)

// Record is one stored upload: identity, the collected documents, an
// optional screenshot and the server-assigned creation time. Rows are
// immutable after insert; the retention sweep deletes them whole.
type Record struct {
	ID         int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username   string         `gorm:"column:username" json:"username"`
	Cookies    datatypes.JSON `gorm:"column:cookies" json:"cookies"`
	History    datatypes.JSON `gorm:"column:history" json:"history"`
	SystemInfo datatypes.JSON `gorm:"column:system_info" json:"system_info"`
	Screenshot []byte         `gorm:"column:screenshot" json:"-"`
	Timestamp  time.Time      `gorm:"column:timestamp;index:idx_records_timestamp" json:"timestamp"`
}

func (Record) TableName() string { return "records" }

// Summary is the admin list row: identity only, no documents.
type Summary struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}
