package model

import "time"

// Account is one trading account. Uploaded data is scoped to an account so a
// user can keep e.g. an eval and a funded account apart.
type Account struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

// TradingData is the per-account document holding the full annotated trade
// list and the derived daily series. Trades and DailyData are JSON blobs;
// dates inside them are ISO strings, the mapper package does the round trip.
type TradingData struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AccountID  string    `gorm:"size:36;not null;uniqueIndex" json:"account_id"`
	Trades     string    `gorm:"type:text" json:"-"`
	DailyData  string    `gorm:"type:text" json:"-"`
	FileName   string    `gorm:"size:255" json:"file_name"`
	UploadMode string    `gorm:"size:20" json:"upload_mode"`
	UploadedAt time.Time `json:"uploaded_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (TradingData) TableName() string {
	return "trading_data"
}
