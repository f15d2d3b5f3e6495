package models

import (
	"time"

	"github.com/leadflowhq/leadflow-backend/pkg/enums"
)

// Application is one customer contact submission. Only the status column is
// ever mutated after creation.
type Application struct {
	ID          int64                   `gorm:"primaryKey;autoIncrement"`
	Name        string                  `gorm:"type:varchar(100);not null"`
	Phone       string                  `gorm:"type:varchar(20);not null"`
	Email       *string                 `gorm:"type:varchar(100)"`
	Comment     *string                 `gorm:"type:text"`
	Status      enums.ApplicationStatus `gorm:"type:varchar(16);not null;default:new;index"`
	UTMSource   *string                 `gorm:"column:utm_source;type:varchar(100)"`
	UTMMedium   *string                 `gorm:"column:utm_medium;type:varchar(100)"`
	UTMCampaign *string                 `gorm:"column:utm_campaign;type:varchar(100)"`
	IPAddress   *string                 `gorm:"column:ip_address;type:varchar(45)"`
	UserAgent   *string                 `gorm:"column:user_agent;type:text"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

func (Application) TableName() string {
	return "applications"
}
