package model

import (
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	Id                 string                      `gorm:"type:varchar(64);primaryKey"`
	Name               string                      `gorm:"type:varchar(255);not null"`
	Brand              string                      `gorm:"type:varchar(128);index"`
	Category           string                      `gorm:"type:varchar(64);index"`
	Subcategory        string                      `gorm:"type:varchar(64);index"`
	Price              float64                     `gorm:"type:numeric(10,2);not null"`
	OriginalPrice      *float64                    `gorm:"type:numeric(10,2)"`
	DiscountPercentage *float64                    `gorm:"type:numeric(5,2)"`
	Color              string                      `gorm:"type:varchar(64)"`
	Colors             datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Size               string                      `gorm:"type:varchar(32)"`
	Sizes              datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Material           string                      `gorm:"type:varchar(64)"`
	Description        string                      `gorm:"type:text"`
	Features           datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Tags               datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Availability       string                      `gorm:"type:varchar(32);default:'in_stock'"`
	Rating             float64                     `gorm:"type:numeric(2,1);default:0"`
	ReviewsCount       int                         `gorm:"default:0"`
	CreatedAt          time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt          time.Time                   `gorm:"autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
