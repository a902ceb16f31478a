package models

import "time"

// MarketVendor is the join row between markets and vendors. The composite
// primary key guarantees a given (market, vendor) pair appears at most once.
type MarketVendor struct {
	MarketID  string    `gorm:"column:market_id;primaryKey"`
	VendorID  string    `gorm:"column:vendor_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (MarketVendor) TableName() string {
	return "market_vendors"
}
