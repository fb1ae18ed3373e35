package domain

import "time"

// Stock is a tradable symbol in the catalog. Only the price simulator
// changes Price and DailyChange after the catalog is seeded.
type Stock struct {
	Symbol      string
	Name        string
	Sector      string
	Price       int64 // cents, always >= the configured floor
	DailyChange int64 // cents, Price minus the price before the last tick
	UpdatedAt   time.Time
}
