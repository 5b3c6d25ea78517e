package models

import "time"

// Trend direction of a crop price relative to the previous listing.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

type MarketPrice struct {
	ID        string    `json:"id"`
	Crop      string    `json:"crop"`
	Price     float64   `json:"price"` // INR per unit
	Unit      string    `json:"unit"`
	Market    string    `json:"market"`
	Trend     string    `json:"trend"`
	Timestamp time.Time `json:"timestamp"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
}
