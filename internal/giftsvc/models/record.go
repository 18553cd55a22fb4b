package models

import "time"

// ISOLayout matches the millisecond UTC timestamps the web client sorts on.
const ISOLayout = "2006-01-02T15:04:05.000Z"

const CheckMethodRealTime = "real-time"

// GiftCardRecord is one balance check. Records are never updated.
type GiftCardRecord struct {
	ID          int64   `json:"id" bson:"id"` // creation time, epoch millis
	CardType    string  `json:"card_type" bson:"card_type"`
	CardName    string  `json:"card_name" bson:"card_name"`
	FullCode    string  `json:"full_code" bson:"full_code"`
	Balance     float64 `json:"balance" bson:"balance"`
	CheckDate   string  `json:"check_date" bson:"check_date"`
	CheckMethod string  `json:"check_method" bson:"check_method"`
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
