package analytics

import "time"

const day = 24 * time.Hour

// InDeliveryWindow reports whether a ping at pingTime falls in
// [transactionDate, transactionDate + 1 day).
func InDeliveryWindow(transactionDate time.Time, pingTime time.Time) bool {
	start := truncateDay(transactionDate)
	return !pingTime.Before(start) && pingTime.Before(start.Add(day))
}

// InFishingWindow reports whether the calendar date of pingTime lies within
// [transactionDate - 3 days, transactionDate + 1 day], both ends inclusive.
func InFishingWindow(transactionDate time.Time, pingTime time.Time) bool {
	txDay := truncateDay(transactionDate)
	pingDay := truncateDay(pingTime)
	return !pingDay.Before(txDay.AddDate(0, 0, -3)) && !pingDay.After(txDay.AddDate(0, 0, 1))
}

// DeliveryWindowBounds returns InDeliveryWindow as [from, to) DateLayout
// bounds for a lexical pre-filter on stored timestamps.
func DeliveryWindowBounds(transactionDate time.Time) (from string, to string) {
	start := truncateDay(transactionDate)
	return start.Format(DateLayout), start.Add(day).Format(DateLayout)
}

// FishingWindowBounds returns [from, to) DateLayout bounds covering every
// timestamp whose calendar date satisfies InFishingWindow.
func FishingWindowBounds(transactionDate time.Time) (from string, to string) {
	txDay := truncateDay(transactionDate)
	return txDay.AddDate(0, 0, -3).Format(DateLayout), txDay.AddDate(0, 0, 2).Format(DateLayout)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
