package model

// All lists every table in migration order (parents before children).
func All() []any {
	return []any{
		&Vessel{},
		&Location{},
		&LocationActivity{},
		&TransponderPing{},
		&HarborReport{},
		&Transaction{},
		&DeliveryReport{},
		&FishLocation{},
		&FishType{},
		&CacheEntry{},
	}
}
