package entities

// GarageConfig is the topology document served by the simulator at /garage.
type GarageConfig struct {
	Garage []GarageSector `json:"garage"`
	Spots  []SpotInfo     `json:"spots"`
}

type GarageSector struct {
	Sector      string  `json:"sector"`
	BasePrice   float64 `json:"base_price"`
	MaxCapacity int     `json:"max_capacity"`
}

type SpotInfo struct {
	ID     int64   `json:"id"`
	Sector string  `json:"sector"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}
