package billing

import "strings"

var maxOccupancyByType = map[string]int{
	"ORDINARY": 1,
	"SINGLE":   1,
	"DOUBLE":   2,
	"TRIPLE":   3,
}

// MaxOccupancy looks up a room type by its first word ("Triple Bed" is Triple).
// Unknown types hold one guest.
func MaxOccupancy(roomType string) int {
	fields := strings.Fields(strings.ToUpper(roomType))
	if len(fields) == 0 {
		return 1
	}
	if n, ok := maxOccupancyByType[fields[0]]; ok {
		return n
	}
	return 1
}

// OccupancyCheck is a warning only. It never changes a bill.
type OccupancyCheck struct {
	RoomType     string `json:"roomType"`
	MaxOccupancy int    `json:"maxOccupancy"`
	GuestCount   int    `json:"guestCount"`
	Exceeded     bool   `json:"exceeded"`
}

func CheckOccupancy(roomType string, guestCount int) OccupancyCheck {
	limit := MaxOccupancy(roomType)
	return OccupancyCheck{
		RoomType:     roomType,
		MaxOccupancy: limit,
		GuestCount:   guestCount,
		Exceeded:     guestCount > limit,
	}
}
