package redis

import "fmt"

const cacheNS = "busgo:v1"

func KeyTripSummary(tripID int64) string {
	return fmt.Sprintf("%s:trip:%d:summary", cacheNS, tripID)
}

func KeyTripAvailability(tripID int64) string {
	return fmt.Sprintf("%s:trip:%d:availability", cacheNS, tripID)
}

func KeyTripSeatMap(tripID int64) string {
	return fmt.Sprintf("%s:trip:%d:seatmap", cacheNS, tripID)
}
