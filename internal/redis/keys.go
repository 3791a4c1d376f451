package redisx

import "fmt"

const ns = "busgo:v1"

func KeyTripSummary(tripID int64) string {
	return fmt.Sprintf("%s:trip:%d:summary", ns, tripID)
}

func KeyTripAvailability(tripID int64) string {
	return fmt.Sprintf("%s:trip:%d:availability", ns, tripID)
}

func KeyTripSeatMap(tripID int64) string {
	return fmt.Sprintf("%s:trip:%d:seatmap", ns, tripID)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelTripsChanged() string {
	return ns + ":trips:changed"
}
