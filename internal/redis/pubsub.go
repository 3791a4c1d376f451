package redisx

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type TripsPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewTripsPubSub(rdb *redis.Client) *TripsPubSub {
	return &TripsPubSub{
		rdb:     rdb,
		channel: ChannelTripsChanged(),
	}
}

type tripChangedMsg struct {
	Type   string `json:"type"`
	TripID int64  `json:"trip_id"`
	TsUnix int64  `json:"ts_unix"`
}

func (p *TripsPubSub) PublishTripChanged(ctx context.Context, tripID int64) error {
	msg := tripChangedMsg{
		Type:   "trip_changed",
		TripID: tripID,
		TsUnix: time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *TripsPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, tripID int64)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev tripChangedMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.TripID != 0 {
				handler(ctx, ev.TripID)
			}
		}
	}
}
