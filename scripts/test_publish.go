//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nearby-poi-service/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	category := flag.String("category", "museums", "POI category")
	lng := flag.Float64("lng", -0.1276, "Longitude")
	lat := flag.Float64("lat", 51.5072, "Latitude")
	wait := flag.Duration("wait", 10*time.Second, "How long to wait for the result")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.NearbyRequestEvent{
		RequestID: uuid.New(),
		Category:  *category,
		Lng:       *lng,
		Lat:       *lat,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Запоминаем последний ID результата, чтобы читать только новые
	lastID := "$"
	if last, err := client.XRevRangeN(ctx, domain.StreamNearbyDone, "+", "-", 1).Result(); err == nil && len(last) > 0 {
		lastID = last[0].ID
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamNearbyRequest,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}
	fmt.Printf("Published request %s as message %s\n", event.RequestID, result)

	deadline := time.Now().Add(*wait)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamNearbyDone, lastID},
			Block:   time.Second,
		}).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			log.Fatalf("Failed to read results: %v", err)
		}

		for _, msg := range streams[0].Messages {
			lastID = msg.ID
			var done domain.NearbyDoneEvent
			if err := json.Unmarshal([]byte(msg.Values["data"].(string)), &done); err != nil {
				continue
			}
			if done.RequestID != event.RequestID {
				continue
			}
			out, _ := json.MarshalIndent(done, "", "  ")
			fmt.Println(string(out))
			return
		}
	}

	log.Fatalf("No result for request %s within %s", event.RequestID, *wait)
}
