package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"ReferralApi/pkg/logger"
	"ReferralApi/pkg/redis"
)

const rewardFeedTTL = 24 * time.Hour

// upgrader is used to upgrade HTTP connections to WebSocket connections.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RewardFeedEntry is one applied commission published to the live feed.
type RewardFeedEntry struct {
	ReferrerID int64   `json:"referrerId"`
	ReferredID int64   `json:"referredId"`
	Level      int     `json:"level"`
	Amount     float64 `json:"amount"`
	Timestamp  int64   `json:"timestamp"`
}

// publishRewards pushes the applied commissions of a processed deposit to
// redis for the live feed. Best effort: feed failures never fail a deposit
// that already committed.
func (s *RewardService) publishRewards(ctx context.Context, result *DepositResult) {
	if s.redisService == nil {
		return
	}

	now := time.Now().UnixNano()
	for i, com := range result.Rewards {
		entry := RewardFeedEntry{
			ReferrerID: com.UserID,
			ReferredID: result.Deposit.UserID,
			Level:      com.Level,
			Amount:     com.Amount,
			Timestamp:  now + int64(i),
		}

		data, err := json.Marshal(entry)
		if err != nil {
			logger.Error("%v", err)
			return
		}

		key := fmt.Sprintf("referral:reward:%d", entry.Timestamp)
		if err := s.redisService.SetKey(ctx, key, data, rewardFeedTTL); err != nil {
			logger.Error("%v", err)
			return
		}
	}
}

// RewardsFeedService is responsible for serving recently applied referral
// rewards, both as a snapshot and as a live WebSocket stream.
type RewardsFeedService struct {
	redisService *redis.RedisService
}

// NewRewardsFeedService creates a new instance of RewardsFeedService.
func NewRewardsFeedService(redisService *redis.RedisService) *RewardsFeedService {
	return &RewardsFeedService{
		redisService: redisService,
	}
}

// GetRecentRewards handles GET requests to fetch recently applied rewards.
func (f *RewardsFeedService) GetRecentRewards(c *gin.Context) {
	rewards, err := f.fetchRecentRewards(c.Request.Context(), 10) // Fetch last 10 rewards
	if err != nil {
		logger.Error("%v", err)
		c.Status(500)
		return
	}
	if len(rewards) < 1 {
		c.String(404, "[]")
		return
	}
	c.JSON(200, rewards)
}

// LiveRewardsWebsocketHandler handles the WebSocket connection for live
// reward events.
func (f *RewardsFeedService) LiveRewardsWebsocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("%v", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	var lastRewardTimestamp int64

	for range ticker.C { // Continuously fetch and send the latest reward
		rewards, err := f.fetchRecentRewards(c.Request.Context(), 1)
		if err != nil {
			logger.Error("%v", err)
			return
		}

		if len(rewards) > 0 {
			latest := rewards[len(rewards)-1]
			if latest.Timestamp > lastRewardTimestamp { // Send only if newer
				if err := conn.WriteJSON(latest); err != nil {
					logger.Error("%v", err)
					return
				}
				lastRewardTimestamp = latest.Timestamp
			}
		}
	}
}

// fetchRecentRewards retrieves recent reward entries from Redis, oldest first.
func (f *RewardsFeedService) fetchRecentRewards(ctx context.Context, limit int) ([]RewardFeedEntry, error) {
	keys, err := f.fetchSortedKeys(ctx)
	if err != nil {
		return nil, logger.WrapError(err, "")
	}

	if len(keys) > limit {
		keys = keys[len(keys)-limit:]
	}

	return f.fetchRewardData(ctx, keys)
}

// fetchSortedKeys retrieves and sorts all reward feed keys from Redis.
func (f *RewardsFeedService) fetchSortedKeys(ctx context.Context) ([]string, error) {
	keys, err := f.redisService.Client().Keys(ctx, "referral:reward:*").Result()
	if err != nil {
		return nil, logger.WrapError(err, "")
	}

	sort.Strings(keys)
	return keys, nil
}

// fetchRewardData fetches the reward data for the given keys from Redis.
func (f *RewardsFeedService) fetchRewardData(ctx context.Context, keys []string) ([]RewardFeedEntry, error) {
	var entries []RewardFeedEntry

	for _, key := range keys {
		data, err := f.redisService.GetKey(ctx, key)
		if err != nil {
			return nil, logger.WrapError(err, "")
		}

		var entry RewardFeedEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return nil, logger.WrapError(err, "")
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
