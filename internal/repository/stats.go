package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/search"
	"github.com/lk16/reversi/internal/services"
)

const searchStatsKey = "search_stats"

// StatsRepository keeps per-policy search counters in a Redis hash.
type StatsRepository struct {
	services *services.Services
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(c *fiber.Ctx) *StatsRepository {
	services := c.Locals("services").(*services.Services) //nolint: errcheck

	return &StatsRepository{
		services: services,
	}
}

func NewStatsRepositoryFromServices(services *services.Services) *StatsRepository {
	return &StatsRepository{
		services: services,
	}
}

// Enabled returns whether Redis is configured.
func (repo *StatsRepository) Enabled() bool {
	return repo.services != nil && repo.services.Redis != nil
}

// Record counts one finished search.
func (repo *StatsRepository) Record(ctx context.Context, result search.Result) error {
	if !repo.Enabled() {
		return fmt.Errorf("search stats: %w", ErrServiceUnavailable)
	}

	policy := string(result.Policy)

	pipe := repo.services.Redis.Pipeline()
	pipe.HIncrBy(ctx, searchStatsKey, policy+":searches", 1)
	pipe.HIncrBy(ctx, searchStatsKey, policy+":nodes", int64(result.Nodes)) //nolint:gosec

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error updating Redis stats: %w", err)
	}

	return nil
}

// GetStats returns the counters of all policies that ran at least once, sorted by policy.
func (repo *StatsRepository) GetStats(ctx context.Context) ([]models.SearchStats, error) {
	if !repo.Enabled() {
		return nil, fmt.Errorf("search stats: %w", ErrServiceUnavailable)
	}

	hash, err := repo.services.Redis.HGetAll(ctx, searchStatsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting search stats: %w", err)
	}

	return parseStats(hash)
}

// parseStats converts "<policy>:<counter>" hash fields to SearchStats.
func parseStats(hash map[string]string) ([]models.SearchStats, error) {
	byPolicy := make(map[string]*models.SearchStats)

	for key, value := range hash {
		policy, counter, ok := strings.Cut(key, ":")
		if !ok {
			return nil, fmt.Errorf("error parsing search stats key: %q", key)
		}

		count, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("error parsing search stats value: %w", err)
		}

		stats, ok := byPolicy[policy]
		if !ok {
			stats = &models.SearchStats{Policy: policy}
			byPolicy[policy] = stats
		}

		switch counter {
		case "searches":
			stats.Searches = count
		case "nodes":
			stats.Nodes = count
		default:
			return nil, fmt.Errorf("unknown search stats counter: %q", counter)
		}
	}

	statsList := make([]models.SearchStats, 0, len(byPolicy))
	for _, stats := range byPolicy {
		statsList = append(statsList, *stats)
	}

	sort.Slice(statsList, func(i, j int) bool {
		return statsList[i].Policy < statsList[j].Policy
	})

	return statsList, nil
}
