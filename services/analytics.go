package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/database"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/model"
)

const (
	trendDays         = 7
	DefaultPeriodDays = 30
	MaxPeriodDays     = 365
	dateLayout        = "2006-01-02"
)

type TrendPoint struct {
	Date    string      `json:"date"`
	Day     string      `json:"day"`
	Mood    *model.Mood `json:"mood"` // nil on days without entries
	Score   float64     `json:"score"`
	Entries int         `json:"entries"`
}

type TrendSummary struct {
	AverageScore float64    `json:"average_score"`
	DominantMood model.Mood `json:"dominant_mood"`
	TotalEntries int        `json:"total_entries"`
}

type WeeklyTrend struct {
	Trend   []TrendPoint `json:"trend"`
	Summary TrendSummary `json:"summary"`
}

type MoodShare struct {
	Mood       model.Mood `json:"mood"`
	Count      int        `json:"count"`
	Percentage float64    `json:"percentage"`
}

type MoodDistribution struct {
	PeriodDays   int         `json:"period_days"`
	TotalEntries int         `json:"total_entries"`
	Distribution []MoodShare `json:"distribution"`
}

// AnalyticsService aggregates stored chat logs. It never writes.
type AnalyticsService struct {
	store     database.Store
	dbTimeout time.Duration
	now       func() time.Time
}

func NewAnalyticsService(store database.Store, dbTimeout time.Duration) *AnalyticsService {
	return &AnalyticsService{store: store, dbTimeout: dbTimeout, now: time.Now}
}

func (s *AnalyticsService) WeeklyTrend(ctx context.Context, userID string) (*WeeklyTrend, error) {
	now := s.now().UTC()
	records, err := s.load(ctx, userID, now.Add(-trendDays*24*time.Hour), now)
	if err != nil {
		return nil, err
	}
	trend := BuildWeeklyTrend(records, now)
	return &trend, nil
}

func (s *AnalyticsService) MoodDistribution(ctx context.Context, userID string, days int) (*MoodDistribution, error) {
	days = ClampPeriodDays(days)
	now := s.now().UTC()
	records, err := s.load(ctx, userID, now.AddDate(0, 0, -days), now)
	if err != nil {
		return nil, err
	}
	dist := BuildDistribution(records, days)
	return &dist, nil
}

func (s *AnalyticsService) load(ctx context.Context, userID string, from, to time.Time) ([]model.ChatRecord, error) {
	dbCtx, cancel := context.WithTimeout(ctx, s.dbTimeout)
	defer cancel()

	records, err := s.store.ChatsBetween(dbCtx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load mood logs: %w", err)
	}
	return records, nil
}

func ClampPeriodDays(days int) int {
	if days <= 0 {
		return DefaultPeriodDays
	}
	if days > MaxPeriodDays {
		return MaxPeriodDays
	}
	return days
}

// BuildWeeklyTrend buckets records (oldest first) into the seven UTC days
// ending on now's date.
func BuildWeeklyTrend(records []model.ChatRecord, now time.Time) WeeklyTrend {
	daily := make(map[string][]model.Mood)
	all := make([]model.Mood, 0, len(records))
	for _, r := range records {
		key := r.Timestamp.UTC().Format(dateLayout)
		daily[key] = append(daily[key], r.Mood)
		all = append(all, r.Mood)
	}

	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	trend := make([]TrendPoint, 0, trendDays)
	var total float64
	var activeDays int
	for i := trendDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		point := TrendPoint{Date: day.Format(dateLayout), Day: day.Format("Mon")}

		if moods := daily[point.Date]; len(moods) > 0 {
			dominant := dominantMood(moods)
			point.Mood = &dominant
			point.Score = dominant.Score()
			point.Entries = len(moods)
			total += point.Score
			activeDays++
		}
		trend = append(trend, point)
	}

	summary := TrendSummary{DominantMood: model.Neutral, TotalEntries: len(all)}
	if activeDays > 0 {
		summary.AverageScore = round(total/float64(activeDays), 2)
	}
	if len(all) > 0 {
		summary.DominantMood = dominantMood(all)
	}
	return WeeklyTrend{Trend: trend, Summary: summary}
}

// BuildDistribution counts moods and orders them by count, ties in the order
// each mood first appeared.
func BuildDistribution(records []model.ChatRecord, days int) MoodDistribution {
	order, counts := tally(moodsOf(records))
	total := len(records)

	shares := make([]MoodShare, 0, len(order))
	for _, m := range order {
		share := MoodShare{Mood: m, Count: counts[m]}
		if total > 0 {
			share.Percentage = round(float64(counts[m])/float64(total)*100, 1)
		}
		shares = append(shares, share)
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Count > shares[j].Count
	})

	return MoodDistribution{PeriodDays: days, TotalEntries: total, Distribution: shares}
}

func moodsOf(records []model.ChatRecord) []model.Mood {
	out := make([]model.Mood, len(records))
	for i, r := range records {
		out[i] = r.Mood
	}
	return out
}

func tally(moods []model.Mood) ([]model.Mood, map[model.Mood]int) {
	counts := make(map[model.Mood]int)
	var order []model.Mood
	for _, m := range moods {
		if counts[m] == 0 {
			order = append(order, m)
		}
		counts[m]++
	}
	return order, counts
}

// dominantMood is the most frequent mood; the earliest seen wins a tie.
// moods must not be empty.
func dominantMood(moods []model.Mood) model.Mood {
	order, counts := tally(moods)
	best := order[0]
	for _, m := range order[1:] {
		if counts[m] > counts[best] {
			best = m
		}
	}
	return best
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
