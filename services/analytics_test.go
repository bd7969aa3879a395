package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/model"
)

var analyticsNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC) // a Tuesday

func record(mood model.Mood, at time.Time) model.ChatRecord {
	return model.ChatRecord{UserID: "user-1", Message: "m", Mood: mood, AIReply: "r", Timestamp: at}
}

func TestBuildWeeklyTrendEmpty(t *testing.T) {
	got := BuildWeeklyTrend(nil, analyticsNow)
	if len(got.Trend) != 7 {
		t.Fatalf("len(trend)=%d", len(got.Trend))
	}
	if got.Trend[0].Date != "2026-03-04" || got.Trend[6].Date != "2026-03-10" || got.Trend[6].Day != "Tue" {
		t.Errorf("window=%s..%s (%s)", got.Trend[0].Date, got.Trend[6].Date, got.Trend[6].Day)
	}
	for _, p := range got.Trend {
		if p.Mood != nil || p.Score != 0 || p.Entries != 0 {
			t.Errorf("point=%+v", p)
		}
	}
	if got.Summary.AverageScore != 0 || got.Summary.DominantMood != model.Neutral || got.Summary.TotalEntries != 0 {
		t.Errorf("summary=%+v", got.Summary)
	}
}

func TestBuildWeeklyTrendSingleDay(t *testing.T) {
	records := []model.ChatRecord{
		record(model.Happy, analyticsNow.Add(-3*time.Hour)),
		record(model.Happy, analyticsNow.Add(-2*time.Hour)),
		record(model.Sad, analyticsNow.Add(-time.Hour)),
	}
	got := BuildWeeklyTrend(records, analyticsNow)

	today := got.Trend[6]
	if today.Mood == nil || *today.Mood != model.Happy || today.Score != 2 || today.Entries != 3 {
		t.Fatalf("today=%+v", today)
	}
	if got.Summary.AverageScore != 2 || got.Summary.DominantMood != model.Happy || got.Summary.TotalEntries != 3 {
		t.Errorf("summary=%+v", got.Summary)
	}
}

func TestBuildWeeklyTrendAveragesActiveDays(t *testing.T) {
	records := []model.ChatRecord{
		record(model.Sad, analyticsNow.AddDate(0, 0, -2)),
		record(model.Motivated, analyticsNow.AddDate(0, 0, -1)),
		record(model.Confused, analyticsNow),
	}
	got := BuildWeeklyTrend(records, analyticsNow)

	// (-2 + 1 - 0.5) / 3
	if got.Summary.AverageScore != -0.5 {
		t.Errorf("average=%v", got.Summary.AverageScore)
	}
	// all three tie; earliest wins
	if got.Summary.DominantMood != model.Sad {
		t.Errorf("dominant=%s", got.Summary.DominantMood)
	}
}

func TestDominantMoodTieBreak(t *testing.T) {
	moods := []model.Mood{model.Anxious, model.Happy, model.Happy, model.Anxious}
	if got := dominantMood(moods); got != model.Anxious {
		t.Fatalf("got %s", got)
	}
}

func TestBuildDistribution(t *testing.T) {
	records := []model.ChatRecord{
		record(model.Sad, analyticsNow),
		record(model.Happy, analyticsNow),
		record(model.Happy, analyticsNow),
		record(model.Angry, analyticsNow),
		record(model.Happy, analyticsNow),
		record(model.Sad, analyticsNow),
	}
	got := BuildDistribution(records, 30)

	if got.PeriodDays != 30 || got.TotalEntries != 6 || len(got.Distribution) != 3 {
		t.Fatalf("got %+v", got)
	}
	want := []MoodShare{
		{Mood: model.Happy, Count: 3, Percentage: 50},
		{Mood: model.Sad, Count: 2, Percentage: 33.3},
		{Mood: model.Angry, Count: 1, Percentage: 16.7},
	}
	var sum float64
	for i, w := range want {
		if got.Distribution[i] != w {
			t.Errorf("[%d]=%+v, want %+v", i, got.Distribution[i], w)
		}
		sum += got.Distribution[i].Percentage
	}
	if math.Abs(sum-100) > 0.5 {
		t.Errorf("percentages sum to %v", sum)
	}
}

func TestBuildDistributionEmpty(t *testing.T) {
	got := BuildDistribution(nil, 7)
	if got.TotalEntries != 0 || got.Distribution == nil || len(got.Distribution) != 0 {
		t.Fatalf("got %#v", got)
	}
}

func TestClampPeriodDays(t *testing.T) {
	cases := map[int]int{-1: 30, 0: 30, 7: 7, 365: 365, 1000: 365}
	for in, want := range cases {
		if got := ClampPeriodDays(in); got != want {
			t.Errorf("ClampPeriodDays(%d)=%d, want %d", in, got, want)
		}
	}
}

func TestAnalyticsServiceReadsStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	for _, r := range []model.ChatRecord{
		record(model.Stressed, analyticsNow.AddDate(0, 0, -40)),
		record(model.Stressed, analyticsNow.AddDate(0, 0, -3)),
		record(model.Happy, analyticsNow.Add(-time.Hour)),
	} {
		if _, err := store.InsertChat(ctx, &r); err != nil {
			t.Fatalf("InsertChat: %v", err)
		}
	}

	svc := NewAnalyticsService(store, time.Second)
	svc.now = func() time.Time { return analyticsNow }

	trend, err := svc.WeeklyTrend(ctx, "user-1")
	if err != nil {
		t.Fatalf("WeeklyTrend: %v", err)
	}
	if trend.Summary.TotalEntries != 2 {
		t.Errorf("weekly total=%d", trend.Summary.TotalEntries)
	}

	dist, err := svc.MoodDistribution(ctx, "user-1", 0)
	if err != nil {
		t.Fatalf("MoodDistribution: %v", err)
	}
	if dist.PeriodDays != 30 || dist.TotalEntries != 2 {
		t.Errorf("dist=%+v", dist)
	}

	other, err := svc.MoodDistribution(ctx, "user-2", 365)
	if err != nil {
		t.Fatal(err)
	}
	if other.TotalEntries != 0 {
		t.Errorf("other user sees %d entries", other.TotalEntries)
	}
}

// The load window is the trailing 7x24 hours, so part of the day before the
// first bucket is counted in the summary without appearing in any point.
func TestWeeklyTrendSummaryIncludesPartialLeadingDay(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	for _, r := range []model.ChatRecord{
		record(model.Sad, time.Date(2026, 3, 3, 16, 0, 0, 0, time.UTC)),
		record(model.Happy, analyticsNow.Add(-5*time.Hour)),
	} {
		if _, err := store.InsertChat(ctx, &r); err != nil {
			t.Fatalf("InsertChat: %v", err)
		}
	}

	svc := NewAnalyticsService(store, time.Second)
	svc.now = func() time.Time { return analyticsNow }
	trend, err := svc.WeeklyTrend(ctx, "user-1")
	if err != nil {
		t.Fatalf("WeeklyTrend: %v", err)
	}

	var bucketed int
	for _, p := range trend.Trend {
		bucketed += p.Entries
	}
	if bucketed != 1 {
		t.Errorf("bucketed entries=%d, want 1", bucketed)
	}
	if trend.Summary.TotalEntries != 2 {
		t.Errorf("total_entries=%d, want 2", trend.Summary.TotalEntries)
	}
	// Sad seen first wins the tie even though its day has no point
	if trend.Summary.DominantMood != model.Sad {
		t.Errorf("dominant=%s, want Sad", trend.Summary.DominantMood)
	}
	if trend.Summary.AverageScore != 2 {
		t.Errorf("average=%v, want 2", trend.Summary.AverageScore)
	}
}
