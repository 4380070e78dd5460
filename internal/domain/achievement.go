package domain

import (
	"sort"
	"time"
)

// Achievement is a milestone unlocked by logging history.
type Achievement struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Achieved    bool   `json:"achieved"`
}

// Achievement names.
const (
	AchievementFirstLog         = "First Log"
	AchievementWaterChampion    = "Water Champion"
	AchievementBMIImprover      = "BMI Improver"
	AchievementConsistentLogger = "Consistent Logger"
	AchievementWeekStreak       = "Week Streak"
)

const (
	weekStreakDays       = 7
	consistentLoggerDays = 30
	waterChampionDays    = 7
	bmiImprovement       = 1.0
)

// EvaluateAchievements derives the achievement list from a session's history
// (oldest first) and its daily hydration totals. Days are bucketed in loc.
func EvaluateAchievements(history []HistoryEntry, waterTotals map[string]int, loc *time.Location) []Achievement {
	if loc == nil {
		loc = time.Local
	}
	streak := longestDayStreak(history, loc)

	improved := false
	if len(history) > 1 {
		first, latest := history[0].Report.BMI, history[len(history)-1].Report.BMI
		improved = first-latest >= bmiImprovement-1e-9
	}

	waterDays := 0
	if len(history) > 0 {
		target := history[len(history)-1].Report.WaterIntakeMl
		for _, total := range waterTotals {
			if target > 0 && total >= target {
				waterDays++
			}
		}
	}

	return []Achievement{
		{ID: 1, Name: AchievementFirstLog, Description: "Logged your first health data", Achieved: len(history) > 0},
		{ID: 2, Name: AchievementWaterChampion, Description: "Met water intake goal for 7 days", Achieved: waterDays >= waterChampionDays},
		{ID: 3, Name: AchievementBMIImprover, Description: "Improved BMI by 1 point", Achieved: improved},
		{ID: 4, Name: AchievementConsistentLogger, Description: "Logged data for 30 consecutive days", Achieved: streak >= consistentLoggerDays},
		{ID: 5, Name: AchievementWeekStreak, Description: "Logged health data for 7 consecutive days", Achieved: streak >= weekStreakDays},
	}
}

// NewlyAchieved returns the achievements achieved in after but not in before.
func NewlyAchieved(before, after []Achievement) []Achievement {
	was := make(map[string]bool, len(before))
	for _, a := range before {
		was[a.Name] = a.Achieved
	}
	var out []Achievement
	for _, a := range after {
		if a.Achieved && !was[a.Name] {
			out = append(out, a)
		}
	}
	return out
}

func longestDayStreak(history []HistoryEntry, loc *time.Location) int {
	seen := make(map[string]time.Time)
	for _, e := range history {
		t := e.CreatedAt.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		seen[day.Format("2006-01-02")] = day
	}
	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	best, run := 0, 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
