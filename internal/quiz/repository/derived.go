package repository

import (
	"github.com/architect/quiztracker/internal/quiz/models"
)

// CompletionScore is the minimum quiz score that marks a topic completed
const CompletionScore = 70.0

// LevelForXP calculates the user's level from total XP. Every write that
// changes total_xp must recompute level with this formula.
func LevelForXP(totalXP int) int {
	return totalXP/100 + 1
}

// ComputeStreaks scans daily-activity maintained flags ordered
// most-recent-first. current is the consecutive run starting at the most
// recent day (0 if that day was not maintained); longest is the maximum run
// anywhere in the window.
func ComputeStreaks(maintained []bool) (current int, longest int) {
	for _, active := range maintained {
		if !active {
			break
		}
		current++
	}

	run := 0
	for _, active := range maintained {
		if active {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	return current, longest
}

// OverallGrade is the mean score over completed progress rows, 0 when none
func OverallGrade(progress []*models.CourseProgress) float64 {
	sum := 0.0
	count := 0
	for _, p := range progress {
		if p.Completed {
			sum += p.Score
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
