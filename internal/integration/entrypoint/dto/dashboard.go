package dto

import (
	"github.com/self-focus/backend/internal/application/usecase/dashboard"
	"github.com/self-focus/backend/internal/domain/valueobject"
)

// GoalCountsResponse represents goal counts by status.
type GoalCountsResponse struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Paused    int `json:"paused"`
}

// RecentCheckInResponse represents a recent check-in on the dashboard.
type RecentCheckInResponse struct {
	HabitLogResponse
	HabitName string `json:"habit_name"`
}

// OverviewResponse represents the dashboard overview.
type OverviewResponse struct {
	Goals                GoalCountsResponse      `json:"goals"`
	RecentGoals          []GoalResponse          `json:"recent_goals"`
	Balance              string                  `json:"balance"`
	MonthIncome          string                  `json:"month_income"`
	MonthExpenses        string                  `json:"month_expenses"`
	RecentTransactions   []TransactionResponse   `json:"recent_transactions"`
	ActiveHabits         int                     `json:"active_habits"`
	HabitsCompletedToday int                     `json:"habits_completed_today"`
	Habits               []HabitResponse         `json:"habits"`
	RecentCheckIns       []RecentCheckInResponse `json:"recent_check_ins"`
}

// GoalProgressResponse represents one goal's progress on the stats page.
type GoalProgressResponse struct {
	GoalID        string `json:"goal_id"`
	Title         string `json:"title"`
	Progress      int    `json:"progress"`
	DaysRemaining *int   `json:"days_remaining,omitempty"`
}

// StatsResponse represents the dashboard statistics.
type StatsResponse struct {
	SpendingByCategory []CategoryAmountResponse `json:"spending_by_category"`
	GoalsProgress      []GoalProgressResponse   `json:"goals_progress"`
}

// TrendPeriodResponse represents the period information in the response.
type TrendPeriodResponse struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Granularity string `json:"granularity"`
}

// TrendPointResponse represents one period of a trend series.
type TrendPointResponse struct {
	PeriodStart      string `json:"period_start"`
	PeriodEnd        string `json:"period_end"`
	PeriodLabel      string `json:"period_label"`
	Income           string `json:"income"`
	Expenses         string `json:"expenses"`
	Net              string `json:"net"`
	TransactionCount int    `json:"transaction_count"`
}

// TrendsResponse represents the response for the trends API.
type TrendsResponse struct {
	Period TrendPeriodResponse  `json:"period"`
	Trends []TrendPointResponse `json:"trends"`
}

// ToOverviewResponse converts a GetOverviewOutput to OverviewResponse.
func ToOverviewResponse(output *dashboard.GetOverviewOutput) OverviewResponse {
	response := OverviewResponse{
		Goals: GoalCountsResponse{
			Total:     output.Goals.Total,
			Active:    output.Goals.Active,
			Completed: output.Goals.Completed,
			Paused:    output.Goals.Paused,
		},
		RecentGoals:          make([]GoalResponse, len(output.RecentGoals)),
		Balance:              output.Balance.StringFixed(2),
		MonthIncome:          output.MonthIncome.StringFixed(2),
		MonthExpenses:        output.MonthExpenses.StringFixed(2),
		RecentTransactions:   make([]TransactionResponse, len(output.RecentTransactions)),
		ActiveHabits:         output.ActiveHabits,
		HabitsCompletedToday: output.HabitsCompletedToday,
		Habits:               make([]HabitResponse, len(output.Habits)),
		RecentCheckIns:       make([]RecentCheckInResponse, len(output.RecentCheckIns)),
	}

	for i, g := range output.RecentGoals {
		response.RecentGoals[i] = ToGoalResponse(g)
	}
	for i, t := range output.RecentTransactions {
		response.RecentTransactions[i] = ToTransactionResponse(t)
	}
	for i, h := range output.Habits {
		response.Habits[i] = ToHabitResponse(h)
	}
	for i, c := range output.RecentCheckIns {
		response.RecentCheckIns[i] = RecentCheckInResponse{
			HabitLogResponse: ToHabitLogResponse(c.Log),
			HabitName:        c.HabitName,
		}
	}

	return response
}

// ToStatsResponse converts a GetStatsOutput to StatsResponse.
func ToStatsResponse(output *dashboard.GetStatsOutput) StatsResponse {
	progress := make([]GoalProgressResponse, len(output.GoalsProgress))
	for i, p := range output.GoalsProgress {
		progress[i] = GoalProgressResponse{
			GoalID:        p.GoalID.String(),
			Title:         p.Title,
			Progress:      p.Progress,
			DaysRemaining: p.DaysRemaining,
		}
	}
	return StatsResponse{
		SpendingByCategory: ToCategoryAmountResponses(output.SpendingByCategory),
		GoalsProgress:      progress,
	}
}

// ToTrendsResponse converts a GetTrendsOutput to TrendsResponse.
func ToTrendsResponse(output *dashboard.GetTrendsOutput) TrendsResponse {
	trends := make([]TrendPointResponse, len(output.Trends))
	for i, t := range output.Trends {
		trends[i] = TrendPointResponse{
			PeriodStart:      t.PeriodStart.Format(valueobject.DateLayout),
			PeriodEnd:        t.PeriodEnd.Format(valueobject.DateLayout),
			PeriodLabel:      t.PeriodLabel,
			Income:           t.Income.StringFixed(2),
			Expenses:         t.Expenses.StringFixed(2),
			Net:              t.Net.StringFixed(2),
			TransactionCount: t.TransactionCount,
		}
	}

	return TrendsResponse{
		Period: TrendPeriodResponse{
			StartDate:   output.StartDate.Format(valueobject.DateLayout),
			EndDate:     output.EndDate.Format(valueobject.DateLayout),
			Granularity: string(output.Granularity),
		},
		Trends: trends,
	}
}
