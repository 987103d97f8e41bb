package dissect

import (
	"context"
	"testing"

	"github.com/goalpost-app/goalpost/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	text string
	err  error
}

func (s stubClient) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.GenerateResponse{Text: s.text, Model: "stub"}, nil
}

func (s stubClient) Available(ctx context.Context) bool { return s.err == nil }

func dissectReq() Request {
	return Request{
		Title:       "Learn Go fundamentals",
		Description: "",
		StartDate:   date(2025, 3, 10), // Monday
		EndDate:     date(2025, 3, 24), // two weeks
		WeeklyHours: 5,
	}
}

func TestAgent_Dissect_DistributesAcrossWeeks(t *testing.T) {
	agent := NewAgent(stubClient{text: `[
		{"title": "Work through the Tour of Go sections 1-3", "hours": 3},
		{"title": "Read chapters 1-2 of The Go Programming Language", "hours": 2},
		{"title": "Build a CLI todo app with the flag package", "hours": 4},
		{"title": "Write table-driven tests for the todo app", "hours": 4}
	]`})

	plan, err := agent.Dissect(context.Background(), dissectReq())
	require.NoError(t, err)
	require.Len(t, plan.Tasks, 4)

	// Four tasks over two weeks: two per week, in order.
	week0 := date(2025, 3, 10)
	week1 := date(2025, 3, 17)
	assert.Equal(t, week0, plan.Tasks[0].WeekStart)
	assert.Equal(t, week0, plan.Tasks[1].WeekStart)
	assert.Equal(t, week1, plan.Tasks[2].WeekStart)
	assert.Equal(t, week1, plan.Tasks[3].WeekStart)

	assert.Equal(t, "2025-10", plan.Tasks[0].YearWeek)
	assert.Equal(t, "2025-11", plan.Tasks[3].YearWeek)
	assert.Equal(t, 0, plan.Tasks[0].SortOrder)
	assert.Equal(t, 3, plan.Tasks[3].SortOrder)
}

func TestAgent_Dissect_PlanSummary(t *testing.T) {
	agent := NewAgent(stubClient{text: `[
		{"title": "Work through the Tour of Go sections 1-3", "hours": 3},
		{"title": "Read chapters 1-2 of The Go Programming Language", "hours": 2},
		{"title": "Build a CLI todo app with the flag package", "hours": 4},
		{"title": "Write table-driven tests for the todo app", "hours": 4}
	]`})

	plan, err := agent.Dissect(context.Background(), dissectReq())
	require.NoError(t, err)

	assert.Equal(t, 2, plan.TotalWeeks)
	assert.Equal(t, 5, plan.WeeklyHours)
	assert.Equal(t, 10, plan.TotalHoursAvailable)
	assert.Equal(t, 13, plan.TotalHoursEstimated)
	assert.False(t, plan.Achievable)

	// Week 2 carries 8h against a 5h budget.
	require.Len(t, plan.OverloadedWeeks, 1)
	assert.Equal(t, 2, plan.OverloadedWeeks[0].Week)
	assert.Equal(t, 8, plan.OverloadedWeeks[0].Hours)
	assert.Equal(t, 3, plan.OverloadedWeeks[0].Excess)
	assert.Equal(t, 2, plan.OverloadedWeeks[0].TaskCount)
	require.Len(t, plan.Warnings, 1)
	assert.Equal(t, "Week 2 needs 8h but you have 5h budgeted", plan.Warnings[0])
}

func TestAgent_Dissect_FiltersAndClampsEntries(t *testing.T) {
	agent := NewAgent(stubClient{text: `[
		{"title": "short", "hours": 2},
		{"title": "Run intervals at the local track", "hours": "12"},
		{"title": "Stretch and foam-roll after each session"}
	]`})

	plan, err := agent.Dissect(context.Background(), dissectReq())
	require.NoError(t, err)
	require.Len(t, plan.Tasks, 2)

	// Quoted "12" parses, then caps at 8; missing hours default to 3.
	assert.Equal(t, 8, plan.Tasks[0].TargetCount)
	assert.Equal(t, 3, plan.Tasks[1].TargetCount)

	// Missing descriptions echo the title.
	assert.Equal(t, plan.Tasks[1].Title, plan.Tasks[1].Description)
}

func TestAgent_Dissect_AcceptsWrappedTaskList(t *testing.T) {
	agent := NewAgent(stubClient{text: `{"tasks": [
		{"title": "Draft the outline in Google Docs", "hours": 2}
	]}`})

	plan, err := agent.Dissect(context.Background(), dissectReq())
	require.NoError(t, err)
	require.Len(t, plan.Tasks, 1)
	assert.Equal(t, "Draft the outline in Google Docs", plan.Tasks[0].Title)
}

func TestAgent_Dissect_AcceptsFencedOutput(t *testing.T) {
	agent := NewAgent(stubClient{text: "Here is your plan:\n```json\n" +
		`[{"title": "Swim 20 laps at the community pool", "hours": 1}]` + "\n```"})

	plan, err := agent.Dissect(context.Background(), dissectReq())
	require.NoError(t, err)
	require.Len(t, plan.Tasks, 1)
}

func TestAgent_Dissect_AllEntriesInvalid(t *testing.T) {
	agent := NewAgent(stubClient{text: `[{"title": "tiny", "hours": 2}]`})

	_, err := agent.Dissect(context.Background(), dissectReq())
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestAgent_Dissect_ClientError(t *testing.T) {
	agent := NewAgent(stubClient{err: llm.ErrModelUnavailable})

	_, err := agent.Dissect(context.Background(), dissectReq())
	assert.ErrorIs(t, err, llm.ErrModelUnavailable)
}

func TestAgent_Dissect_NonJSONOutput(t *testing.T) {
	agent := NewAgent(stubClient{text: "I suggest you start by thinking about your goal."})

	_, err := agent.Dissect(context.Background(), dissectReq())
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestTotalWeeksBetween(t *testing.T) {
	assert.Equal(t, 1, totalWeeksBetween(date(2025, 3, 10), date(2025, 3, 12)))
	assert.Equal(t, 2, totalWeeksBetween(date(2025, 3, 10), date(2025, 3, 24)))
	assert.Equal(t, 1, totalWeeksBetween(date(2025, 3, 10), date(2025, 3, 10)))
}

func TestAgent_Dissect_MoreTasksThanWeeks(t *testing.T) {
	req := dissectReq()
	req.EndDate = req.StartDate.AddDate(0, 0, 7) // one week

	agent := NewAgent(stubClient{text: `[
		{"title": "Research destination options online", "hours": 1},
		{"title": "Compare flight prices on two sites", "hours": 1},
		{"title": "Book the hotel and confirm dates", "hours": 1}
	]`})

	plan, err := agent.Dissect(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, plan.Tasks, 3)
	for _, task := range plan.Tasks {
		assert.Equal(t, date(2025, 3, 10), task.WeekStart)
	}
}
