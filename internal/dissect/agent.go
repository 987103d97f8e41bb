package dissect

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goalpost-app/goalpost/internal/llm"
	"github.com/goalpost-app/goalpost/internal/week"
)

// Request describes the goal to dissect.
type Request struct {
	Title           string
	Description     string
	StartDate       time.Time
	EndDate         time.Time
	WeeklyHours     int
	ExperienceLevel string
}

// WeekLoad summarizes one planned week's estimated effort.
type WeekLoad struct {
	Week      int `json:"week"`
	Hours     int `json:"hours"`
	Capacity  int `json:"capacity"`
	Excess    int `json:"excess"`
	TaskCount int `json:"task_count"`
}

// Plan is a full dissection result, including the load analysis shown to
// the user before the tasks are committed.
type Plan struct {
	Tasks               []PlannedTask `json:"-"`
	TotalWeeks          int           `json:"total_weeks"`
	WeeklyHours         int           `json:"weekly_hours"`
	TotalHoursAvailable int           `json:"total_hours_available"`
	TotalHoursEstimated int           `json:"total_hours_estimated"`
	Achievable          bool          `json:"is_achievable"`
	OverloadedWeeks     []WeekLoad    `json:"overloaded_weeks"`
	Warnings            []string      `json:"warnings"`
}

// Agent produces tailored task plans with a language model. The model
// decides how many tasks a goal needs; the agent decides when they happen.
type Agent struct {
	client llm.Client
}

func NewAgent(client llm.Client) *Agent {
	return &Agent{client: client}
}

const systemPrompt = `You are an expert project planner and learning coach.
You break down goals into SPECIFIC, ACTIONABLE tasks that can be completed and verified.

RULES:
1. YOU decide how many tasks are appropriate for the goal (could be 1 or could be 20)
2. If the user specifies a number of tasks in their description, respect that
3. Each task must be specific with exact quantities, tools, or deliverables
4. Tasks should progressively build toward the goal
5. Each task should take 1-8 hours depending on complexity

Always respond with a valid JSON array only.`

// generatedTask is one entry of the model's JSON array. Hours tolerates
// both numeric and quoted-numeric forms; models emit either.
type generatedTask struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Hours       flexHours `json:"hours"`
}

type flexHours int

func (h *flexHours) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		// Unparseable hours fall back to the default estimate.
		*h = 0
		return nil
	}
	*h = flexHours(n)
	return nil
}

// Dissect asks the model for a task breakdown and distributes the result
// across the goal's weeks. It returns an error when the model is
// unreachable or its output is unusable; callers fall back to PlanEvenly.
func (a *Agent) Dissect(ctx context.Context, req Request) (*Plan, error) {
	totalWeeks := totalWeeksBetween(req.StartDate, req.EndDate)
	weeklyHours := req.WeeklyHours
	if weeklyHours <= 0 {
		weeklyHours = 5
	}
	totalHours := weeklyHours * totalWeeks

	resp, err := a.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskDissect,
		SystemPrompt: systemPrompt,
		UserPrompt:   buildUserPrompt(req, totalWeeks, weeklyHours, totalHours),
	})
	if err != nil {
		return nil, fmt.Errorf("generating task breakdown: %w", err)
	}

	generated, err := parseGenerated(resp.Text)
	if err != nil {
		return nil, err
	}

	tasks := distribute(generated, week.StartOf(req.StartDate), totalWeeks)
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: no valid tasks were generated", llm.ErrInvalidOutput)
	}

	return assemblePlan(tasks, totalWeeks, weeklyHours, totalHours), nil
}

func buildUserPrompt(req Request, totalWeeks, weeklyHours, totalHours int) string {
	desc := req.Description
	if desc == "" {
		desc = "No additional details provided"
	}
	level := req.ExperienceLevel
	if level == "" {
		level = "intermediate"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this goal and create the RIGHT NUMBER of specific tasks:\n\n")
	fmt.Fprintf(&b, "GOAL: %s\n", req.Title)
	fmt.Fprintf(&b, "DESCRIPTION: %s\n", desc)
	fmt.Fprintf(&b, "TIMELINE: %d weeks available\n", totalWeeks)
	fmt.Fprintf(&b, "TOTAL TIME: %d hours (%d hours per week)\n", totalHours, weeklyHours)
	fmt.Fprintf(&b, "EXPERIENCE LEVEL: %s\n\n", level)
	b.WriteString(`IMPORTANT:
- If the description says "1 task" or "single task" - create exactly 1 task
- If the description says "5 tasks" - create exactly 5 tasks
- If no number specified, decide based on goal complexity and timeline
- Simple goals might need 2-3 tasks, complex goals might need 10-15

Requirements for each task:
- Include specific tool/resource names (e.g., "Python.org tutorial", "VS Code", specific book names)
- Include exact quantities where applicable (e.g., "chapters 1-4", "5 exercises", "2 miles")
- Be completable and verifiable

Return ONLY a JSON array:
[
  {"title": "Specific task with tool/quantity/deliverable", "description": "Detailed steps", "hours": 3},
  ...
]`)
	return b.String()
}

// parseGenerated accepts both a bare JSON array and the object-wrapped
// {"tasks": [...]} form, then drops malformed entries.
func parseGenerated(raw string) ([]generatedTask, error) {
	list, err := llm.ExtractJSON[[]generatedTask](raw, nil)
	if err != nil {
		wrapped, werr := llm.ExtractJSON[struct {
			Tasks []generatedTask `json:"tasks"`
		}](raw, nil)
		if werr != nil {
			return nil, err
		}
		list = wrapped.Tasks
	}

	var valid []generatedTask
	for _, t := range list {
		if len(t.Title) < 10 {
			continue
		}
		hours := int(t.Hours)
		if hours <= 0 {
			hours = 3
		}
		t.Hours = flexHours(min(hours, 8))
		if t.Description == "" {
			t.Description = t.Title
		}
		valid = append(valid, t)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: no valid tasks were generated", llm.ErrInvalidOutput)
	}
	return valid, nil
}

// distribute spreads N generated tasks across totalWeeks so that early
// tasks land in early weeks and every task gets a home even when there
// are more tasks than weeks.
func distribute(generated []generatedTask, startMonday time.Time, totalWeeks int) []PlannedTask {
	tasksPerWeek := float64(len(generated)) / float64(totalWeeks)

	tasks := make([]PlannedTask, 0, len(generated))
	for i, g := range generated {
		weekNum := int(float64(i) / tasksPerWeek)
		if weekNum > totalWeeks-1 {
			weekNum = totalWeeks - 1
		}
		ws := startMonday.AddDate(0, 0, weekNum*7)
		tasks = append(tasks, PlannedTask{
			Title:       g.Title,
			Description: g.Description,
			WeekStart:   ws,
			WeekEnd:     week.EndOf(ws),
			YearWeek:    week.Label(ws),
			TargetCount: int(g.Hours),
			SortOrder:   i,
		})
	}
	return tasks
}

func assemblePlan(tasks []PlannedTask, totalWeeks, weeklyHours, totalHours int) *Plan {
	hoursByWeek := make(map[string]*WeekLoad)
	weekNums := make(map[string]int)
	total := 0

	for _, t := range tasks {
		wl, ok := hoursByWeek[t.YearWeek]
		if !ok {
			wl = &WeekLoad{Capacity: weeklyHours}
			hoursByWeek[t.YearWeek] = wl
			weekNums[t.YearWeek] = len(weekNums) + 1
		}
		wl.Week = weekNums[t.YearWeek]
		wl.Hours += t.TargetCount
		wl.TaskCount++
		total += t.TargetCount
	}

	plan := &Plan{
		Tasks:               tasks,
		TotalWeeks:          totalWeeks,
		WeeklyHours:         weeklyHours,
		TotalHoursAvailable: totalHours,
		TotalHoursEstimated: total,
		Achievable:          total <= totalHours,
	}

	for _, t := range tasks {
		wl := hoursByWeek[t.YearWeek]
		if wl == nil || wl.Hours <= weeklyHours {
			continue
		}
		wl.Excess = wl.Hours - weeklyHours
		plan.OverloadedWeeks = append(plan.OverloadedWeeks, *wl)
		plan.Warnings = append(plan.Warnings,
			fmt.Sprintf("Week %d needs %dh but you have %dh budgeted", wl.Week, wl.Hours, wl.Capacity))
		hoursByWeek[t.YearWeek] = nil
	}

	return plan
}

func totalWeeksBetween(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	weeks := days / 7
	if weeks < 1 {
		return 1
	}
	return weeks
}
