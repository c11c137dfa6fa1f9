package dashboard

import (
	"math"
)

// MissionStatus is the lifecycle state of a mission.
type MissionStatus string

const (
	MissionPending   MissionStatus = "pending"
	MissionActive    MissionStatus = "active"
	MissionCompleted MissionStatus = "completed"
	MissionFailed    MissionStatus = "failed"
)

// MissionPriority ranks missions.
type MissionPriority string

const (
	PriorityLow      MissionPriority = "low"
	PriorityMedium   MissionPriority = "medium"
	PriorityHigh     MissionPriority = "high"
	PriorityCritical MissionPriority = "critical"
)

// Mission is a static sample operation. Missions live only on the client.
type Mission struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	Status        MissionStatus   `json:"status"`
	Priority      MissionPriority `json:"priority"`
	AssignedCatID string          `json:"assigned_cat_id,omitempty"`
	StartDate     string          `json:"start_date,omitempty"`
	EndDate       string          `json:"end_date,omitempty"`
	// Progress is a percentage, 0 to 100.
	Progress int `json:"progress"`
}

var sampleMissions = []Mission{
	{
		ID:            "1",
		Title:         "Operation Yarn Ball",
		Description:   "Infiltrate the enemy's yarn manufacturing facility",
		Location:      "Tokyo, Japan",
		Status:        MissionActive,
		Priority:      PriorityHigh,
		AssignedCatID: "1",
		StartDate:     "2024-01-15",
		Progress:      65,
	},
	{
		ID:            "2",
		Title:         "Catnip Cartel Investigation",
		Description:   "Investigate illegal catnip distribution network",
		Location:      "Miami, FL",
		Status:        MissionCompleted,
		Priority:      PriorityCritical,
		AssignedCatID: "2",
		StartDate:     "2024-01-10",
		EndDate:       "2024-01-20",
		Progress:      100,
	},
	{
		ID:          "3",
		Title:       "Laser Pointer Heist",
		Description: "Recover stolen prototype laser pointer technology",
		Location:    "Berlin, Germany",
		Status:      MissionPending,
		Priority:    PriorityMedium,
		Progress:    0,
	},
	{
		ID:            "4",
		Title:         "Tuna Factory Surveillance",
		Description:   "Monitor suspicious activity at tuna processing plant",
		Location:      "Barcelona, Spain",
		Status:        MissionActive,
		Priority:      PriorityLow,
		AssignedCatID: "3",
		StartDate:     "2024-01-18",
		Progress:      30,
	},
}

// SampleMissions returns a copy of the sample mission board.
func SampleMissions() []Mission {
	return append([]Mission(nil), sampleMissions...)
}

// MissionStats counts missions by status.
type MissionStats struct {
	Total     int
	Active    int
	Completed int
	Pending   int
	// SuccessRate is the rounded percentage of completed missions.
	SuccessRate int
}

// MissionSummary derives MissionStats from missions.
func MissionSummary(missions []Mission) MissionStats {
	s := MissionStats{Total: len(missions)}
	for _, m := range missions {
		switch m.Status {
		case MissionActive:
			s.Active++
		case MissionCompleted:
			s.Completed++
		case MissionPending:
			s.Pending++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// AssignedCat finds the cat assigned to m among cats.
func AssignedCat(cats []Cat, m Mission) (Cat, bool) {
	if m.AssignedCatID == "" {
		return Cat{}, false
	}
	for _, c := range cats {
		if c.ID == m.AssignedCatID {
			return c, true
		}
	}
	return Cat{}, false
}
