package devserver

import (
	"fmt"
	"os"
	"time"

	"github.com/thenoetrevino/taskboard/internal/models"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Tasks []seedTask `yaml:"tasks"`
}

type seedTask struct {
	ID          string     `yaml:"id"`
	ProjectID   string     `yaml:"project"`
	Status      string     `yaml:"status"`
	Order       int        `yaml:"order"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Priority    string     `yaml:"priority"`
	DueDate     *time.Time `yaml:"due"`
	Assignee    string     `yaml:"assignee"`
}

// LoadSeed reads tasks from a YAML seed file
func LoadSeed(path string) ([]models.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	tasks := make([]models.Task, 0, len(f.Tasks))
	for _, st := range f.Tasks {
		tasks = append(tasks, models.Task{
			ID:          models.TaskID(st.ID),
			ProjectID:   st.ProjectID,
			Status:      models.Status(st.Status),
			Order:       st.Order,
			Title:       st.Title,
			Description: st.Description,
			Priority:    models.Priority(st.Priority),
			DueDate:     st.DueDate,
			Assignee:    st.Assignee,
		})
	}
	return tasks, nil
}

// SampleTasks returns a small demo project relative to now
func SampleTasks(projectID, assignee string, now time.Time) []models.Task {
	soon := now.Add(6 * time.Hour)
	later := now.Add(72 * time.Hour)
	return []models.Task{
		{ID: "1", ProjectID: projectID, Status: models.StatusBacklog, Order: 0, Title: "Collect requirements", Priority: models.PriorityLow, Assignee: assignee},
		{ID: "2", ProjectID: projectID, Status: models.StatusTodo, Order: 0, Title: "Draft schema", Priority: models.PriorityMedium, Assignee: assignee, DueDate: &later},
		{ID: "3", ProjectID: projectID, Status: models.StatusTodo, Order: 1, Title: "Write migration", Priority: models.PriorityHigh, Assignee: assignee, DueDate: &soon,
			Description: "Add the `status` and `order` columns.\n\n- backfill existing rows\n- add index"},
		{ID: "4", ProjectID: projectID, Status: models.StatusInProgress, Order: 0, Title: "Board drag and drop", Priority: models.PriorityHigh, Assignee: assignee},
		{ID: "5", ProjectID: projectID, Status: models.StatusReview, Order: 0, Title: "Reminder emails", Priority: models.PriorityMedium, Assignee: assignee},
		{ID: "6", ProjectID: projectID, Status: models.StatusDone, Order: 0, Title: "Project setup", Priority: models.PriorityLow, Assignee: assignee},
	}
}
