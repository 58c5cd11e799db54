package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/river20s/task-manager/models"
	"github.com/river20s/task-manager/utils"
)

const deadlineLayout = "2006-01-02"

// TaskService implements the task operations, always scoped to the owning
// user.
type TaskService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewTaskService(db *gorm.DB, logger *zap.SugaredLogger) *TaskService {
	return &TaskService{db: db, logger: logger}
}

// ListTasks returns all tasks owned by userID in creation order, tags
// included.
func (s *TaskService) ListTasks(ctx context.Context, userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&tasks).Error
	return tasks, err
}

// ListTasksByTag returns the user's tasks carrying the named tag. Returns
// ErrTagNotFound when no such tag exists.
func (s *TaskService) ListTasksByTag(ctx context.Context, userID uint, tagName string) ([]models.Task, error) {
	var tag models.Tag
	err := s.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(tagName)).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	var tasks []models.Task
	err = s.db.WithContext(ctx).
		Preload("Tags").
		Joins("JOIN task_tags ON task_tags.task_id = tasks.id").
		Where("task_tags.tag_id = ? AND tasks.user_id = ?", tag.ID, userID).
		Order("tasks.id ASC").
		Find(&tasks).Error
	return tasks, err
}

// AllTags returns every tag in the system, ordered by name.
func (s *TaskService) AllTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

// AddTask creates a task for userID with the tags named in tagsCSV and an
// optional YYYY-MM-DD deadline. Unknown tag names are created on the fly
// with a random color. The task row and its tag associations commit in one
// transaction.
func (s *TaskService) AddTask(ctx context.Context, userID uint, text, tagsCSV, deadline string) (*models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyTask
	}

	var due *time.Time
	if d := strings.TrimSpace(deadline); d != "" {
		parsed, err := time.Parse(deadlineLayout, d)
		if err != nil {
			return nil, ErrInvalidDeadline
		}
		due = &parsed
	}

	names := splitTagNames(tagsCSV)

	task := &models.Task{Text: text, UserID: userID, Deadline: due}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags := make([]models.Tag, 0, len(names))
		for _, name := range names {
			tag, err := upsertTag(tx, name)
			if err != nil {
				return err
			}
			tags = append(tags, tag)
		}

		task.Tags = tags
		return tx.Create(task).Error
	})
	if err != nil {
		s.logger.Errorw("task creation failed", "error", err, "userID", userID)
		return nil, err
	}

	s.logger.Infow("task created", "taskID", task.ID, "userID", userID, "tags", len(task.Tags))
	return task, nil
}

// ToggleComplete flips the completion flag of the task, provided it is
// owned by userID. A missing or foreign task is a silent no-op so callers
// cannot distinguish the two.
func (s *TaskService) ToggleComplete(ctx context.Context, userID, taskID uint) error {
	return s.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Update("completed", gorm.Expr("NOT completed")).Error
}

// upsertTag resolves name to a tag row, creating it if needed. The
// insert-ignore plus re-read keeps concurrent creations of the same name
// from violating the unique constraint.
func upsertTag(tx *gorm.DB, name string) (models.Tag, error) {
	tag := models.Tag{Name: name, Color: utils.RandomColor()}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
		return models.Tag{}, err
	}

	// A concurrent request may have won the insert, and an ignored insert
	// leaves no trustworthy id behind. Read the row back into a fresh value.
	var existing models.Tag
	if err := tx.Where("name = ?", name).First(&existing).Error; err != nil {
		return models.Tag{}, err
	}

	return existing, nil
}

// splitTagNames splits a comma-separated list, trims each name, drops
// empties and deduplicates case-sensitively, keeping first-seen order.
func splitTagNames(csv string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, raw := range strings.Split(csv, ",") {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
