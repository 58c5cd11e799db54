package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/river20s/task-manager/models"
	"github.com/river20s/task-manager/services"
)

// TaskController serves the task list and its mutations.
type TaskController struct {
	tasks  *services.TaskService
	logger *zap.SugaredLogger
}

func NewTaskController(tasks *services.TaskService, logger *zap.SugaredLogger) *TaskController {
	return &TaskController{tasks: tasks, logger: logger}
}

// Home renders the full task list for the current user.
func (tc *TaskController) Home(c *gin.Context) {
	uid := c.GetUint("uid")

	tasks, err := tc.tasks.ListTasks(c.Request.Context(), uid)
	if err != nil {
		tc.logger.Errorw("task listing failed", "error", err, "userID", uid)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	tc.renderIndex(c, http.StatusOK, tasks, "", "")
}

// AddTask creates a task from the submitted form. Validation problems
// re-render the index page with a message instead of failing silently.
func (tc *TaskController) AddTask(c *gin.Context) {
	uid := c.GetUint("uid")

	_, err := tc.tasks.AddTask(c.Request.Context(), uid,
		c.PostForm("task"), c.PostForm("tags"), c.PostForm("deadline"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyTask), errors.Is(err, services.ErrInvalidDeadline):
			tasks, listErr := tc.tasks.ListTasks(c.Request.Context(), uid)
			if listErr != nil {
				tc.logger.Errorw("task listing failed", "error", listErr, "userID", uid)
				c.String(http.StatusInternalServerError, "internal error")
				return
			}
			tc.renderIndex(c, http.StatusBadRequest, tasks, "", err.Error())
		default:
			tc.logger.Errorw("task creation failed", "error", err, "userID", uid)
			c.String(http.StatusInternalServerError, "internal error")
		}
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Complete toggles a task's completion flag. Unknown, foreign and
// malformed ids all behave the same: nothing changes.
func (tc *TaskController) Complete(c *gin.Context) {
	uid := c.GetUint("uid")

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err == nil {
		if err := tc.tasks.ToggleComplete(c.Request.Context(), uid, uint(taskID)); err != nil {
			tc.logger.Errorw("toggle failed", "error", err, "userID", uid, "taskID", taskID)
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
	}

	c.Redirect(http.StatusFound, "/")
}

// ByTag renders the task list filtered to one tag, 404 on unknown names.
func (tc *TaskController) ByTag(c *gin.Context) {
	uid := c.GetUint("uid")
	tagName := c.Param("name")

	tasks, err := tc.tasks.ListTasksByTag(c.Request.Context(), uid, tagName)
	if err != nil {
		if errors.Is(err, services.ErrTagNotFound) {
			c.String(http.StatusNotFound, "tag not found")
			return
		}
		tc.logger.Errorw("tag filter failed", "error", err, "userID", uid, "tag", tagName)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	tc.renderIndex(c, http.StatusOK, tasks, tagName, "")
}

func (tc *TaskController) renderIndex(c *gin.Context, status int, tasks []models.Task, selectedTag, errMsg string) {
	tags, err := tc.tasks.AllTags(c.Request.Context())
	if err != nil {
		tc.logger.Errorw("tag listing failed", "error", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.HTML(status, "index.html", gin.H{
		"Tasks":       tasks,
		"Tags":        tags,
		"SelectedTag": selectedTag,
		"CurrentTime": time.Now().Format("2006-01-02 15:04:05"),
		"Error":       errMsg,
	})
}
