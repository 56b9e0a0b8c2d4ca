package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wortschatz/internal/tasks"
)

// TasksController handles task queue endpoints.
type TasksController struct {
	queue             TaskQueue
	defaultStartIndex int
}

// NewTasksController creates a new TasksController.
func NewTasksController(queue TaskQueue, defaultStartIndex int) *TasksController {
	return &TasksController{
		queue:             queue,
		defaultStartIndex: defaultStartIndex,
	}
}

// GenerateAudioRequest is the optional body of POST /api/audio/generate.
type GenerateAudioRequest struct {
	StartIndex *int `json:"start_index,omitempty" form:"start_index"`
}

// GenerateAudio handles POST /api/audio/generate
// Queues synthesis of every missing cue file from start_index onward.
func (tc *TasksController) GenerateAudio(c *gin.Context) {
	var req GenerateAudioRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	}

	task := tasks.GenerateMissingAudioTask{StartIndex: tc.defaultStartIndex}
	if req.StartIndex != nil {
		if *req.StartIndex < 0 {
			respondBadRequest(c, "start_index must not be negative")
			return
		}
		task.StartIndex = *req.StartIndex
	}

	taskID, err := tc.queue.Enqueue(c.Request.Context(), task)
	if err != nil {
		respondInternalError(c, err, "enqueue audio generation")
		return
	}

	respondAccepted(c, "task enqueued", gin.H{
		"task_id":     taskID,
		"type":        task.Config().Name,
		"start_index": task.StartIndex,
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	statusName := tasks.StatusName(status)
	if statusName == "not_found" {
		respondNotFound(c, "Task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": statusName,
	})
}
