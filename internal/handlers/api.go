package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/common"
	"github.com/ternarybob/finhealth/internal/interfaces"
)

type APIHandler struct {
	logger    arbor.ILogger
	scheduler interfaces.SchedulerService
}

// NewAPIHandler creates the version/health handler. scheduler may be nil.
func NewAPIHandler(logger arbor.ILogger, scheduler interfaces.SchedulerService) *APIHandler {
	return &APIHandler{
		logger:    logger,
		scheduler: scheduler,
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, common.GetVersionInfo())
}

// HealthHandler returns health check status and background job state
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	response := map[string]interface{}{
		"status": "ok",
	}
	if h.scheduler != nil {
		response["scheduler_running"] = h.scheduler.IsRunning()
		response["jobs"] = h.scheduler.GetJobStatus()
	}

	WriteJSON(w, http.StatusOK, response)
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
