package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK             = "ok"
	statusStartRequested = "start_requested"
	statusAbortRequested = "abort_requested"
	statusProfileLoaded  = "profile_loaded"

	errStartRun      = "failed to request run start"
	errAbortRun      = "failed to request abort"
	errGetState      = "failed to load state"
	errGetProfile    = "failed to load profile"
	errReloadProfile = "failed to reload profile"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status and include the current state if available
// (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	st, err := h.services.Monitoring.GetState(ctx)
	if err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Request a profile run
// @Description  Latches a start request; the control loop picks it up once idle. Rejected while a run is active.
// @Tags         kiln
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/kiln/start [post]
// @Security     BearerAuth
func (h *Handler) startRun(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Kiln.Start(ctx); err != nil {
		h.logAndJSONError(c, http.StatusConflict, err.Error(), "kiln_start_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusStartRequested, gin.H{})
}

// @Summary      Abort the active run
// @Description  Asserts the level-triggered abort signal; the run observes it on its next poll.
// @Tags         kiln
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/kiln/abort [post]
// @Security     BearerAuth
func (h *Handler) abortRun(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Kiln.Abort(ctx); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errAbortRun, "kiln_abort_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusAbortRequested, gin.H{})
}

// @Summary      Get kiln state
// @Tags         kiln
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/kiln/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "kiln_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Get loaded profile
// @Tags         kiln
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, phases"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/kiln/profile [get]
// @Security     BearerAuth
func (h *Handler) getProfile(c *gin.Context) {
	ctx := c.Request.Context()
	profile, err := h.services.Kiln.Profile(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetProfile, "kiln_get_profile_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  profile.Count(),
		"phases": profile.Phases,
	})
}

// @Summary      Reload profile from the document source
// @Description  Re-reads the profile document and replaces the loaded profile wholesale. Rejected while a run is active; an unreadable document degrades to an empty profile.
// @Tags         kiln
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, count, phases"
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/kiln/profile/reload [post]
// @Security     BearerAuth
func (h *Handler) reloadProfile(c *gin.Context) {
	ctx := c.Request.Context()
	profile, err := h.services.Kiln.ReloadProfile(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusConflict, err.Error(), "kiln_reload_profile_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": statusProfileLoaded,
		"count":  profile.Count(),
		"phases": profile.Phases,
	})
}
