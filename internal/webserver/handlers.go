package webserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/anatolykoptev/go_scriptstyle/internal/engine"
)

type errorBody struct {
	Error string `json:"error"`
}

type analyzeRequest struct {
	VideoLink string `json:"video_link" form:"video_link"`
}

type analyzeResponse struct {
	Success bool                `json:"success"`
	VideoID string              `json:"video_id"`
	Profile engine.StyleProfile `json:"profile"`
}

type generateRequest struct {
	Topic   string          `json:"topic"`
	Profile json.RawMessage `json:"profile"`
}

type generateResponse struct {
	Script string `json:"script"`
}

type handler struct {
	pipeline *engine.Pipeline
}

func (h *handler) analyzeTranscript(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Debug("web: bind analyze request", slog.Any("error", err))
	}

	a, err := h.pipeline.AnalyzeLink(c.Request.Context(), req.VideoLink)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analyzeResponse{Success: true, VideoID: a.VideoID, Profile: a.Profile})
}

func (h *handler) generateScript(c *gin.Context) {
	req, err := bindGenerate(c)
	if err != nil {
		respondError(c, err)
		return
	}
	profile, err := engine.DecodeProfile(req.Profile)
	if err != nil {
		respondError(c, err)
		return
	}
	script, err := h.pipeline.Generate(c.Request.Context(), profile, req.Topic)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, generateResponse{Script: script})
}

// bindGenerate reads topic and profile from a JSON body or a form.
// A form profile is JSON text or plain analysis text.
func bindGenerate(c *gin.Context) (generateRequest, error) {
	var req generateRequest
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, errors.Join(engine.ErrNoPendingProfile, err)
		}
		return req, nil
	}

	req.Topic = c.PostForm("topic")
	raw := strings.TrimSpace(c.PostForm("profile"))
	switch {
	case raw == "":
	case json.Valid([]byte(raw)):
		req.Profile = json.RawMessage(raw)
	default:
		quoted, _ := json.Marshal(raw)
		req.Profile = quoted
	}
	return req, nil
}

// respondError writes the stable message for err; details go to the log only.
func respondError(c *gin.Context, err error) {
	status := engine.HTTPStatus(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(c.Request.Context(), level, "web: request failed",
		slog.String("path", c.Request.URL.Path),
		slog.String("request_id", c.GetString(requestIDKey)),
		slog.Any("error", err))
	c.JSON(status, errorBody{Error: engine.UserMessage(err)})
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func metrics(c *gin.Context) {
	c.String(http.StatusOK, engine.FormatMetrics())
}
