package http

import (
	"errors"
	"net/http"

	"github.com/dkeye/CodeRoom/internal/app/orch"
	"github.com/dkeye/CodeRoom/internal/core"
	"github.com/dkeye/CodeRoom/internal/domain"
	"github.com/dkeye/CodeRoom/internal/runner"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	nanoid "github.com/jaevor/go-nanoid"
	"github.com/rs/zerolog/log"
)

const (
	profileNameKey = "displayName"
	roomIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	roomIDLength   = 10
)

var newRoomID = mustRoomIDGenerator()

func mustRoomIDGenerator() func() string {
	gen, err := nanoid.CustomASCII(roomIDAlphabet, roomIDLength)
	if err != nil {
		panic(err)
	}
	return gen
}

type handlers struct {
	orch *orch.Orchestrator
	exec runner.Executor
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"connections": h.orch.Registry.Count(),
		"rooms":       len(h.orch.Rooms.List()),
	})
}

func (h *handlers) listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.orch.Rooms.List())
}

// createRoom only mints an id; the room itself appears on first join.
func (h *handlers) createRoom(c *gin.Context) {
	id := newRoomID()
	log.Info().Str("module", "adapters.http").Str("room", id).Str("client", c.GetString("client_token")).Msg("room id issued")
	c.JSON(http.StatusCreated, gin.H{"roomId": id})
}

func (h *handlers) getRoom(c *gin.Context) {
	id, err := domain.ParseRoomID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, ok := h.orch.Rooms.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": core.ErrRoomNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, core.InfoOf(room))
}

func (h *handlers) getProfile(c *gin.Context) {
	name, _ := sessions.Default(c).Get(profileNameKey).(string)
	c.JSON(http.StatusOK, gin.H{profileNameKey: name})
}

type profileRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
}

func (h *handlers) setProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_payload"})
		return
	}
	name, err := domain.NormalizeDisplayName(req.DisplayName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s := sessions.Default(c)
	s.Set(profileNameKey, name)
	if err := s.Save(); err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("save profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{profileNameKey: name})
}

// defaultName is the name used when a join frame carries none: the saved
// profile first, then a valid ?name= query.
func (h *handlers) defaultName(c *gin.Context) string {
	if name, ok := sessions.Default(c).Get(profileNameKey).(string); ok && name != "" {
		return name
	}
	if name, err := domain.NormalizeDisplayName(c.Query("name")); err == nil {
		return name
	}
	return ""
}

func (h *handlers) runtimes(c *gin.Context) {
	c.JSON(http.StatusOK, runner.Runtimes)
}

type executeRequest struct {
	Language string `json:"language" binding:"required"`
	Code     string `json:"sourceCode"`
}

func (h *handlers) execute(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_payload"})
		return
	}
	res, err := h.exec.Execute(c.Request.Context(), req.Language, req.Code)
	switch {
	case errors.Is(err, runner.ErrUnsupportedLanguage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		log.Warn().Err(err).Str("module", "adapters.http").Str("language", req.Language).Msg("execute failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "runner unavailable"})
	default:
		c.JSON(http.StatusOK, res)
	}
}
