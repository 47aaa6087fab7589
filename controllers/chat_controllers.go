package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dugubuyan/ai-receiption/services"
	"github.com/dugubuyan/ai-receiption/utils"
)

type ChatController struct {
	Service *services.ChatService
}

func NewChatController(chat *services.ChatService) *ChatController {
	return &ChatController{Service: chat}
}

var allowedAudioTypes = map[string]bool{
	"audio/wav":   true,
	"audio/mp3":   true,
	"audio/mpeg":  true,
	"audio/x-wav": true,
	"audio/webm":  true,
}

// Chat accepts a recorded question as multipart field "audio_file" and
// answers with the synthesized reply. The transcript travels in the
// X-Response-Text header, still base64 encoded as the backend sent it.
func (cc *ChatController) Chat(c *gin.Context) {
	file, err := c.FormFile("audio_file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("audio_file is required"))
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedAudioTypes[contentType] {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid file type %q", contentType))
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("chat-%d%s", time.Now().UnixNano(), filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	defer os.Remove(tmpPath)

	reply, err := cc.Service.Converse(tmpPath, file.Filename, contentType)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", "attachment;filename=response.mp3")
	c.Header("X-Response-Text", reply.ResponseText)
	c.Data(http.StatusOK, reply.ContentType, reply.Audio)
}

// ChatText answers a typed question with plain JSON.
func (cc *ChatController) ChatText(c *gin.Context) {
	var body struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	responseText, err := cc.Service.Ask(body.Question)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response_text": responseText})
}
