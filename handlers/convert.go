package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ytmp3/services"
)

const sessionCookieName = "ytmp3_session"

// ConvertHandler handles the conversion form and its auxiliary endpoints
type ConvertHandler struct {
	converter services.Converter
	groups    services.GroupProvider
	publisher services.ProgressPublisher
	files     services.FileService
}

// NewConvertHandler creates a new convert handler
func NewConvertHandler(converter services.Converter, groups services.GroupProvider, publisher services.ProgressPublisher, files services.FileService) *ConvertHandler {
	return &ConvertHandler{
		converter: converter,
		groups:    groups,
		publisher: publisher,
		files:     files,
	}
}

// Index renders the conversion page
func (h *ConvertHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// Convert accepts the submitted URL, drives the pipeline to completion and
// maps the outcome to a response: the MP3 bytes on success, a page re-render
// carrying the failure message otherwise.
func (h *ConvertHandler) Convert(c *gin.Context) {
	url := strings.TrimSpace(c.PostForm("url"))
	if url == "" {
		// No pipeline invocation and no group id churn for empty input
		log.Printf("Rejected conversion request with empty URL")
		c.HTML(http.StatusOK, "index.html", gin.H{"Message": "Please enter a valid YouTube URL."})
		return
	}

	groupID := h.groups.GetOrCreate(h.sessionToken(c))
	log.Printf("Starting conversion for URL %s (group %s)", url, groupID)

	result, err := h.converter.Convert(c.Request.Context(), url, groupID)
	if err != nil {
		log.Printf("Conversion failed for URL %s: %v", url, err)
		c.HTML(http.StatusOK, "index.html", gin.H{"Message": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, h.files.GetContentType(result.FileName), result.Data)
}

// GroupID returns the caller's progress group id as plain text, creating one
// when the session has none yet.
func (h *ConvertHandler) GroupID(c *gin.Context) {
	groupID := h.groups.GetOrCreate(h.sessionToken(c))
	c.String(http.StatusOK, groupID)
}

// TestProgress publishes a synthetic 50% tick to the caller's group for
// connectivity testing.
func (h *ConvertHandler) TestProgress(c *gin.Context) {
	groupID := h.groups.GetOrCreate(h.sessionToken(c))
	h.publisher.Publish(groupID, 50)
	log.Printf("Sent test progress: 50%% to group %s", groupID)
	c.HTML(http.StatusOK, "index.html", gin.H{"Message": "Sent test progress: 50%"})
}

// sessionToken returns the browser's session token, issuing a fresh cookie
// when none is present.
func (h *ConvertHandler) sessionToken(c *gin.Context) string {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		token = uuid.New().String()
		c.SetCookie(sessionCookieName, token, 0, "/", "", false, true)
	}
	return token
}
