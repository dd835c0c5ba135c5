package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) uploadFile(c *gin.Context) {

	// Oversize bodies fail the multipart parse below and render as a plain
	// upload error rather than a 413.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.uploadSizeLimit)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.logger.Warn(c.Request.Context(), "multipart parse failed", "error", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, failResponse("Error Uploading file"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, failResponse("Error Uploading file"))
		return
	}
	defer f.Close()

	record, err := s.uploads.Upload(c.Request.Context(), f, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, failResponse("Error Uploading file"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"msg":     "File Uploaded Successfully!",
		"data":    record,
	})
}
