package handlers

import (
	"net/http"
	"strings"

	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

func sessionService(c *gin.Context) services.SessionService {
	return services.SessionService{RequestID: middleware.GetRequestID(c)}
}

// PUT /api/sessions/:id/report
// Multipart form: report, status, attendance (true/false), attachment (file, optional).
func SubmitSessionReport(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	in := models.SessionReportInput{
		Report: c.PostForm("report"),
		Status: c.PostForm("status"),
	}
	if raw := strings.TrimSpace(c.PostForm("attendance")); raw != "" {
		attended := strings.EqualFold(raw, "true") || raw == "1"
		in.Attendance = &attended
	}

	if fileHeader, err := c.FormFile("attachment"); err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "file lampiran tidak bisa dibaca", err)
			return
		}
		defer src.Close()

		path, err := fileStore.Save("session-attachments", fileHeader.Filename, src)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		in.AttachmentFile = path
	}

	session, err := sessionService(c).SubmitTeacherReport(middleware.Actor(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

type attendanceRequest struct {
	Attended bool `json:"attended"`
}

// PUT /api/sessions/:id/attendance
func SubmitSessionAttendance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req attendanceRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	session, err := sessionService(c).SubmitStudentAttendance(middleware.Actor(c), id, req.Attended)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
