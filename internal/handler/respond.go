// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"github.com/Shivanand-hulikatti/campus-events/internal/repository"
	"github.com/Shivanand-hulikatti/campus-events/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, resp model.ErrorResponse) {
	writeJSON(w, status, resp)
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst at its
// zero value so that field validation can report what is missing.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func badBody(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, model.ErrorResponse{
		Error: "invalid request body: " + err.Error(),
		Code:  "invalid_body",
	})
}

type errorMapping struct {
	target  error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{service.ErrInvalidRating, http.StatusBadRequest, "Rating must be an integer between 1 and 5."},
	{service.ErrEventFull, http.StatusConflict, "Event is at full capacity."},
	{service.ErrAlreadyRegistered, http.StatusConflict, "Student is already registered for this event."},
	{service.ErrNotRegistered, http.StatusForbidden, "Student is not registered for this event."},
	{service.ErrAlreadyCheckedIn, http.StatusConflict, "Attendance already recorded for this student."},
	{service.ErrNoAttendance, http.StatusForbidden, "Feedback requires attendance at the event."},
	{service.ErrFeedbackExists, http.StatusConflict, "Feedback already submitted for this event."},
	{service.ErrEmailExists, http.StatusConflict, "A student with this email already exists."},
	{service.ErrStudentExists, http.StatusConflict, "A student with this id already exists."},
	{service.ErrCollegeExists, http.StatusConflict, "A college with this id already exists."},
	{service.ErrInvalidStatusTransition, http.StatusConflict, "Event status cannot change that way."},
	{service.ErrStaleStatus, http.StatusConflict, "Event status changed concurrently, retry."},
}

// fail renders err. notFound is the message used for ErrNotFound since
// only the caller knows which resource was missing.
func fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	resp := model.ErrorResponse{Code: service.Reason(err)}

	var ve *service.ValidationError
	if errors.As(err, &ve) {
		resp.Error = ve.Error()
		writeError(w, http.StatusBadRequest, resp)
		return
	}

	if errors.Is(err, service.ErrNotFound) {
		resp.Error = notFound
		writeError(w, http.StatusNotFound, resp)
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			resp.Error = m.message
			writeError(w, m.status, resp)
			return
		}
	}

	var ie *repository.IntegrityError
	if errors.As(err, &ie) {
		resp.Error = "Database integrity error."
		resp.Details = ie.Detail
		writeError(w, http.StatusBadRequest, resp)
		return
	}

	zap.L().Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, model.ErrorResponse{Error: "internal server error"})
}
