package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// CollegeHandler serves colleges and their students.
type CollegeHandler struct {
	catalog CatalogService
}

// NewCollegeHandler constructs a CollegeHandler.
func NewCollegeHandler(catalog CatalogService) *CollegeHandler {
	return &CollegeHandler{catalog: catalog}
}

// CreateCollege handles POST /api/v1/colleges
func (h *CollegeHandler) CreateCollege(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCollegeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	c, err := h.catalog.CreateCollege(r.Context(), req)
	if err != nil {
		fail(w, r, err, collegeNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// GetCollege handles GET /api/v1/colleges/{collegeID}
func (h *CollegeHandler) GetCollege(w http.ResponseWriter, r *http.Request) {
	c, err := h.catalog.GetCollege(r.Context(), chi.URLParam(r, "collegeID"))
	if err != nil {
		fail(w, r, err, collegeNotFound)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// CreateStudent handles POST /api/v1/colleges/{collegeID}/students
func (h *CollegeHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateStudentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badBody(w, err)
		return
	}

	s, err := h.catalog.CreateStudent(r.Context(), chi.URLParam(r, "collegeID"), req)
	if err != nil {
		fail(w, r, err, collegeNotFound)
		return
	}

	writeJSON(w, http.StatusCreated, s)
}

// GetStudent handles GET /api/v1/colleges/{collegeID}/students/{studentID}
func (h *CollegeHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	s, err := h.catalog.GetStudent(r.Context(), chi.URLParam(r, "collegeID"), chi.URLParam(r, "studentID"))
	if err != nil {
		fail(w, r, err, studentNotFound)
		return
	}

	writeJSON(w, http.StatusOK, s)
}
