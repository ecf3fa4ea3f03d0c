package api

import (
	"net/http"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
)

const projectNotFound = "Project not found"

func (s *Server) handleGetProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.svc.Projects.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, projectNotFound)
		return
	}
	out := make([]contract.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, contract.ProjectFromDomain(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Projects.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err, projectNotFound)
		return
	}
	writeJSON(w, http.StatusOK, contract.ProjectFromDomain(p))
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := req.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.Projects.Create(r.Context(), p); err != nil {
		s.writeServiceError(w, r, err, projectNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, contract.ProjectFromDomain(p))
}

func (s *Server) handleUpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	status, ok := decodeStatus(w, r)
	if !ok {
		return
	}
	p, err := s.svc.Projects.UpdateStatus(r.Context(), r.PathValue("id"), status)
	if err != nil {
		s.writeServiceError(w, r, err, projectNotFound)
		return
	}
	writeJSON(w, http.StatusOK, contract.ProjectFromDomain(p))
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Projects.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err, projectNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeStatus reads a {"status": ...} body, writing a 400 on failure.
func decodeStatus(w http.ResponseWriter, r *http.Request) (domain.Status, bool) {
	var req contract.StatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return status, true
}
