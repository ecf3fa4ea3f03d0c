package api

import (
	"net/http"

	"github.com/alexanderramin/planboard/internal/contract"
)

func (s *Server) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.Tasks.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, taskNotFound)
		return
	}
	out := make([]contract.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, contract.TaskFromDomain(&t.Task, t.ProjectName))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := req.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.svc.Tasks.Create(r.Context(), t); err != nil {
		s.writeServiceError(w, r, err, taskNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, contract.TaskFromDomain(t, ""))
}

func (s *Server) handleUpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	status, ok := decodeStatus(w, r)
	if !ok {
		return
	}
	t, err := s.svc.Tasks.UpdateStatus(r.Context(), r.PathValue("id"), status)
	if err != nil {
		s.writeServiceError(w, r, err, taskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, contract.TaskFromDomain(t, ""))
}
