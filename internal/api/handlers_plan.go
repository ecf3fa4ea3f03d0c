package api

import (
	"fmt"
	"net/http"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/service"
)

const taskNotFound = "Task not found"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, contract.Health{Success: true, Version: s.version})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	roots, err := s.svc.Plan.Tree(r.Context(), r.PathValue("projectId"))
	if err != nil {
		s.writeServiceError(w, r, err, "Project not found")
		return
	}
	writeJSON(w, http.StatusOK, contract.PlanTreeFromDomain(roots))
}

func (s *Server) handleCreatePlanTask(w http.ResponseWriter, r *http.Request) {
	var req contract.CreatePlanTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	task, err := req.Task.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.svc.Plan.Create(r.Context(), service.CreatePlanTask{
		ParentID:  req.ParentID,
		ProjectID: req.ProjectID,
		Task:      task,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "Parent task not found")
		return
	}
	writeJSON(w, http.StatusCreated, contract.TaskMessage{
		Message: "Task created successfully",
		Task:    contract.PlanTaskFromDomain(created),
	})
}

func (s *Server) handleUpdatePlanTask(w http.ResponseWriter, r *http.Request) {
	var body contract.PlanTaskPatch
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	patch, err := body.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.svc.Plan.Update(r.Context(), r.PathValue("taskId"), patch)
	if err != nil {
		s.writeServiceError(w, r, err, taskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, contract.PlanTaskFromDomain(updated))
}

func (s *Server) handleDeletePlanTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("taskId")
	if _, err := s.svc.Plan.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, taskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, contract.Message{Message: fmt.Sprintf("Task %s deleted successfully", id)})
}

// handleTimesheet sets the timesheet state of the task named in the body.
func (s *Server) handleTimesheet(message string, state domain.TimesheetState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contract.TimesheetRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.TaskID == "" {
			writeError(w, http.StatusBadRequest, "taskId is required")
			return
		}
		task, err := s.svc.Plan.SetTimesheetState(r.Context(), req.TaskID, state)
		if err != nil {
			s.writeServiceError(w, r, err, taskNotFound)
			return
		}
		writeJSON(w, http.StatusOK, contract.TaskMessage{Message: message, Task: contract.PlanTaskFromDomain(task)})
	}
}
