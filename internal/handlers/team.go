package handlers

import (
	"net/http"

	"github.com/darzihq/darzi/internal/httpx"
	"github.com/darzihq/darzi/internal/store"
)

type TeamHandler struct {
	Store *store.Store
}

func NewTeamHandler(s *store.Store) *TeamHandler { return &TeamHandler{Store: s} }

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.Store.ListTeamMembers()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, members)
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input store.TeamMemberInput
	if !decodeJSON(w, r, &input) {
		return
	}
	member, err := h.Store.AddTeamMember(input)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, member)
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ID int `json:"id"`
		store.TeamMemberUpdate
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.ID <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	member, err := h.Store.UpdateTeamMember(input.ID, input.TeamMemberUpdate)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, member)
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Store.DeleteTeamMember(id); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
