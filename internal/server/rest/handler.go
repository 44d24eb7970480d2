package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/cloudstack/internal/common"
	"github.com/dmitrijs2005/cloudstack/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type meResponse struct {
	Email string `json:"email"`
}

type itemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: malformed form body", common.ErrorValidation))
		return
	}

	form := loginForm{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := s.validateStruct(form); err != nil {
		s.respondError(w, r, err)
		return
	}

	token, err := s.users.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Logged in", "email", form.Username)
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: common.TokenType})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	email, _ := IdentityFromContext(r.Context())
	writeJSON(w, http.StatusOK, meResponse{Email: email})
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	owner, _ := IdentityFromContext(r.Context())

	req, err := s.readItemRequest(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	item, err := s.items.Create(r.Context(), owner, req.Name, req.Description)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	owner, _ := IdentityFromContext(r.Context())

	list, err := s.items.List(r.Context(), owner)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if list == nil {
		list = []*models.Item{}
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	owner, _ := IdentityFromContext(r.Context())

	id, err := itemID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	req, err := s.readItemRequest(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	item, err := s.items.Update(r.Context(), owner, id, req.Name, req.Description)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	owner, _ := IdentityFromContext(r.Context())

	id, err := itemID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.items.Delete(r.Context(), owner, id); err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Item deleted"})
}

func (s *Server) readItemRequest(w http.ResponseWriter, r *http.Request) (*itemRequest, error) {
	var req itemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, err
	}
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}
	return &req, nil
}

func itemID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: item id must be an integer", common.ErrorValidation)
	}
	return id, nil
}
