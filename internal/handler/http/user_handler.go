package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/WiMProject/backend-test/internal/user"
)

const maxBodyBytes = 1 << 20

const (
	msgUsersRetrieved = "Users retrieved successfully"
	msgUserRetrieved  = "User retrieved successfully"
	msgUserCreated    = "User created successfully"
	msgUserUpdated    = "User updated successfully"
	msgUserDeleted    = "User deleted successfully"
	msgUserNotFound   = "User not found"
	msgEmailInUse     = "Email already in use"
	msgInvalidData    = "The given data was invalid"
	msgInvalidPayload = "Invalid request payload"
)

type UserResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	IsActive   bool      `json:"is_active"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		IsActive:   u.IsActive,
		Department: u.Department,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Get("/users", h.handleListUsers)
	router.Post("/users", h.handleCreateUser)
	router.Get("/users/{id}", h.handleGetUserByID)
	router.Put("/users/{id}", h.handleUpdateUser)
	router.Delete("/users/{id}", h.handleDeleteUser)
}

func (h *UserHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		log.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("Failed to list users via service")
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve users", err.Error())
		return
	}

	responsePayload := make([]UserResponse, 0, len(users))
	for i := range users {
		responsePayload = append(responsePayload, newUserResponse(&users[i]))
	}

	respondWithSuccess(w, http.StatusOK, msgUsersRetrieved, responsePayload)
}

func (h *UserHandler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(w, r)
	if err != nil {
		log.Warn().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("Failed to decode request body")
		respondWithInvalidPayload(w)
		return
	}

	createdUser, err := h.service.CreateUser(r.Context(), user.ParseInput(payload))
	if err != nil {
		h.respondWithServiceError(w, r, err, "", "Failed to create user")
		return
	}

	respondWithSuccess(w, http.StatusCreated, msgUserCreated, newUserResponse(createdUser))
}

func (h *UserHandler) handleGetUserByID(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	userID, ok := parseID(idParam)
	if !ok {
		respondWithNotFound(w, idParam)
		return
	}

	foundUser, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, r, err, idParam, "Failed to retrieve user")
		return
	}

	respondWithSuccess(w, http.StatusOK, msgUserRetrieved, newUserResponse(foundUser))
}

func (h *UserHandler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	userID, ok := parseID(idParam)
	if !ok {
		respondWithNotFound(w, idParam)
		return
	}

	payload, err := decodePayload(w, r)
	if err != nil {
		log.Warn().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("Failed to decode request body")
		respondWithInvalidPayload(w)
		return
	}

	updatedUser, err := h.service.UpdateUser(r.Context(), userID, user.ParseInput(payload))
	if err != nil {
		h.respondWithServiceError(w, r, err, idParam, "Failed to update user")
		return
	}

	respondWithSuccess(w, http.StatusOK, msgUserUpdated, newUserResponse(updatedUser))
}

func (h *UserHandler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	userID, ok := parseID(idParam)
	if !ok {
		respondWithNotFound(w, idParam)
		return
	}

	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		h.respondWithServiceError(w, r, err, idParam, "Failed to delete user")
		return
	}

	respondWithSuccess(w, http.StatusOK, msgUserDeleted, nil)
}

func (h *UserHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error, idParam, failMessage string) {
	statusCode := mapErrorToStatusCode(err)

	var verr *user.ValidationError
	switch {
	case errors.As(err, &verr):
		respondWithValidationError(w, msgInvalidData, verr.Fields)
	case errors.Is(err, user.ErrEmailExists):
		respondWithJSON(w, statusCode, Envelope{
			Success: false,
			Message: msgEmailInUse,
			Error:   "Email is already registered to another user",
			Errors:  map[string][]string{user.FieldEmail: {msgEmailInUse + "."}},
		})
	case errors.Is(err, user.ErrNotFound):
		respondWithNotFound(w, idParam)
	default:
		log.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg(failMessage)
		respondWithError(w, statusCode, failMessage, err.Error())
	}
}

func respondWithNotFound(w http.ResponseWriter, idParam string) {
	respondWithError(w, http.StatusNotFound, msgUserNotFound, fmt.Sprintf("User with ID %s not found", idParam))
}

func respondWithInvalidPayload(w http.ResponseWriter) {
	respondWithValidationError(w, msgInvalidPayload, map[string][]string{
		"body": {"The request body must be a valid JSON object."},
	})
}

// decodePayload reads the body as a JSON object. An empty body is an empty object.
func decodePayload(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	payload := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(body)) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode request body: %w", err)
	}
	if payload == nil {
		payload = make(map[string]json.RawMessage)
	}

	return payload, nil
}

// parseID accepts positive base-10 integers only.
func parseID(idParam string) (int64, bool) {
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
