package http

import (
	"net/http"

	"github.com/DRSN-tech/pricing-backend/internal/usecase"
	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/DRSN-tech/pricing-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userUsecase usecase.UserUC
	logger      logger.Logger
}

func NewUserHandler(userUsecase usecase.UserUC, logger logger.Logger) *UserHandler {
	return &UserHandler{userUsecase: userUsecase, logger: logger}
}

// createUser
//
//	@Summary	Регистрация пользователя
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateUserRequest	true	"Пользователь"
//	@Success	201		{object}	UserResponse		"Успешное создание"
//	@Failure	400		{object}	ErrorResponse		"Email занят или ошибка валидации"
//	@Router		/users [post]
func (u *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var body CreateUserRequest
	if err := decodeJSONBody(r, &body); err != nil {
		u.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	user, err := u.userUsecase.CreateUser(r.Context(), &usecase.CreateUserReq{
		Name:  body.Name,
		Email: body.Email,
		Role:  body.Role,
	})
	if err != nil {
		u.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toUserResponse(user))
}

// updateUser
//
//	@Summary	Частичное обновление пользователя
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"ID пользователя"
//	@Param		request	body		UpdateUserRequest	true	"Изменяемые поля"
//	@Success	200		{object}	UserResponse		"Обновлённый пользователь"
//	@Failure	404		{object}	ErrorResponse		"Пользователь не найден"
//	@Router		/users/{id} [patch]
func (u *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var body UpdateUserRequest
	if err := decodeJSONBody(r, &body); err != nil {
		u.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	user, err := u.userUsecase.UpdateUser(r.Context(), id, &usecase.UpdateUserReq{
		Name:  body.Name,
		Email: body.Email,
		Role:  body.Role,
	})
	if err != nil {
		u.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toUserResponse(user))
}

// deleteUser
//
//	@Summary	Удаление пользователя
//	@Description	Пользователь помечается удалённым, его персональные цены не затрагиваются
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int				true	"ID пользователя"
//	@Success	204	"Пользователь удалён"
//	@Failure	404	{object}	ErrorResponse	"Пользователь не найден"
//	@Router		/users/{id} [delete]
func (u *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := u.userUsecase.DeleteUser(r.Context(), id); err != nil {
		u.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getUser
//
//	@Summary	Пользователь по ID
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int				true	"ID пользователя"
//	@Success	200	{object}	UserResponse
//	@Failure	404	{object}	ErrorResponse	"Пользователь не найден"
//	@Router		/users/{id} [get]
func (u *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	user, err := u.userUsecase.GetUser(r.Context(), id)
	if err != nil {
		u.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toUserResponse(user))
}

// listUsers
//
//	@Summary	Список пользователей
//	@Tags		users
//	@Produce	json
//	@Success	200	{array}	UserResponse
//	@Router		/users [get]
func (u *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := u.userUsecase.ListUsers(r.Context())
	if err != nil {
		u.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrUserResponse(users))
}

func registerUserRoutes(router chi.Router, usHandler *UserHandler) {
	router.Route("/users", func(us chi.Router) {
		us.Post("/", usHandler.createUser)
		us.Get("/", usHandler.listUsers)
		us.Get("/{id}", usHandler.getUser)
		us.Patch("/{id}", usHandler.updateUser)
		us.Delete("/{id}", usHandler.deleteUser)
	})
}
