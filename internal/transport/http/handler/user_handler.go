package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"users-api/internal/domain"
	"users-api/internal/feature/user"
	httpez "users-api/internal/transport/http/ez"
	resp "users-api/internal/transport/http/response"
)

// UserHandler exposes GET and POST /users.
type UserHandler struct{ svc *user.Service }

func NewUserHandler(svc *user.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Priority() int { return 10 }

func (h *UserHandler) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api)

	httpez.RegisterAction(ez, httpez.Action[struct{}, resp.ListEnvelope[domain.User]]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (resp.ListEnvelope[domain.User], error) {
			users, err := h.svc.List(c.Request.Context())
			if err != nil {
				return resp.ListEnvelope[domain.User]{}, err
			}
			return resp.List("Users fetched successfully", users), nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[user.CreateInput, resp.Envelope[*domain.User]]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: httpez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *user.CreateInput) (resp.Envelope[*domain.User], error) {
			u, err := h.svc.Create(c.Request.Context(), *in)
			if err != nil {
				return resp.Envelope[*domain.User]{}, err
			}
			return resp.OK("User created successfully", u), nil
		},
	})
}
