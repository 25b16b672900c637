package user

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"users-api/internal/domain"
)

type CreateInput struct {
	Name  string `json:"name" validate:"required,max=256"`
	Email string `json:"email" validate:"required,email,max=256"`
}

// Service is the users resource: list everything, create one.
type Service struct {
	store    domain.UserStore
	validate *validator.Validate // nil accepts any input
}

// NewService wires the store in. With strict set, Create rejects empty names
// and malformed emails before touching the store.
func NewService(store domain.UserStore, strict bool) *Service {
	s := &Service{store: store}
	if strict {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			return name
		})
		s.validate = v
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, domain.NewServerFault("list users", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.User, error) {
	if s.validate != nil {
		if err := s.validate.Struct(in); err != nil {
			return nil, domain.NewClientFault("validate user", humanize(err))
		}
	}
	u := &domain.User{Name: in.Name, Email: in.Email}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, domain.NewClientFault("create user", err)
	}
	return u, nil
}

func (s *Service) Ping(ctx context.Context) error { return s.store.Ping(ctx) }

func humanize(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
