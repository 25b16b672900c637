package ez

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"users-api/internal/domain"
	resp "users-api/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

type Binder string

const (
	BindJSON  Binder = "json"  // request body; an empty body binds the zero value
	BindQuery Binder = "query" // ?a=b
	BindNone  Binder = "none"
)

// AErr is an error that already knows its HTTP status.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *AErr) Unwrap() error { return e.Err }

// Action describes one endpoint: I is bound from the request, O is written
// as JSON with Status (200 when zero).
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Status  int
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			_ = c.Error(err)
			c.JSON(StatusOf(err), resp.Error(err.Error()))
			return
		}
		out, err := a.Handler(c, &in)
		if err != nil {
			_ = c.Error(err)
			c.JSON(StatusOf(err), resp.Error(err.Error()))
			return
		}
		c.JSON(status, out)
	}
	e.g.Handle(strings.ToUpper(a.Method), a.Path, h)
}

func bind(c *gin.Context, b Binder, in any) error {
	var err error
	switch b {
	case BindJSON:
		err = c.ShouldBindJSON(in)
		if errors.Is(err, io.EOF) {
			return nil
		}
	case BindQuery:
		err = c.ShouldBindQuery(in)
	default:
		return nil
	}
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &AErr{Code: http.StatusRequestEntityTooLarge, Msg: "request body too large", Err: err}
	}
	return &AErr{Code: http.StatusBadRequest, Err: err}
}

// StatusOf maps an error to the status it is reported with.
func StatusOf(err error) int {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae.Code
	}
	switch domain.KindOf(err) {
	case domain.ClientFault:
		return http.StatusBadRequest
	case domain.ServerFault:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
