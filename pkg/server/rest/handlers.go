package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"routekit/pkg/routeplanner"
	"routekit/pkg/server/rest/service"
	"routekit/pkg/snap"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type NavigationService interface {
	RouteBetweenCoordinates(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) (service.RouteSummary, error)
	RouteBetweenNodes(ctx context.Context, start, goal int32) (service.RouteSummary, error)
	CloseEdge(edgeID int32)
	ReopenEdge(edgeID int32)
	ClosedEdges() []int32
}

type NavigationHandler struct {
	svc NavigationService
}

func NavigationRouter(r *chi.Mux, svc NavigationService) {
	handler := &NavigationHandler{svc}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigation", func(r chi.Router) {
			r.Post("/route", handler.Route)
			r.Post("/route-by-node", handler.RouteByNode)
			r.Post("/closures", handler.UpdateClosure)
			r.Get("/closures", handler.ListClosures)
		})
	})
}

type RouteRequest struct {
	SrcLat float64 `json:"src_lat" validate:"required,lt=90,gt=-90"`
	SrcLon float64 `json:"src_lon" validate:"required,lt=180,gt=-180"`
	DstLat float64 `json:"dst_lat" validate:"required,lt=90,gt=-90"`
	DstLon float64 `json:"dst_lon" validate:"required,lt=180,gt=-180"`
}

func (s *RouteRequest) Bind(r *http.Request) error {
	if s.SrcLat == 0 && s.SrcLon == 0 && s.DstLat == 0 && s.DstLon == 0 {
		return errors.New("invalid request")
	}
	return nil
}

type RouteByNodeRequest struct {
	StartID *int32 `json:"start_id" validate:"required"`
	GoalID  *int32 `json:"goal_id" validate:"required"`
}

func (s *RouteByNodeRequest) Bind(r *http.Request) error {
	if s.StartID == nil || s.GoalID == nil {
		return errors.New("invalid request")
	}
	return nil
}

type RouteEdge struct {
	EdgeID int32   `json:"edge_id"`
	From   int32   `json:"from"`
	To     int32   `json:"to"`
	Length float64 `json:"length"`
	Class  string  `json:"class,omitempty"`
}

type RouteResponse struct {
	NodeIDs   []int32     `json:"node_ids"`
	Edges     []RouteEdge `json:"edges"`
	TotalCost float64     `json:"total_cost"`
	DistMeter float64     `json:"dist_meter"`
	Polyline  string      `json:"polyline"`
}

func RenderRouteResponse(summary service.RouteSummary) *RouteResponse {
	edges := make([]RouteEdge, 0, len(summary.Edges))
	for _, e := range summary.Edges {
		edges = append(edges, RouteEdge{
			EdgeID: e.EdgeID,
			From:   e.From,
			To:     e.To,
			Length: e.Length,
			Class:  e.Class,
		})
	}
	return &RouteResponse{
		NodeIDs:   summary.NodeIDs,
		Edges:     edges,
		TotalCost: summary.TotalCost,
		DistMeter: summary.DistMeter,
		Polyline:  summary.Polyline,
	}
}

func (h *NavigationHandler) Route(w http.ResponseWriter, r *http.Request) {
	data := &RouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	summary, err := h.svc.RouteBetweenCoordinates(r.Context(), data.SrcLat, data.SrcLon, data.DstLat, data.DstLon)
	if err != nil {
		render.Render(w, r, errRenderer(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRouteResponse(summary))
}

func (h *NavigationHandler) RouteByNode(w http.ResponseWriter, r *http.Request) {
	data := &RouteByNodeRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	summary, err := h.svc.RouteBetweenNodes(r.Context(), *data.StartID, *data.GoalID)
	if err != nil {
		render.Render(w, r, errRenderer(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderRouteResponse(summary))
}

type ClosureRequest struct {
	EdgeID *int32 `json:"edge_id" validate:"required"`
	Action string `json:"action" validate:"required,oneof=close reopen"`
}

func (s *ClosureRequest) Bind(r *http.Request) error {
	if s.EdgeID == nil {
		return errors.New("invalid request")
	}
	return nil
}

type ClosureResponse struct {
	ClosedEdges []int32 `json:"closed_edges"`
}

func (h *NavigationHandler) UpdateClosure(w http.ResponseWriter, r *http.Request) {
	data := &ClosureRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	switch data.Action {
	case "close":
		h.svc.CloseEdge(*data.EdgeID)
	case "reopen":
		h.svc.ReopenEdge(*data.EdgeID)
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &ClosureResponse{ClosedEdges: h.svc.ClosedEdges()})
}

func (h *NavigationHandler) ListClosures(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &ClosureResponse{ClosedEdges: h.svc.ClosedEdges()})
}

// errRenderer maps the planner's typed failures onto http statuses.
func errRenderer(err error) render.Renderer {
	switch {
	case errors.Is(err, routeplanner.ErrInvalidRequest), errors.Is(err, snap.ErrNoNearbyNode):
		return ErrInvalidRequest(err)
	case errors.Is(err, routeplanner.ErrNoRouteFound):
		return ErrNotFound(err)
	case errors.Is(err, routeplanner.ErrIterationLimitExceeded):
		return ErrUnprocessable(err)
	default:
		return ErrInternalServerErrorRend(errors.New("internal server error"))
	}
}

// ErrResponse model info
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrNotFound(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 404,
		StatusText:     "Route not found.",
		ErrorText:      err.Error(),
	}
}

func ErrUnprocessable(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 422,
		StatusText:     "Search effort cap exceeded.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}
