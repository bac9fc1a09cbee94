package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/osmroute/pkg/server"
	"github.com/lintang-b-s/osmroute/pkg/server/rest/service"
	"github.com/lintang-b-s/osmroute/pkg/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

const (
	defaultNodeSearchLimit = 10
	maxNodeSearchLimit     = 100
)

type NavigationService interface {
	ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64, algorithm string) (service.RouteResult, error)
	NearestNode(ctx context.Context, lat, lon float64) (service.NearestNode, error)
	DistanceMatrix(ctx context.Context, sources, targets []datastructure.Coordinate) ([][]float64, error)
	GraphInfo(ctx context.Context) service.GraphInfo
	SearchNodesByName(ctx context.Context, prefix string, limit int) ([]service.NamedNode, error)
}

type NavigationHandler struct {
	svc     NavigationService
	metrics *Metrics
}

func NavigatorRouter(r *chi.Mux, svc NavigationService, m *Metrics) {
	handler := &NavigationHandler{svc, m}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/shortest-path", handler.shortestPath)
			r.Post("/distance-matrix", handler.distanceMatrix)
			r.Get("/nearest-node", handler.nearestNode)
		})
		r.Route("/api/graph", func(r chi.Router) {
			r.Get("/", handler.graphInfo)
			r.Get("/nodes", handler.searchNodes)
		})
	})
}

// ShortestPathRequest model info
//
//	@Description	request body untuk shortest path query
type ShortestPathRequest struct {
	SrcLat    float64 `json:"src_lat" validate:"gte=-90,lte=90"`
	SrcLon    float64 `json:"src_lon" validate:"gte=-180,lte=180"`
	DstLat    float64 `json:"dst_lat" validate:"gte=-90,lte=90"`
	DstLon    float64 `json:"dst_lon" validate:"gte=-180,lte=180"`
	Algorithm string  `json:"algorithm" validate:"omitempty,oneof=astar dijkstra"`
}

func (s *ShortestPathRequest) Bind(r *http.Request) error {
	return nil
}

// NavigationResponse model info
//
//	@Description	satu instruksi turn-by-turn
type NavigationResponse struct {
	Direction   string  `json:"direction"`
	StreetName  string  `json:"street_name"`
	Distance    float64 `json:"distance"`
	Instruction string  `json:"instruction"`
	TurnPoint   Coord   `json:"turn_point"`
}

// ShortestPathResponse model info
//
//	@Description	response body untuk shortest path query
type ShortestPathResponse struct {
	Path        string               `json:"path"`
	Dist        float64              `json:"distance"`
	Found       bool                 `json:"found"`
	Cached      bool                 `json:"cached"`
	Source      int64                `json:"source_node"`
	Destination int64                `json:"destination_node"`
	Nodes       []int64              `json:"nodes"`
	Navigations []NavigationResponse `json:"navigations"`
}

func RenderShortestPathResponse(res service.RouteResult) *ShortestPathResponse {
	navs := make([]NavigationResponse, 0, len(res.Directions))
	for _, d := range res.Directions {
		navs = append(navs, NavigationResponse{
			Direction:   d.TurnType,
			StreetName:  d.StreetName,
			Distance:    d.Distance,
			Instruction: d.Instruction,
			TurnPoint:   Coord{Lat: d.Point.Lat, Lon: d.Point.Lon},
		})
	}
	return &ShortestPathResponse{
		Path:        res.Path,
		Dist:        util.RoundFloat(res.Dist, 3),
		Found:       res.Found,
		Cached:      res.Cached,
		Source:      res.Source,
		Destination: res.Destination,
		Nodes:       res.Nodes,
		Navigations: navs,
	}
}

// ShortestPath
//
//	@Summary		shortest path query antara dua koordinat pakai A* (default) atau dijkstra. jarak dalam miles
//	@Description	shortest path query antara dua koordinat pakai A* (default) atau dijkstra. koordinat di snap ke node jalan terdekat
//	@Tags			navigations
//	@Param			body	body	ShortestPathRequest	true	"request body query shortest path antara 2 tempat"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/shortest-path [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
//	@Failure		503	{object}	ErrResponse
func (h *NavigationHandler) shortestPath(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if rend := validateRequest(data); rend != nil {
		render.Render(w, r, rend)
		return
	}

	res, err := h.svc.ShortestPath(r.Context(), data.SrcLat, data.SrcLon, data.DstLat, data.DstLon, data.Algorithm)
	h.observeSearch(res, err)
	if err != nil {
		render.Render(w, r, RenderServiceError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, RenderShortestPathResponse(res))
}

func (h *NavigationHandler) observeSearch(res service.RouteResult, err error) {
	if h.metrics == nil {
		return
	}
	switch {
	case err == nil && res.Cached:
		h.metrics.ObserveSearch(SearchCached)
	case err == nil:
		h.metrics.ObserveSearch(SearchFound)
	case errors.Is(err, service.ErrNoRoute):
		h.metrics.ObserveSearch(SearchUnreachable)
	case errors.Is(err, routingalgorithm.ErrSearchAborted):
		h.metrics.ObserveSearch(SearchAborted)
	}
}

// DistanceMatrixRequest model info
//
//	@Description	request body untuk distance matrix
type DistanceMatrixRequest struct {
	Sources []Coord `json:"sources" validate:"required,min=1,dive"`
	Targets []Coord `json:"targets" validate:"required,min=1,dive"`
}

// Coord model info
//
//	@Description	model untuk koordinat
type Coord struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

func (s *DistanceMatrixRequest) Bind(r *http.Request) error {
	if len(s.Sources) == 0 || len(s.Targets) == 0 {
		return errors.New("invalid request")
	}
	return nil
}

func toCoordinates(cs []Coord) []datastructure.Coordinate {
	coords := make([]datastructure.Coordinate, 0, len(cs))
	for _, c := range cs {
		coords = append(coords, datastructure.NewCoordinate(c.Lat, c.Lon))
	}
	return coords
}

// DistanceMatrixResponse model info
//
//	@Description	response body distance matrix. distances[i][j] jarak (miles) sources[i] ke targets[j], -1 kalau tidak ada jalan
type DistanceMatrixResponse struct {
	Distances [][]float64 `json:"distances"`
}

// DistanceMatrix
//
//	@Summary		jarak shortest path (miles) dari setiap source ke setiap target
//	@Description	jarak shortest path (miles) dari setiap source ke setiap target. -1 kalau target tidak bisa dicapai dari source
//	@Tags			navigations
//	@Param			body	body	DistanceMatrixRequest	true	"request body distance matrix"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/distance-matrix [post]
//	@Success		200	{object}	DistanceMatrixResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) distanceMatrix(w http.ResponseWriter, r *http.Request) {
	data := &DistanceMatrixRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if rend := validateRequest(data); rend != nil {
		render.Render(w, r, rend)
		return
	}

	matrix, err := h.svc.DistanceMatrix(r.Context(), toCoordinates(data.Sources), toCoordinates(data.Targets))
	if err != nil {
		render.Render(w, r, RenderServiceError(err))
		return
	}
	for i := range matrix {
		for j := range matrix[i] {
			if matrix[i][j] >= 0 {
				matrix[i][j] = util.RoundFloat(matrix[i][j], 3)
			}
		}
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &DistanceMatrixResponse{Distances: matrix})
}

// NearestNodeResponse model info
//
//	@Description	node jalan terdekat dari koordinat
type NearestNodeResponse struct {
	NodeID   int64   `json:"node_id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Name     string  `json:"name,omitempty"`
	Distance float64 `json:"distance"`
}

// NearestNode
//
//	@Summary		node jalan terdekat dari koordinat
//	@Description	node jalan terdekat dari koordinat. distance dalam miles
//	@Tags			navigations
//	@Param			lat	query	number	true	"latitude"
//	@Param			lon	query	number	true	"longitude"
//	@Produce		application/json
//	@Router			/navigations/nearest-node [get]
//	@Success		200	{object}	NearestNodeResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) nearestNode(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		render.Render(w, r, ErrInvalidRequest(errors.New("lat must be a number between -90 and 90")))
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		render.Render(w, r, ErrInvalidRequest(errors.New("lon must be a number between -180 and 180")))
		return
	}

	n, err := h.svc.NearestNode(r.Context(), lat, lon)
	if err != nil {
		render.Render(w, r, RenderServiceError(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &NearestNodeResponse{
		NodeID:   n.NodeID,
		Lat:      n.Lat,
		Lon:      n.Lon,
		Name:     n.Name,
		Distance: util.RoundFloat(n.Distance, 3),
	})
}

// GraphInfoResponse model info
//
//	@Description	ukuran road network graph & bounding box nya
type GraphInfoResponse struct {
	Nodes      int   `json:"nodes"`
	Ways       int   `json:"ways"`
	Vertices   int   `json:"vertices"`
	Edges      int   `json:"edges"`
	Components int   `json:"components"`
	SouthWest  Coord `json:"south_west"`
	NorthEast  Coord `json:"north_east"`
}

// GraphInfo
//
//	@Summary		info road network graph yang di load
//	@Tags			graph
//	@Produce		application/json
//	@Router			/graph [get]
//	@Success		200	{object}	GraphInfoResponse
func (h *NavigationHandler) graphInfo(w http.ResponseWriter, r *http.Request) {
	info := h.svc.GraphInfo(r.Context())

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &GraphInfoResponse{
		Nodes:      info.Nodes,
		Ways:       info.Ways,
		Vertices:   info.Vertices,
		Edges:      info.Edges,
		Components: info.Components,
		SouthWest:  Coord{Lat: info.SouthWest.Lat, Lon: info.SouthWest.Lon},
		NorthEast:  Coord{Lat: info.NorthEast.Lat, Lon: info.NorthEast.Lon},
	})
}

// NamedNodeResponse model info
//
//	@Description	node openstreetmap yang punya tag name
type NamedNodeResponse struct {
	NodeID int64   `json:"node_id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// SearchNodes
//
//	@Summary		cari node berdasarkan prefix nama (case insensitive)
//	@Tags			graph
//	@Param			prefix	query	string	true	"prefix nama node"
//	@Param			limit	query	int		false	"jumlah maksimal hasil (default 10, max 100)"
//	@Produce		application/json
//	@Router			/graph/nodes [get]
//	@Success		200	{array}		NamedNodeResponse
//	@Failure		400	{object}	ErrResponse
func (h *NavigationHandler) searchNodes(w http.ResponseWriter, r *http.Request) {
	limit := defaultNodeSearchLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v <= 0 || v > maxNodeSearchLimit {
			render.Render(w, r, ErrInvalidRequest(errors.New("limit must be an integer between 1 and 100")))
			return
		}
		limit = v
	}

	nodes, err := h.svc.SearchNodesByName(r.Context(), r.URL.Query().Get("prefix"), limit)
	if err != nil {
		render.Render(w, r, RenderServiceError(err))
		return
	}

	resp := make([]NamedNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		resp = append(resp, NamedNodeResponse{NodeID: n.NodeID, Name: n.Name, Lat: n.Lat, Lon: n.Lon})
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func validateRequest(data interface{}) render.Renderer {
	validate := validator.New()
	if err := validate.Struct(data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		return ErrValidation(err, vv)
	}
	return nil
}

// RenderServiceError map error code dari service ke http status. pesan internal error tidak dikirim ke client.
func RenderServiceError(err error) render.Renderer {
	msg := "internal server error"
	var serr *server.Error
	if errors.As(err, &serr) {
		msg = serr.Message()
	}

	switch server.CodeOf(err) {
	case server.ErrNotFound:
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusNotFound, StatusText: "Not found.", ErrorText: msg}
	case server.ErrBadParamInput:
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, StatusText: "Invalid request.", ErrorText: msg}
	case server.ErrSearchTimeout:
		return &ErrResponse{Err: err, HTTPStatusCode: http.StatusServiceUnavailable, StatusText: "Search aborted.", ErrorText: msg}
	default:
		return ErrInternalServerErrorRend(errors.New("internal server error"))
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

// ErrResponse model info
//
//	@Description	model untuk error response
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

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
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

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}
