package server

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/handiism/album-catalog/internal/errmsg"
	"github.com/handiism/album-catalog/internal/filter"
	"github.com/handiism/album-catalog/internal/model"
)

// RecordView is the JSON shape of one record. Index is the position in the
// filtered view, or -1 for the open record.
type RecordView struct {
	Index  int      `json:"index"`
	Artist string   `json:"artist"`
	Album  string   `json:"album"`
	Title  string   `json:"title"`
	Year   string   `json:"year"`
	Genre  string   `json:"genre"`
	Meta   string   `json:"meta"`
	Tracks []string `json:"tracks"`
	Cover  string   `json:"cover"`
	Thumb  string   `json:"thumb"`
	Large  string   `json:"large"`
	SrcSet string   `json:"srcset,omitempty"`
}

// WindowResponse is the visible page of the filtered view.
type WindowResponse struct {
	Total     int          `json:"total"`
	Shown     int          `json:"shown"`
	PageLimit int          `json:"pageLimit"`
	HasMore   bool         `json:"hasMore"`
	Count     string       `json:"count"`
	Query     string       `json:"query"`
	Genres    []string     `json:"genres"`
	Notice    string       `json:"notice,omitempty"`
	Records   []RecordView `json:"records"`
}

// CurrentResponse is the router's view state.
type CurrentResponse struct {
	State  string      `json:"state"`
	Marker string      `json:"marker"`
	Opened *bool       `json:"opened,omitempty"`
	Item   *RecordView `json:"item"`
}

type filterRequest struct {
	Query  string   `json:"query"`
	Genres []string `json:"genres"`
}

type toggleRequest struct {
	Genre string `json:"genre" binding:"required"`
}

type openRequest struct {
	Index *int `json:"index" binding:"required"`
}

type routeRequest struct {
	Marker string `json:"marker"`
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := r.Group("/api")
	api.GET("/status", s.handleStatus)
	api.GET("/current", s.handleCurrent)
	api.POST("/back", s.handleBack)
	api.POST("/route", s.handleRoute)
	api.POST("/resume", s.handleResume)

	ready := api.Group("", s.requireReady)
	ready.GET("/records", s.handleRecords)
	ready.GET("/genres", s.handleGenres)
	ready.POST("/filter", s.handleFilter)
	ready.POST("/filter/reset", s.handleReset)
	ready.POST("/genres/toggle", s.handleToggle)
	ready.POST("/more", s.handleMore)
	ready.POST("/open", s.handleOpen)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()))
	}
}

// requireReady rejects catalog requests until ingestion succeeded.
func (s *Server) requireReady(c *gin.Context) {
	s.mu.Lock()
	status, failure := s.status, s.failure
	s.mu.Unlock()

	switch status {
	case StatusReady:
		c.Next()
	case StatusFailed:
		c.AbortWithStatusJSON(nethttp.StatusServiceUnavailable, gin.H{"status": status, "error": failure})
	default:
		c.AbortWithStatusJSON(nethttp.StatusServiceUnavailable, gin.H{"status": status})
	}
}

func (s *Server) handleStatus(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := gin.H{"status": s.status, "notices": append([]string{}, s.notices...)}
	if s.failure != "" {
		resp["error"] = s.failure
	}
	if s.status == StatusReady {
		resp["records"] = len(s.catalog.Records())
	}
	c.JSON(nethttp.StatusOK, resp)
}

func (s *Server) handleRecords(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(nethttp.StatusOK, s.window())
}

func (s *Server) handleGenres(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(nethttp.StatusOK, gin.H{
		"genres":   s.catalog.Genres(),
		"selected": s.catalog.SelectedGenres(),
	})
}

func (s *Server) handleFilter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog.ApplyFilter(req.Query, filter.NewGenreSet(req.Genres...))
	s.metrics.filterRequests.Inc()
	c.JSON(nethttp.StatusOK, s.window())
}

func (s *Server) handleReset(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog.Reset()
	s.metrics.filterRequests.Inc()
	c.JSON(nethttp.StatusOK, s.window())
}

func (s *Server) handleToggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog.ToggleGenre(req.Genre)
	s.metrics.filterRequests.Inc()
	c.JSON(nethttp.StatusOK, s.window())
}

func (s *Server) handleMore(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog.LoadMore()
	c.JSON(nethttp.StatusOK, s.window())
}

func (s *Server) handleOpen(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	opened := s.router.OpenIndex(*req.Index)
	resp := s.current()
	resp.Opened = &opened
	c.JSON(nethttp.StatusOK, resp)
}

func (s *Server) handleBack(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router.Back()
	c.JSON(nethttp.StatusOK, s.current())
}

func (s *Server) handleRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.enforce(func() { s.router.Navigate(req.Marker) })
	c.JSON(nethttp.StatusOK, s.current())
}

func (s *Server) handleResume(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enforce(s.router.OnResume)
	c.JSON(nethttp.StatusOK, s.current())
}

func (s *Server) handleCurrent(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(nethttp.StatusOK, s.current())
}

// window renders the visible page. Callers hold s.mu.
func (s *Server) window() WindowResponse {
	recs := s.catalog.Window()
	views := make([]RecordView, len(recs))
	for i, r := range recs {
		views[i] = s.view(i, r, false)
	}

	resp := WindowResponse{
		Total:     s.catalog.Total(),
		Shown:     s.catalog.Shown(),
		PageLimit: s.catalog.PageLimit(),
		HasMore:   s.catalog.HasMore(),
		Count:     s.catalog.CountLine(),
		Query:     s.catalog.Query(),
		Genres:    s.catalog.SelectedGenres(),
		Records:   views,
	}
	if resp.Total == 0 {
		resp.Notice = errmsg.NoticeNoMatches
	}
	return resp
}

// current renders the router state. Callers hold s.mu.
func (s *Server) current() CurrentResponse {
	resp := CurrentResponse{
		State:  s.router.State().String(),
		Marker: string(s.router.Marker()),
	}
	if rec, ok := s.catalog.CurrentItem(); ok {
		v := s.view(-1, rec, true)
		resp.Item = &v
	}
	return resp
}

func (s *Server) view(index int, r model.Record, detail bool) RecordView {
	v := RecordView{
		Index:  index,
		Artist: r.Artist,
		Album:  r.Album,
		Title:  r.DisplayAlbum(),
		Year:   r.Year,
		Genre:  r.Genre,
		Meta:   r.Meta(),
		Tracks: append([]string{}, r.Tracks...),
		Cover:  r.Cover,
		Thumb:  s.proxy.OrPlaceholder(s.proxy.Thumb(r.Cover)),
		Large:  s.proxy.OrPlaceholder(s.proxy.Large(r.Cover)),
	}
	if detail {
		v.SrcSet = s.proxy.SrcSet(r.Cover)
	}
	return v
}
