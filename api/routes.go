package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vmihailenco/msgpack/v5"
)

const mimeMsgpack = "application/msgpack"

// Router builds the gin engine with every route registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.observe(), cors())
	s.SetupRoutes(router)
	return router
}

// SetupRoutes registers the solver endpoints on router
func (s *Server) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	router.GET("/terrain", s.GetTerrain)
	router.GET("/status", s.GetStatus)

	population := router.Group("/population")
	{
		population.GET("", s.GetPopulation)
		population.GET("/routes/:index", s.GetRoute)
	}

	router.PUT("/next", s.PutNext)
	router.PUT("/reset", s.PutReset)
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) GetTerrain(c *gin.Context) {
	c.JSON(http.StatusOK, newTerrainView(s.Solver().Terrain()))
}

func (s *Server) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.Solver().Status())
}

func (s *Server) GetPopulation(c *gin.Context) {
	sv := s.Solver()
	render(c, http.StatusOK, newPopulationView(sv.CurrentPopulation(), sv.State()))
}

func (s *Server) GetRoute(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "route index must be an integer"})
		return
	}

	pop := s.Solver().CurrentPopulation()
	if index < 0 || index >= len(pop.Routes) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route index out of range"})
		return
	}

	render(c, http.StatusOK, s.routeDetail(pop, index))
}

func (s *Server) PutNext(c *gin.Context) {
	sv := s.Solver()
	solved := sv.AdvanceGeneration()
	c.JSON(http.StatusOK, NextView{
		Solved:       solved,
		GenerationID: sv.CurrentPopulation().Generation,
		State:        sv.State().String(),
	})
}

func (s *Server) PutReset(c *gin.Context) {
	if err := s.host.Reset(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.Solver().Status())
}

// render writes v as msgpack when the client accepts it, JSON otherwise
func render(c *gin.Context, code int, v any) {
	if !strings.Contains(c.GetHeader("Accept"), mimeMsgpack) {
		c.JSON(code, v)
		return
	}

	b, err := msgpack.Marshal(v)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(code, mimeMsgpack, b)
}

// observe records every request in metrics and the log
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		s.metrics.RecordRequest(c.Request.Method, route, status)
		s.logger.Debug("request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"took", time.Since(start))
	}
}

// cors allows any origin, the web front end is served separately
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Accept, Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
