package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/agenthands/namesake/internal/core/aliases"
	"github.com/agenthands/namesake/internal/core/index"
	"github.com/agenthands/namesake/internal/core/model"
)

// Server answers read-only lookups over a loaded dataset.
type Server struct {
	Index   *index.Index
	Aliases *aliases.Store
	Logger  zerolog.Logger
}

func NewServer(idx *index.Index, store *aliases.Store, logger zerolog.Logger) *Server {
	return &Server{Index: idx, Aliases: store, Logger: logger}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.Health)
	r.GET("/players/:id", s.GetPlayer)
	r.GET("/search", s.Search)
	r.GET("/aliases/:name", s.GetAliases)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request served")
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"players": s.Index.Len(),
		"groups":  s.Aliases.Len(),
	})
}

func (s *Server) GetPlayer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player id"})
		return
	}
	rec, ok := s.Index.Record(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

type SearchResponse struct {
	Results   []model.EntityRecord `json:"results"`
	Unmatched []string             `json:"unmatched"`
}

func (s *Server) Search(c *gin.Context) {
	terms := c.QueryArray("q")
	if len(terms) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter q"})
		return
	}
	results, unmatched := s.Index.SearchAll(terms)
	if results == nil {
		results = []model.EntityRecord{}
	}
	if unmatched == nil {
		unmatched = []string{}
	}
	c.JSON(http.StatusOK, SearchResponse{Results: results, Unmatched: unmatched})
}

type AliasResponse struct {
	Name           string   `json:"name"`
	Representative string   `json:"representative"`
	Group          []string `json:"group"`
	PlayerID       *int64   `json:"player_id,omitempty"`
}

func (s *Server) GetAliases(c *gin.Context) {
	name := c.Param("name")
	rep := s.Aliases.FindGroup(name)
	id, inCatalog := s.Index.IDByName(name)
	if !s.Aliases.IsRepresentative(rep) && !inCatalog {
		c.JSON(http.StatusNotFound, gin.H{"error": "Name not found"})
		return
	}

	resp := AliasResponse{
		Name:           name,
		Representative: rep,
		Group:          s.Aliases.AllKnown(name),
	}
	if inCatalog {
		resp.PlayerID = &id
	}
	c.JSON(http.StatusOK, resp)
}
