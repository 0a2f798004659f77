// SPDX-License-Identifier: MIT
// Package: server
//
// Purpose:
//   - HTTP JSON front end: one backward-induction solve per request.
//
// Routes:
//   - GET  /health    liveness.
//   - POST /v1/solve  body is a config document (JSON or YAML, the shape
//     config.Parse accepts) plus an optional "period" (default 0). The
//     response carries the run id, the policy and value functions of every
//     choice slot at that period, and the expected values its steps returned.
//
// Errors:
//   - 400 INVALID_CONFIG   egm.ErrConfiguration, malformed body, bad period.
//   - 422 NUMERIC_DOMAIN   egm.ErrNumericDomain.
//   - 500 INTERNAL_ERROR   anything else, including panics.

package server

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dcegm/config"
	"github.com/katalvlaran/dcegm/egm"
	"github.com/katalvlaran/dcegm/retirement"
	"github.com/katalvlaran/dcegm/solve"
)

// MaxBodyBytes bounds the request body.
const MaxBodyBytes = 1 << 20

// Error codes.
const (
	CodeInvalidConfig = "INVALID_CONFIG"
	CodeNumericDomain = "NUMERIC_DOMAIN"
	CodeInternal      = "INTERNAL_ERROR"
)

// Server serves solve requests.
type Server struct {
	engine  *gin.Engine
	log     *zap.Logger
	model   egm.Model
	origins []string
}

// New builds a Server that solves the retirement model. origins lists the
// CORS origins allowed to call it; none means any origin.
func New(log *zap.Logger, origins ...string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		engine:  gin.New(),
		log:     log,
		model:   retirement.Model(),
		origins: origins,
	}
	s.engine.Use(s.requestLogger(), recovery())
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1 := s.engine.Group("/v1")
	{
		v1.POST("/solve", s.solve)
	}

	return s
}

// Handler returns the engine wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	origins := s.origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(s.engine)
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SolveRequest is the body of POST /v1/solve.
type SolveRequest struct {
	config.Config `yaml:",inline"`
	Period        int `yaml:"period"`
}

// SolveResponse is the reply of POST /v1/solve.
type SolveResponse struct {
	ID     string `json:"id"`
	Period int    `json:"period"`

	Choices []ChoiceFunctions `json:"choices"`

	// ExpectedValue maps each state solved at Period to its expected
	// next-period value per savings point. Empty for the last period.
	ExpectedValue map[string]Floats `json:"expected_value,omitempty"`
}

// ChoiceFunctions is one slot's solution: consumption and value on the
// shared endogenous wealth grid.
type ChoiceFunctions struct {
	Choice      int    `json:"choice"`
	Wealth      Floats `json:"wealth"`
	Consumption Floats `json:"consumption"`
	Value       Floats `json:"value"`
}

// Floats encodes NaN and ±Inf as null, which JSON cannot represent.
type Floats []float64

// MarshalJSON implements json.Marshaler.
func (f Floats) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	buf := make([]byte, 0, 2+len(f)*8)
	buf = append(buf, '[')
	for i, v := range f {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
	}

	return append(buf, ']'), nil
}

func (s *Server) solve(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidConfig, err)
		return
	}
	var req SolveRequest
	if err = yaml.Unmarshal(raw, &req); err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidConfig, err)
		return
	}
	if err = req.Validate(); err != nil {
		s.fail(c, err)
		return
	}
	p, o, err := req.Resolve()
	if err != nil {
		s.fail(c, err)
		return
	}
	if req.Period < 0 || req.Period >= o.NPeriods {
		abort(c, http.StatusBadRequest, CodeInvalidConfig,
			fmt.Errorf("period %d outside [0, %d)", req.Period, o.NPeriods))
		return
	}
	scheme, err := req.Scheme(o)
	if err != nil {
		s.fail(c, fmt.Errorf("%w: %w", egm.ErrConfiguration, err))
		return
	}

	res, err := solve.Run(c.Request.Context(), p, o, s.model,
		solve.WithLogger(s.log), solve.WithQuadrature(scheme))
	if err != nil {
		s.fail(c, err)
		return
	}

	resp, err := response(res, req.Period)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func response(res *solve.Result, period int) (SolveResponse, error) {
	out := SolveResponse{ID: res.ID.String(), Period: period}
	for slot := 0; slot < res.Policy.Choices(); slot++ {
		pf, err := res.Policy.At(period, slot)
		if err != nil {
			return SolveResponse{}, err
		}
		vf, err := res.Value.At(period, slot)
		if err != nil {
			return SolveResponse{}, err
		}
		out.Choices = append(out.Choices, ChoiceFunctions{
			Choice:      slot,
			Wealth:      append(Floats(nil), pf.Grid()...),
			Consumption: append(Floats(nil), pf.Values()...),
			Value:       append(Floats(nil), vf.Values()...),
		})
	}
	if ev := res.Expected[period]; len(ev) > 0 {
		out.ExpectedValue = make(map[string]Floats, len(ev))
		for state, v := range ev {
			out.ExpectedValue[strconv.Itoa(state)] = Floats(v)
		}
	}

	return out, nil
}

// fail maps err to a status code and error code.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, egm.ErrConfiguration):
		abort(c, http.StatusBadRequest, CodeInvalidConfig, err)
	case errors.Is(err, egm.ErrNumericDomain):
		abort(c, http.StatusUnprocessableEntity, CodeNumericDomain, err)
	default:
		s.log.Error("solve failed", zap.Error(err))
		abort(c, http.StatusInternalServerError, CodeInternal, err)
	}
}

func abort(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorDetail{Code: code, Message: err.Error()}})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		msg := "an unexpected error occurred"
		if s, ok := recovered.(string); ok {
			msg = s
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: CodeInternal, Message: msg},
		})
	})
}
