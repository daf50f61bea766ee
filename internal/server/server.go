// Package server exposes the compiler over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"turingregex/internal/config"
	"turingregex/internal/export"
	"turingregex/internal/interpreter"
	"turingregex/internal/log"
	"turingregex/internal/regexlib"
	"turingregex/internal/turing"
)

type Server struct {
	Echo *echo.Echo
	cfg  *config.Config
}

func New(cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger)

	s := &Server{Echo: e, cfg: cfg}
	e.GET("/api/health", s.health)
	e.POST("/api/compile", s.compile)
	e.POST("/api/run", s.run)
	return s
}

// Start serves on the configured listen address until Shutdown.
func (s *Server) Start() error {
	log.Info().Str("addr", s.cfg.ListenAddr).Msg("compile service listening")
	err := s.Echo.Start(s.cfg.ListenAddr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		log.Info().
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Int("status", c.Response().Status).
			Dur("took", time.Since(start)).
			Msg("request")
		return nil
	}
}

// CompileRequest is the body of /api/compile; /api/run adds the input.
type CompileRequest struct {
	Pattern  string `json:"pattern"`
	Alphabet string `json:"alphabet"`
	Accept   string `json:"accept"`
	Reject   string `json:"reject"`
	Prefix   string `json:"prefix"`
	Mode     string `json:"mode"`
	Format   string `json:"format"`
}

type RunRequest struct {
	CompileRequest
	Input    string `json:"input"`
	MaxSteps int    `json:"max_steps"`
}

type CompileResponse struct {
	DFA     DFA     `json:"dfa"`
	Program Program `json:"program"`
	Format  string  `json:"format"`
	Output  string  `json:"output"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Offset *int   `json:"offset,omitempty"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// request fills unset fields from the configuration.
func (s *Server) request(in CompileRequest) (turing.Request, error) {
	cfg := *s.cfg
	if in.Alphabet != "" {
		cfg.Alphabet = in.Alphabet
	}
	if in.Accept != "" {
		cfg.Accept = in.Accept
	}
	if in.Reject != "" {
		cfg.Reject = in.Reject
	}
	if in.Prefix != "" {
		cfg.Prefix = in.Prefix
	}
	if in.Mode != "" {
		cfg.Mode = in.Mode
	}
	return cfg.Request(in.Pattern)
}

func (s *Server) compile(c echo.Context) error {
	var in CompileRequest
	if err := c.Bind(&in); err != nil {
		return err
	}
	req, err := s.request(in)
	if err != nil {
		return badRequest(c, err)
	}
	res, err := turing.Compile(req)
	if err != nil {
		return badRequest(c, err)
	}

	format := in.Format
	if format == "" {
		format = s.cfg.Format
	}
	var out bytes.Buffer
	if err := export.Write(&out, format, res); err != nil {
		return badRequest(c, err)
	}
	return c.JSON(http.StatusOK, CompileResponse{
		DFA:     dfaJSON(res.DFA),
		Program: programJSON(res.Program),
		Format:  format,
		Output:  out.String(),
	})
}

func (s *Server) run(c echo.Context) error {
	var in RunRequest
	if err := c.Bind(&in); err != nil {
		return err
	}
	req, err := s.request(in.CompileRequest)
	if err != nil {
		return badRequest(c, err)
	}
	res, err := turing.Compile(req)
	if err != nil {
		return badRequest(c, err)
	}
	limit := in.MaxSteps
	if limit <= 0 {
		limit = s.cfg.MaxSteps
	}
	result, err := interpreter.Run(res.Program, in.Input, limit)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

func badRequest(c echo.Context, err error) error {
	resp := ErrorResponse{Error: err.Error()}
	var se *regexlib.SyntaxError
	if errors.As(err, &se) {
		resp.Offset = &se.Offset
	}
	return c.JSON(http.StatusBadRequest, resp)
}
