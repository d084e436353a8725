// Package http 通讯录 http 服务
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Config struct {
	Endpoint        string        `help:"访问地址" default:"http://localhost:8989"`
	Address         string        `help:"监听地址" default:"0.0.0.0:8989"`
	ShutdownTimeout time.Duration `help:"优雅退出等待时间" default:"5s"`
}

type Server struct {
	*gin.Engine
	httpSrv *http.Server
	logger  *zap.Logger
	config  Config
}

// NewEngine 创建带 recovery 和访问日志的 gin 引擎
func NewEngine(logger *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), accessLog(logger))
	return engine
}

func NewServer(engine *gin.Engine, logger *zap.Logger, conf Config) *Server {
	s := &Server{
		Engine: engine,
		logger: logger,
		config: conf,
	}
	s.httpSrv = &http.Server{
		Addr:    s.config.Address,
		Handler: s,
	}
	return s
}

// Start 阻塞运行直到 ctx 结束，之后优雅退出
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Sugar().Infof("http server start: %s; endpoint: %s", s.config.Address, s.config.Endpoint)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Stop(context.Background())
	}
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Sugar().Info("Shutting down server...")

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Sugar().Info("Server exiting")
	return nil
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
