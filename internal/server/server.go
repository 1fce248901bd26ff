package server

import (
	"context"
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/logging"
	"app/internal/middleware"
	"app/internal/security"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// echoインスタンスを組み立てる。ミドルウェアはここで全部載せる。
func New(
	cfg config.Config,
	logger *logging.Logger,
	tokens *security.TokenService,
	revocations *security.RevocationRegistry,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(requestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true, //refresh cookieを通す
	}))

	//Bearerがあれば検証してPrincipalを載せる。なければ匿名のまま通す
	e.Use(middleware.Authenticate(tokens, revocations, logger))

	return e
}

// 起動してctxのキャンセルでgraceful shutdownする。
func Start(ctx context.Context, e *echo.Echo, addr string, logger *logging.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	logger.Info().Str("addr", addr).Msg("server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}

func requestLogger(logger *logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			req := c.Request()
			logger.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Msg("request")

			return err
		}
	}
}
