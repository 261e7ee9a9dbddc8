package router

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// requestLogger writes one line per request through the standard logger.
func requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				log.Printf("request method=%s uri=%s status=%d latency=%s ip=%s err=%v", v.Method, v.URI, v.Status, v.Latency, v.RemoteIP, v.Error)
				return nil
			}
			log.Printf("request method=%s uri=%s status=%d latency=%s ip=%s", v.Method, v.URI, v.Status, v.Latency, v.RemoteIP)
			return nil
		},
	})
}
