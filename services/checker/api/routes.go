// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package api exposes the checker over HTTP.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers the checker endpoints with the router group.
//
// Endpoints:
//
//	POST /v1/check - Run an annotation check and return the report
//	GET  /v1/health - Health check
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	rg.POST("/check", handlers.HandleCheck)
	rg.GET("/health", handlers.HandleHealth)
}

// NewRouter builds the full service router: the /v1 API group plus the
// Prometheus scrape endpoint.
func NewRouter(handlers *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/v1")
	RegisterRoutes(v1, handlers)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}
