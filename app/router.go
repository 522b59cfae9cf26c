package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	// auth
	router.HandlerFunc(http.MethodPost, "/auth/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/auth/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/auth/refresh", app.requireAuthUser(app.refreshTokenHandler))
	router.HandlerFunc(http.MethodPost, "/auth/me", app.requireAuthUser(app.currentUserHandler))

	// blogs (owner-scoped)
	router.HandlerFunc(http.MethodPost, "/blogs", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/blogs", app.requireAuthUser(app.listBlogsHandler))
	router.HandlerFunc(http.MethodGet, "/blogs/:id", app.requireAuthUser(app.getBlogHandler))
	router.HandlerFunc(http.MethodPatch, "/blogs/:id", app.requireAuthUser(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/blogs/:id", app.requireAuthUser(app.deleteBlogHandler))

	// engagement
	router.HandlerFunc(http.MethodPost, "/blogs/:id/like", app.requireAuthUser(app.likeBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/blogs/:id/like", app.requireAuthUser(app.unlikeBlogHandler))
	router.HandlerFunc(http.MethodGet, "/blogs/:id/like", app.requireAuthUser(app.hasLikedHandler))
	router.HandlerFunc(http.MethodPost, "/blogs/:id/comments", app.requireAuthUser(app.addCommentHandler))
	router.HandlerFunc(http.MethodGet, "/blogs/:id/comments", app.listCommentsHandler)

	// public reads
	router.HandlerFunc(http.MethodGet, "/public/feed", app.publicFeedHandler)
	router.HandlerFunc(http.MethodGet, "/public/blogs/:slug", app.publicBlogHandler)

	// ops
	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return app.recoverPanic(app.enableCORS(app.rateLimit(app.collectMetrics(app.logRequest(app.authenticate(router))))))
}
