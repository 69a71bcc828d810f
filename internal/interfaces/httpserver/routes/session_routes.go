package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"classroom-server/services/session-api/internal/interfaces/httpserver/handlers"
	sessionreq "classroom-server/services/session-api/internal/interfaces/httpserver/requests/session"
	"classroom-server/services/session-api/internal/interfaces/httpserver/responses"
	sessionres "classroom-server/services/session-api/internal/interfaces/httpserver/responses/session"
	"classroom-server/services/session-api/internal/utils/platformerrors"
)

// RegisterSessionRoutes registers the session lifecycle routes. The paths and
// response bodies mirror the contract classroom web clients already speak:
// create and join return the bare numeric uid.
func RegisterSessionRoutes(router gin.IRoutes, handlerProv *handlers.Provider) {
	router.POST("/session", createSession(handlerProv.Session))
	router.GET("/session/wx-sign", platformSign(handlerProv.Platform))
	router.GET("/session/:uid", getSession(handlerProv.Session))
	router.PUT("/session/:sessionId", joinSession(handlerProv.Session))
}

// createSession godoc
// @Summary      Create a classroom session
// @Description  Provisions a whiteboard room, mints creator credentials and returns the creator uid.
// @Tags         Session API
// @Accept       json
// @Produce      json
// @Param        body body sessionreq.CreateSessionRequest true "Creator username"
// @Success      201 {integer} int64
// @Failure      502 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /session [post]
func createSession(handler *handlers.SessionHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sessionreq.CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, "invalid request body")
			return
		}

		uid, err := handler.CreateSession(c.Request.Context(), req.Username)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		c.JSON(http.StatusCreated, uid)
	}
}

// getSession godoc
// @Summary      Get a session DTO
// @Description  Returns the session, participant and credential views for a uid.
// @Tags         Session API
// @Produce      json
// @Param        uid path int true "Participant uid"
// @Success      200 {object} sessionres.SessionResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      404 {object} responses.ErrorResponse
// @Failure      410 {object} responses.ErrorResponse
// @Router       /session/{uid} [get]
func getSession(handler *handlers.SessionHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := strconv.ParseInt(c.Param("uid"), 10, 64)
		if err != nil {
			platformerrors.WriteValidationError(c, "uid must be numeric")
			return
		}

		dto, err := handler.GetSession(c.Request.Context(), uid)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, sessionres.NewSessionResponse(dto))
	}
}

// joinSession godoc
// @Summary      Join an existing session
// @Description  Registers a new participant with writer role and returns the new uid. The session expiry is inherited, never extended.
// @Tags         Session API
// @Accept       json
// @Produce      json
// @Param        sessionId path string true "Session id"
// @Param        body body sessionreq.JoinSessionRequest true "Joiner username"
// @Success      200 {integer} int64
// @Failure      404 {object} responses.ErrorResponse
// @Failure      410 {object} responses.ErrorResponse
// @Failure      502 {object} responses.ErrorResponse
// @Router       /session/{sessionId} [put]
func joinSession(handler *handlers.SessionHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sessionreq.JoinSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, "invalid request body")
			return
		}

		uid, err := handler.JoinSession(c.Request.Context(), c.Param("sessionId"), req.Username)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, uid)
	}
}

// platformSign godoc
// @Summary      Sign a page URL for the platform JS-SDK
// @Description  Returns the appId, timestamp, nonce and SHA-1 signature for the given URL.
// @Tags         Session API
// @Produce      json
// @Param        url query string true "Page URL to sign"
// @Success      200 {object} platform.JSConfig
// @Failure      400 {object} responses.ErrorResponse
// @Failure      502 {object} responses.ErrorResponse
// @Router       /session/wx-sign [get]
func platformSign(handler *handlers.PlatformHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		url := c.Query("url")
		if url == "" {
			platformerrors.WriteValidationError(c, "url query parameter is required")
			return
		}

		cfg, err := handler.GetConfig(c.Request.Context(), url)
		if err != nil {
			responses.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, cfg)
	}
}
