package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter mounts the API surface. Owner-scoped routes sit behind the auth
// middleware; the public reads and the github proxy do not.
func NewRouter(profileHandler *ProfileHandler, githubHandler *GithubHandler, authMiddleware, errorMiddleware gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		profiles := api.Group("/profile")
		{
			profiles.GET("", profileHandler.ListProfiles)
			profiles.GET("/user/:id", profileHandler.GetProfileByUserID)
			profiles.GET("/github/:username", githubHandler.ListRepos)

			private := profiles.Group("")
			private.Use(authMiddleware)
			{
				private.GET("/me", profileHandler.GetOwnProfile)
				private.POST("", profileHandler.UpsertProfile)
				private.DELETE("", profileHandler.DeleteAccount)

				private.PUT("/experience", profileHandler.AddExperience)
				private.DELETE("/experience/:id", profileHandler.RemoveExperience)
				private.PUT("/education", profileHandler.AddEducation)
				private.DELETE("/education/:id", profileHandler.RemoveEducation)
			}
		}
	}

	return router
}
