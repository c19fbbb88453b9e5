package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	githubUC "github.com/minhvu/devconnect/internal/application/usecase/github"
	"github.com/minhvu/devconnect/pkg/logger"
)

type GithubHandler struct {
	listReposUseCase *githubUC.ListReposUseCase
	logger           logger.Logger
}

func NewGithubHandler(uc *githubUC.ListReposUseCase, log logger.Logger) *GithubHandler {
	return &GithubHandler{
		listReposUseCase: uc,
		logger:           log,
	}
}

func (h *GithubHandler) ListRepos(c *gin.Context) {
	input := githubUC.ListReposInput{Username: c.Param("username")}
	output, err := h.listReposUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToRepoSummaryDTOs(output.Repos))
}
