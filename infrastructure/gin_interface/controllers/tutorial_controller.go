package controllers

import (
	"context"
	"errors"
	"generate-tutorial-api/application/ports/inbound"
	"generate-tutorial-api/application/ports/outbound"
	"generate-tutorial-api/domain"
	"generate-tutorial-api/infrastructure/gin_interface/dto"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TutorialController interface {
	CreateTutorial(c *gin.Context)
	GetTutorial(c *gin.Context)
	RunImageStage(c *gin.Context)
	RunAudioStage(c *gin.Context)
	RephraseFrame(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type tutorialController struct {
	logger       outbound.LoggerPort
	workerPool   outbound.TaskDispatcher
	creator      inbound.TutorialCreatorPort
	pipeline     inbound.FramePipelinePort
	rephraser    inbound.RephraserPort
	sessionStore outbound.SessionStorePort
	imageStage   inbound.StageConfig
	audioStage   inbound.StageConfig
}

func NewTutorialController(
	logger outbound.LoggerPort,
	workerPool outbound.TaskDispatcher,
	creator inbound.TutorialCreatorPort,
	pipeline inbound.FramePipelinePort,
	rephraser inbound.RephraserPort,
	sessionStore outbound.SessionStorePort,
	imageStage inbound.StageConfig,
	audioStage inbound.StageConfig,
) TutorialController {
	return &tutorialController{
		logger:       logger,
		workerPool:   workerPool,
		creator:      creator,
		pipeline:     pipeline,
		rephraser:    rephraser,
		sessionStore: sessionStore,
		imageStage:   imageStage,
		audioStage:   audioStage,
	}
}

// CreateTutorial builds the storyboard synchronously, then kicks the image
// and audio stages off in the background so the client can start polling
// right away with the returned session id.
func (t *tutorialController) CreateTutorial(c *gin.Context) {
	var req dto.CreateTutorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "url is required"})
		return
	}
	style := domain.Style(req.Style)
	if req.Style != "" && !domain.KnownStyle(style) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown style: " + req.Style})
		return
	}

	session, err := t.creator.Create(c.Request.Context(), inbound.CreateTutorialParams{
		SourceURL: req.URL,
		Style:     style,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	sessionID := session.ID
	err = t.workerPool.Submit(func() {
		// Detached from the request context: generation outlives the
		// creating request.
		ctx := context.Background()
		if _, err := t.pipeline.Run(ctx, sessionID, t.imageStage); err != nil {
			t.logger.ErrorWithFields(err, "Background image stage failed", map[string]interface{}{
				"session": sessionID,
			})
		}
		if _, err := t.pipeline.Run(ctx, sessionID, t.audioStage); err != nil {
			t.logger.ErrorWithFields(err, "Background audio stage failed", map[string]interface{}{
				"session": sessionID,
			})
		}
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.CreateTutorialResponse{
		ID:    sessionID,
		Steps: len(session.Steps),
	})
}

func (t *tutorialController) GetTutorial(c *gin.Context) {
	session, err := t.sessionStore.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (t *tutorialController) RunImageStage(c *gin.Context) {
	t.runStage(c, t.imageStage)
}

func (t *tutorialController) RunAudioStage(c *gin.Context) {
	t.runStage(c, t.audioStage)
}

func (t *tutorialController) runStage(c *gin.Context, stage inbound.StageConfig) {
	summary, err := t.pipeline.Run(c.Request.Context(), c.Param("id"), stage)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.StageResponse{
		Succeeded:   summary.Succeeded,
		Total:       summary.Total,
		RateLimited: summary.RateLimited,
	})
}

func (t *tutorialController) RephraseFrame(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "frame index must be an integer"})
		return
	}

	frame, err := t.rephraser.Rephrase(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrFrameIndexOutOfRange):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.RephraseResponse{Index: index, Frame: *frame})
}

func (t *tutorialController) RegisterRoutes(g *gin.Engine) {
	g.POST("/tutorials", t.CreateTutorial)
	g.GET("/tutorials/:id", t.GetTutorial)
	g.POST("/tutorials/:id/images", t.RunImageStage)
	g.POST("/tutorials/:id/audio", t.RunAudioStage)
	g.POST("/tutorials/:id/frames/:index/rephrase", t.RephraseFrame)
}
