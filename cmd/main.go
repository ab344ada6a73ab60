package main

import (
	"fmt"
	"generate-tutorial-api/application/services"
	"generate-tutorial-api/config"
	"generate-tutorial-api/infrastructure/adapters"
	"generate-tutorial-api/infrastructure/gin_interface/controllers"
	"generate-tutorial-api/middleware"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	gptConfig, err := config.GetGptConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get gpt config")
	}

	dalleConfig, err := config.GetDaLLeConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dalle config")
	}

	elevenLabsConfig, err := config.GetElevenLabsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get eleven labs config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	pipelineConfig, err := config.GetPipelineConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get pipeline config")
	}

	sourceConfig, err := config.GetSourceConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get source config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		Config:            aws.Config{Region: aws.String(s3Config.Region)},
		SharedConfigState: session.SharedConfigEnable,
	}))
	s3Client := s3.New(sess)

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	textGenerator := adapters.NewGptTextGenerator(contentFetcher, gptConfig, zeroLogger)
	imageGenerator := adapters.NewDalleImageGenerator(contentFetcher, dalleConfig, zeroLogger)
	audioGenerator := adapters.NewElevenLabsAudioGenerator(contentFetcher, elevenLabsConfig, zeroLogger)

	sourceFetcher := adapters.NewSourceFetcher(contentFetcher, sourceConfig, zeroLogger)
	mediaStore := adapters.NewS3MediaStore(s3Client, s3Config, zeroLogger)
	sessionStore := adapters.NewMemorySessionStore()

	tutorialCreator := services.NewTutorialCreator(zeroLogger, textGenerator, sourceFetcher, sessionStore)
	framePipeline := services.NewFramePipeline(zeroLogger, sessionStore, mediaStore, pipelineConfig)
	rephraser := services.NewRephraser(zeroLogger, textGenerator, audioGenerator, mediaStore, sessionStore)

	visualPrompts := services.NewVisualPromptExtractor()
	imageStage := services.ImageStage(imageGenerator, visualPrompts, pipelineConfig.OverwriteStepText)
	audioStage := services.AudioStage(audioGenerator, pipelineConfig.OverwriteStepText)

	tutorialController := controllers.NewTutorialController(zeroLogger, workerPool, tutorialCreator,
		framePipeline, rephraser, sessionStore, imageStage, audioStage)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(zeroLogger))
	router.HandleMethodNotAllowed = true

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	tutorialController.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
