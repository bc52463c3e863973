package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/orion99879-crypto/orion99/application/ports/outbound"
	"github.com/orion99879-crypto/orion99/application/services"
	"github.com/orion99879-crypto/orion99/config"
	"github.com/orion99879-crypto/orion99/infrastructure/adapters"
	"github.com/orion99879-crypto/orion99/infrastructure/gin_interface/controllers"
)

func main() {
	_ = godotenv.Load()

	serverConfig, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get server config")
	}

	pipelineConfig, err := config.GetPipelineConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get pipeline config")
	}

	imageConfig, err := config.GetImageConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get image config")
	}

	speechConfig, err := config.GetSpeechConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get speech config")
	}

	lipSyncConfig := config.GetLipSyncConfig()
	storageConfig := config.GetStorageConfig()

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	// Job tasks block waiting on their scene fan-out, so scene work gets its
	// own pool; sharing one pool deadlocks once every worker holds a job.
	jobPool, err := ants.NewPool(serverConfig.WorkerCount, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create job worker pool")
	}
	defer jobPool.Release()

	scenePool, err := ants.NewPool(serverConfig.SceneWorkerCount, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scene worker pool")
	}
	defer scenePool.Release()

	jobStore, err := adapters.NewFSJobStore(storageConfig.JobsRoot, zeroLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create job store")
	}

	jobQueue := adapters.NewJobQueue(serverConfig.QueueCapacity)

	contentFetcher := adapters.NewContentFetcher(zeroLogger, pipelineConfig.CommandTimeout)

	imageRenderer := adapters.NewImageRenderer(contentFetcher, imageConfig, zeroLogger)
	speechSynthesizer := adapters.NewSpeechSynthesizer(contentFetcher, speechConfig, pipelineConfig.CommandTimeout, zeroLogger)

	var lipSyncer outbound.LipSyncerPort
	if lipSyncConfig != nil {
		lipSyncer = adapters.NewLipSyncer(contentFetcher, lipSyncConfig, zeroLogger)
	} else {
		zeroLogger.Info("Lip-sync backend not configured, stage will be skipped")
	}

	var videoPublisher outbound.VideoPublisherPort
	if s3Config != nil {
		videoPublisher, err = adapters.NewS3VideoPublisher(zeroLogger, s3Config)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create video publisher")
		}
	}

	clipComposer := adapters.NewFFmpegClipComposer(pipelineConfig, zeroLogger)
	clipConcatenate := adapters.NewFFmpegConcatenate(pipelineConfig, zeroLogger)

	sceneSegmenter := services.NewSceneSegmenter(pipelineConfig.MaxScenes)

	timelineAssembler := services.NewTimelineAssembler(zeroLogger, clipComposer, clipConcatenate, jobStore, pipelineConfig.SceneDuration)

	pipelineExecutor := services.NewPipelineExecutor(zeroLogger, scenePool, jobStore, sceneSegmenter,
		imageRenderer, speechSynthesizer, lipSyncer, timelineAssembler, videoPublisher)

	jobIntake := services.NewJobIntake(zeroLogger, jobStore, jobQueue)

	dispatcherCtx, cancelDispatcher := context.WithCancel(context.Background())
	defer cancelDispatcher()

	jobDispatcher := adapters.NewJobDispatcher(zeroLogger, jobQueue, jobPool, pipelineExecutor)
	go jobDispatcher.Run(dispatcherCtx)

	jobsController := controllers.NewJobsController(zeroLogger, jobIntake)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	jobsController.RegisterRoutes(router)

	if err := router.Run(":" + serverConfig.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
