package config

// WorkerCount bounds concurrent jobs; SceneWorkerCount bounds the per-scene
// tasks fanned out inside those jobs. The two pools must stay separate: a job
// task waits on its scene tasks, so sharing one pool can deadlock under load.
type ServerConfig struct {
	Port             string
	QueueCapacity    int
	WorkerCount      int
	SceneWorkerCount int
}

func GetServerConfig() (*ServerConfig, error) {
	queueCapacity, err := getEnvInt("QUEUE_CAPACITY", 64)
	if err != nil {
		return nil, err
	}
	workerCount, err := getEnvInt("WORKER_COUNT", 8)
	if err != nil {
		return nil, err
	}
	sceneWorkerCount, err := getEnvInt("SCENE_WORKER_COUNT", 120)
	if err != nil {
		return nil, err
	}

	return &ServerConfig{
		Port:             getEnvString("PORT", "8080"),
		QueueCapacity:    queueCapacity,
		WorkerCount:      workerCount,
		SceneWorkerCount: sceneWorkerCount,
	}, nil
}
