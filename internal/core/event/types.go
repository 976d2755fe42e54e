package event

import "github.com/driftwood2d/driftwood/internal/core/ecs"

type EntitySpawned struct {
	ID   ecs.EntityID
	Kind uint8
}

type EntityDestroyed struct {
	ID   ecs.EntityID
	Kind uint8
}

type SceneEntered struct {
	Scene string
	From  string // empty on the first load
}

type PlayerHurt struct {
	ID   ecs.EntityID
	Life int32
}

type DialogOpened struct {
	Speaker ecs.EntityID
	Lines   int
}
