package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Point is a world position in pixels.
type Point struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
}

// ResourceEntry is a texture or font a scene needs loaded before it starts.
type ResourceEntry struct {
	Path   string `yaml:"path"`
	Font   bool   `yaml:"font"`   // load as a bitmap font instead of a texture
	Common bool   `yaml:"common"` // kept across scene changes
}

// EntityEntry places one or more entities of a kind.
type EntityEntry struct {
	Kind   string   `yaml:"kind"`
	Name   string   `yaml:"name"` // speaker name shown in dialogs
	X      int32    `yaml:"x"`
	Y      int32    `yaml:"y"`
	Count  int      `yaml:"count"`  // repeat count, 0 or 1 = single
	StepX  int32    `yaml:"step_x"` // offset between repeats
	StepY  int32    `yaml:"step_y"`
	Life   int32    `yaml:"life"`
	Dialog []string `yaml:"dialog"` // npc / sign text
	Target string   `yaml:"target"` // door destination scene
	Spawn  *Point   `yaml:"spawn"`  // door arrival point in the target scene
	Patrol int32    `yaml:"patrol"` // slime walk range in pixels
}

// SceneEntry is one named, swappable set of entities and resources.
type SceneEntry struct {
	ID        string          `yaml:"id"`
	Name      string          `yaml:"name"`
	Width     int32           `yaml:"width"`
	Height    int32           `yaml:"height"`
	Player    *Point          `yaml:"player"`
	Resources []ResourceEntry `yaml:"resources"`
	Entities  []EntityEntry   `yaml:"entities"`
}

type sceneListFile struct {
	Scenes []SceneEntry `yaml:"scenes"`
}

// SceneTable is the closed set of scenes known at startup.
type SceneTable struct {
	scenes map[string]*SceneEntry
}

// LoadSceneTable loads scene_list.yaml.
func LoadSceneTable(path string) (*SceneTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene list: %w", err)
	}
	t, err := ParseSceneTable(raw)
	if err != nil {
		return nil, fmt.Errorf("parse scene list %s: %w", path, err)
	}
	return t, nil
}

// ParseSceneTable decodes and validates a scene list document.
func ParseSceneTable(raw []byte) (*SceneTable, error) {
	var f sceneListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	t := &SceneTable{scenes: make(map[string]*SceneEntry, len(f.Scenes))}
	for i := range f.Scenes {
		s := &f.Scenes[i]
		if s.ID == "" {
			return nil, fmt.Errorf("scene #%d has no id", i)
		}
		if _, dup := t.scenes[s.ID]; dup {
			return nil, fmt.Errorf("duplicate scene id %q", s.ID)
		}
		for j, e := range s.Entities {
			if e.Kind == "" {
				return nil, fmt.Errorf("scene %q entity #%d has no kind", s.ID, j)
			}
		}
		t.scenes[s.ID] = s
	}
	for _, s := range t.scenes {
		for _, e := range s.Entities {
			if e.Target == "" {
				continue
			}
			if _, ok := t.scenes[e.Target]; !ok {
				return nil, fmt.Errorf("scene %q links to unknown scene %q", s.ID, e.Target)
			}
		}
	}
	return t, nil
}

// Get returns the scene with the given id, or nil if none.
func (t *SceneTable) Get(id string) *SceneEntry {
	return t.scenes[id]
}

// IDs returns all scene ids in sorted order.
func (t *SceneTable) IDs() []string {
	ids := make([]string, 0, len(t.scenes))
	for id := range t.scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of scenes loaded.
func (t *SceneTable) Count() int {
	return len(t.scenes)
}

// Expand returns the positions an entry places entities at.
func (e EntityEntry) Expand() []Point {
	n := e.Count
	if n < 1 {
		n = 1
	}
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{X: e.X + int32(i)*e.StepX, Y: e.Y + int32(i)*e.StepY}
	}
	return pts
}
