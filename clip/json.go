package clip

import (
	"encoding/json"
	"fmt"

	"github.com/brindlerun/animaflow/value"
)

type controlPointJSON struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type transitionsJSON struct {
	In  *controlPointJSON `json:"in,omitempty"`
	Out *controlPointJSON `json:"out,omitempty"`
}

type keypointJSON struct {
	ID          string           `json:"id"`
	Stamp       float32          `json:"stamp"`
	Value       value.Value      `json:"value"`
	Transitions *transitionsJSON `json:"transitions,omitempty"`
}

type trackJSON struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	AnimatableID string         `json:"animatableId"`
	Points       []keypointJSON `json:"points"`
	Settings     map[string]any `json:"settings,omitempty"`
}

type animationDataJSON struct {
	ID       string      `json:"id,omitempty"`
	Name     string      `json:"name"`
	Tracks   []trackJSON `json:"tracks"`
	Groups   any         `json:"groups,omitempty"`
	Duration uint32      `json:"duration"`
}

// ParseJSON decodes and validates a stored clip from its JSON wire form
// ({ id, name, tracks, groups, duration }). Validate is called before the
// clip is returned; a non-nil error means the clip must not be loaded.
func ParseJSON(raw []byte) (AnimationData, error) {
	var doc animationDataJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return AnimationData{}, fmt.Errorf("clip: invalid json: %w", err)
	}

	tracks := make([]Track, len(doc.Tracks))
	for i, tj := range doc.Tracks {
		points := make([]Keypoint, len(tj.Points))
		for j, kj := range tj.Points {
			kp := Keypoint{ID: kj.ID, Stamp: kj.Stamp, Value: kj.Value}
			if kj.Transitions != nil {
				if kj.Transitions.In != nil {
					kp.Transitions.In = &ControlPoint{X: kj.Transitions.In.X, Y: kj.Transitions.In.Y}
				}
				if kj.Transitions.Out != nil {
					kp.Transitions.Out = &ControlPoint{X: kj.Transitions.Out.X, Y: kj.Transitions.Out.Y}
				}
			}
			points[j] = kp
		}
		tracks[i] = Track{
			ID:           tj.ID,
			Name:         tj.Name,
			AnimatableID: tj.AnimatableID,
			Points:       points,
			Settings:     tj.Settings,
		}
	}

	data := AnimationData{
		ID:         doc.ID,
		Name:       doc.Name,
		DurationMs: doc.Duration,
		Tracks:     tracks,
		Groups:     doc.Groups,
	}
	if err := data.Validate(); err != nil {
		return AnimationData{}, err
	}
	return data, nil
}
